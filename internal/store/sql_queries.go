// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	listTableIDs = `
		SELECT _table_id
		FROM _table_definitions
		ORDER BY _table_id;`

	getTableDefinitionEntry = `
		SELECT
			_table_id,
			_schema_etag,
			_last_data_etag,
			_last_sync_time
		FROM _table_definitions
		WHERE _table_id = ?;`

	getColumnDefinitions = `
		SELECT
			_element_key,
			_element_name,
			_element_type,
			_list_child_element_keys
		FROM _column_definitions
		WHERE _table_id = ?
		ORDER BY _ordinal;`

	insertTableDefinition = `
		INSERT INTO _table_definitions (_table_id, _schema_etag, _last_data_etag, _last_sync_time)
		VALUES (?, NULL, NULL, NULL);`

	insertColumnDefinition = `
		INSERT INTO _column_definitions (
			_table_id,
			_element_key,
			_element_name,
			_element_type,
			_list_child_element_keys,
			_ordinal
		) VALUES (?, ?, ?, ?, ?, ?);`

	deleteColumnDefinitions = `DELETE FROM _column_definitions WHERE _table_id = ?;`
	deleteTableDefinition   = `DELETE FROM _table_definitions WHERE _table_id = ?;`

	updateTableETags = `
		UPDATE _table_definitions
		SET _schema_etag = ?, _last_data_etag = ?, _last_sync_time = ?
		WHERE _table_id = ?;`

	resetTableETags = `
		UPDATE _table_definitions
		SET _schema_etag = ?, _last_data_etag = NULL
		WHERE _table_id = ?;`

	getSyncETag = `
		SELECT _etag_md5_hash, _last_modified
		FROM _sync_etags
		WHERE _table_id = ? AND _is_manifest = ? AND _url = ?;`

	upsertSyncETag = `
		INSERT INTO _sync_etags (_table_id, _is_manifest, _url, _last_modified, _etag_md5_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (_table_id, _is_manifest, _url)
		DO UPDATE SET _last_modified = excluded._last_modified, _etag_md5_hash = excluded._etag_md5_hash;`

	deleteSyncETag = `
		DELETE FROM _sync_etags
		WHERE _table_id = ? AND _is_manifest = ? AND _url = ?;`

	deleteSyncETagsForTable = `DELETE FROM _sync_etags WHERE _table_id = ?;`

	deleteManifestETagsUnderURI = `
		DELETE FROM _sync_etags
		WHERE _is_manifest = 1 AND substr(_url, 1, length(?)) = ?;`

	deleteAllSyncETags = `DELETE FROM _sync_etags;`
)
