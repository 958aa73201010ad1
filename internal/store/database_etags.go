package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-odk-sync/internal/logger"
)

func (s *sqliteDatabaseService) ManifestSyncETag(ctx context.Context, uri, tableID string) (string, error) {
	etag, _, err := s.syncETag(ctx, uri, tableID, true)
	return etag, err
}

func (s *sqliteDatabaseService) UpdateManifestSyncETag(ctx context.Context, uri, tableID, etag string) error {
	return s.updateSyncETag(ctx, "sqliteDatabaseService.UpdateManifestSyncETag", uri, tableID, true, 0, etag)
}

func (s *sqliteDatabaseService) FileSyncETag(ctx context.Context, uri, tableID string, modifiedAt int64) (string, error) {
	md5, recordedAt, err := s.syncETag(ctx, uri, tableID, false)
	if err != nil || md5 == "" {
		return "", err
	}
	if recordedAt == modifiedAt {
		return md5, nil
	}

	// the file changed since its hash was recorded
	if _, err = s.ExecContext(ctx, deleteSyncETag, tableID, false, uri); err != nil {
		return "", s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	return "", nil
}

func (s *sqliteDatabaseService) UpdateFileSyncETag(ctx context.Context, uri, tableID string, modifiedAt int64, md5 string) error {
	return s.updateSyncETag(ctx, "sqliteDatabaseService.UpdateFileSyncETag", uri, tableID, false, modifiedAt, md5)
}

func (s *sqliteDatabaseService) syncETag(ctx context.Context, uri, tableID string, manifest bool) (string, int64, error) {
	var (
		etag         string
		lastModified int64
	)
	err := s.QueryRowContext(ctx, getSyncETag, tableID, manifest, uri).Scan(&etag, &lastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.syncETag").
			Str("url", uri).
			Msg("failed to query sync etag")
		return "", 0, s.classify(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	return etag, lastModified, nil
}

func (s *sqliteDatabaseService) updateSyncETag(ctx context.Context, funcName, uri, tableID string, manifest bool, modifiedAt int64, etag string) error {
	var err error
	if etag == "" {
		_, err = s.ExecContext(ctx, deleteSyncETag, tableID, manifest, uri)
	} else {
		_, err = s.ExecContext(ctx, upsertSyncETag, tableID, manifest, uri, modifiedAt, etag)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("url", uri).Msg("failed to store sync etag")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	return nil
}

func (s *sqliteDatabaseService) DeleteSyncETagsForTable(ctx context.Context, tableID string) error {
	if _, err := s.ExecContext(ctx, deleteSyncETagsForTable, tableID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqliteDatabaseService.DeleteSyncETagsForTable").
			Str("table_id", tableID).
			Msg("failed to delete sync etags")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	return nil
}

func (s *sqliteDatabaseService) DeleteAllSyncETags(ctx context.Context) error {
	if _, err := s.ExecContext(ctx, deleteAllSyncETags); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqliteDatabaseService.DeleteAllSyncETags").Msg("failed to delete sync etags")
		return s.classify(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}
	return nil
}
