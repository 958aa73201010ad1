package validators

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/models"
)

// Field names accepted by ServerResponseValidator.
const (
	FieldOutcomeCount = "outcome_count"
	FieldOutcomeOrder = "outcome_order"

	FieldFilenames = "filenames"
	FieldHashes    = "hashes"

	FieldTableID = "table_id"
	FieldColumns = "columns"

	FieldDataETag = "data_etag"
	FieldCursor   = "cursor"
	FieldRowIDs   = "row_ids"
)

// PushedBatch pairs the row ids of one push request with the server's answer.
type PushedBatch struct {
	RowIDs   []string
	Outcomes models.RowOutcomeList
}

// ServerResponseValidator checks the structure of documents returned by the
// sync server before the engine acts on them.
type ServerResponseValidator struct {
}

func NewServerResponseValidator() Validator {
	return &ServerResponseValidator{}
}

func (v *ServerResponseValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case PushedBatch:
		return v.validatePushedBatch(ctx, value, fields...)
	case *PushedBatch:
		return v.validatePushedBatch(ctx, *value, fields...)

	case models.FileManifestDocument:
		return v.validateManifest(ctx, value, fields...)
	case *models.FileManifestDocument:
		return v.validateManifest(ctx, *value, fields...)

	case models.TableDefinitionResource:
		return v.validateTableDefinition(ctx, value, fields...)
	case *models.TableDefinitionResource:
		return v.validateTableDefinition(ctx, *value, fields...)

	case models.RowPage:
		return v.validateRowPage(ctx, value, fields...)
	case *models.RowPage:
		return v.validateRowPage(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ServerResponseValidator) validatePushedBatch(_ context.Context, batch PushedBatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOutcomeCount, FieldOutcomeOrder}
	}

	for _, f := range fields {
		switch f {
		case FieldOutcomeCount:
			if len(batch.Outcomes.Rows) != len(batch.RowIDs) {
				return fmt.Errorf("%w: sent %d rows, got %d outcomes",
					ErrOutcomeCountMismatch, len(batch.RowIDs), len(batch.Outcomes.Rows))
			}
		case FieldOutcomeOrder:
			for i, outcome := range batch.Outcomes.Rows {
				if i >= len(batch.RowIDs) {
					break
				}
				if outcome.RowID != batch.RowIDs[i] {
					return fmt.Errorf("%w: position %d holds %q, expected %q",
						ErrOutcomeOrderMismatch, i, outcome.RowID, batch.RowIDs[i])
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ServerResponseValidator) validateManifest(_ context.Context, doc models.FileManifestDocument, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFilenames, FieldHashes}
	}

	for _, f := range fields {
		switch f {
		case FieldFilenames:
			seen := make(map[string]struct{}, len(doc.Entries))
			for i, entry := range doc.Entries {
				if err := validateRelativePath(entry.Filename); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				name := layout.NormalizeName(entry.Filename)
				if _, dup := seen[name]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateFilename, entry.Filename)
				}
				seen[name] = struct{}{}
			}
		case FieldHashes:
			for i, entry := range doc.Entries {
				if entry.MD5Hash == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrMissingHash)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRelativePath rejects names that are empty, absolute or climb out
// of the folder the manifest describes.
func validateRelativePath(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyFilename
	}
	slashed := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(slashed, "/") {
		return fmt.Errorf("%w: %s", ErrUnsafeFilename, name)
	}
	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %s", ErrUnsafeFilename, name)
	}
	return nil
}

func (v *ServerResponseValidator) validateTableDefinition(_ context.Context, def models.TableDefinitionResource, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTableID, FieldColumns}
	}

	for _, f := range fields {
		switch f {
		case FieldTableID:
			if def.TableID == "" {
				return ErrEmptyTableID
			}
		case FieldColumns:
			if len(def.Columns) == 0 {
				return ErrEmptyColumns
			}
			keys := make(map[string]struct{}, len(def.Columns))
			for i, c := range def.Columns {
				if c.ElementKey == "" || c.ElementType == "" {
					return fmt.Errorf("%w at index %d", ErrInvalidColumn, i)
				}
				if _, dup := keys[c.ElementKey]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateColumn, c.ElementKey)
				}
				keys[c.ElementKey] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ServerResponseValidator) validateRowPage(_ context.Context, page models.RowPage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDataETag, FieldCursor, FieldRowIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldDataETag:
			if page.DataETag == "" {
				return ErrMissingDataETag
			}
		case FieldCursor:
			if page.HasMoreResults && page.WebSafeResumeCursor == "" {
				return ErrMissingCursor
			}
		case FieldRowIDs:
			for i, row := range page.Rows {
				if row.RowID == "" {
					return fmt.Errorf("validation error at index %d: %w", i, ErrEmptyRowID)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
