package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-odk-sync/models"
)

func outcomes(ids ...string) models.RowOutcomeList {
	list := models.RowOutcomeList{DataETag: "d2"}
	for _, id := range ids {
		list.Rows = append(list.Rows, models.RowOutcome{
			ServerRow: models.ServerRow{RowID: id},
			Outcome:   models.RowOutcomeSuccess,
		})
	}
	return list
}

func TestNewServerResponseValidator(t *testing.T) {
	v := NewServerResponseValidator()
	require.NotNil(t, v)
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewServerResponseValidator()
	assert.ErrorIs(t, v.Validate(context.Background(), 42), ErrUnsupportedType)
}

// ── pushed batches ──────────────────────────────────────────────────────────

func TestValidate_PushedBatch(t *testing.T) {
	v := NewServerResponseValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		batch   PushedBatch
		wantErr error
	}{
		{"matching", PushedBatch{RowIDs: []string{"a", "b"}, Outcomes: outcomes("a", "b")}, nil},
		{"empty", PushedBatch{}, nil},
		{"missing outcome", PushedBatch{RowIDs: []string{"a", "b"}, Outcomes: outcomes("a")}, ErrOutcomeCountMismatch},
		{"extra outcome", PushedBatch{RowIDs: []string{"a"}, Outcomes: outcomes("a", "b")}, ErrOutcomeCountMismatch},
		{"reordered", PushedBatch{RowIDs: []string{"a", "b"}, Outcomes: outcomes("b", "a")}, ErrOutcomeOrderMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &tt.batch)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_PushedBatch_OrderOnly(t *testing.T) {
	v := NewServerResponseValidator()
	batch := PushedBatch{RowIDs: []string{"a", "b"}, Outcomes: outcomes("a")}

	assert.NoError(t, v.Validate(context.Background(), batch, FieldOutcomeOrder))
	assert.ErrorIs(t, v.Validate(context.Background(), batch, "bogus"), ErrUnknownField)
}

// ── manifests ───────────────────────────────────────────────────────────────

func TestValidate_Manifest(t *testing.T) {
	v := NewServerResponseValidator()
	ctx := context.Background()

	entry := func(name, hash string) models.FileManifestEntry {
		return models.FileManifestEntry{Filename: name, MD5Hash: hash}
	}

	tests := []struct {
		name    string
		entries []models.FileManifestEntry
		wantErr error
	}{
		{"empty set", nil, nil},
		{"nested names", []models.FileManifestEntry{entry("assets/a.html", "md5:1"), entry("tables/t/properties.csv", "md5:2")}, nil},
		{"inner dot-dot stays inside", []models.FileManifestEntry{entry("assets/x/../a.html", "md5:1")}, nil},
		{"blank name", []models.FileManifestEntry{entry(" ", "md5:1")}, ErrEmptyFilename},
		{"absolute", []models.FileManifestEntry{entry("/etc/passwd", "md5:1")}, ErrUnsafeFilename},
		{"parent", []models.FileManifestEntry{entry("../secret", "md5:1")}, ErrUnsafeFilename},
		{"windows parent", []models.FileManifestEntry{entry(`assets\..\..\x`, "md5:1")}, ErrUnsafeFilename},
		{"duplicate", []models.FileManifestEntry{entry("a.txt", "md5:1"), entry("a.txt", "md5:2")}, ErrDuplicateFilename},
		{"duplicate after normalising", []models.FileManifestEntry{entry("assets/a.txt", "md5:1"), entry("assets//a.txt", "md5:1")}, ErrDuplicateFilename},
		{"no hash", []models.FileManifestEntry{entry("a.txt", "")}, ErrMissingHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, &models.FileManifestDocument{ETag: "m", Entries: tt.entries})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── table definitions ───────────────────────────────────────────────────────

func TestValidate_TableDefinition(t *testing.T) {
	v := NewServerResponseValidator()
	ctx := context.Background()
	col := func(key, typ string) models.Column {
		return models.Column{ElementKey: key, ElementName: key, ElementType: typ, ListChildElementKeys: "[]"}
	}

	assert.NoError(t, v.Validate(ctx, models.TableDefinitionResource{
		TableID: "visits",
		Columns: models.OrderedColumns{col("name", "string"), col("age", "integer")},
	}))
	assert.ErrorIs(t, v.Validate(ctx, models.TableDefinitionResource{Columns: models.OrderedColumns{col("a", "string")}}), ErrEmptyTableID)
	assert.ErrorIs(t, v.Validate(ctx, models.TableDefinitionResource{TableID: "t"}), ErrEmptyColumns)
	assert.ErrorIs(t, v.Validate(ctx, models.TableDefinitionResource{
		TableID: "t", Columns: models.OrderedColumns{col("a", "")},
	}), ErrInvalidColumn)
	assert.ErrorIs(t, v.Validate(ctx, &models.TableDefinitionResource{
		TableID: "t", Columns: models.OrderedColumns{col("a", "string"), col("a", "integer")},
	}), ErrDuplicateColumn)
}

// ── row pages ───────────────────────────────────────────────────────────────

func TestValidate_RowPage(t *testing.T) {
	v := NewServerResponseValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RowPage{DataETag: "d1", Rows: []models.ServerRow{{RowID: "r1"}}}))
	assert.NoError(t, v.Validate(ctx, models.RowPage{DataETag: "d1", HasMoreResults: true, WebSafeResumeCursor: "c"}))
	assert.ErrorIs(t, v.Validate(ctx, models.RowPage{}), ErrMissingDataETag)
	assert.ErrorIs(t, v.Validate(ctx, models.RowPage{DataETag: "d1", HasMoreResults: true}), ErrMissingCursor)
	assert.ErrorIs(t, v.Validate(ctx, &models.RowPage{DataETag: "d1", Rows: []models.ServerRow{{}}}), ErrEmptyRowID)
}
