package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrOutcomeCountMismatch = errors.New("outcome count differs from pushed batch")
	ErrOutcomeOrderMismatch = errors.New("outcome row ids are not in batch order")
	ErrEmptyFilename        = errors.New("manifest entry has no filename")
	ErrUnsafeFilename       = errors.New("manifest filename escapes its folder")
	ErrDuplicateFilename    = errors.New("manifest lists a filename twice")
	ErrMissingHash          = errors.New("manifest entry has no md5 hash")
	ErrEmptyTableID         = errors.New("table id is empty")
	ErrEmptyColumns         = errors.New("table definition has no columns")
	ErrInvalidColumn        = errors.New("invalid column definition")
	ErrDuplicateColumn      = errors.New("column element key is not unique")
	ErrMissingDataETag      = errors.New("row page has no data etag")
	ErrMissingCursor        = errors.New("row page has more results but no resume cursor")
	ErrEmptyRowID           = errors.New("row id is empty")
)
