package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-odk-sync/internal/adapter"
	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/store"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
	"github.com/MKhiriev/go-odk-sync/internal/validators"
	"github.com/MKhiriev/go-odk-sync/models"
)

// AttachmentSyncEngine transfers the files referenced by row-path columns.
type AttachmentSyncEngine struct {
	sync      adapter.Synchronizer
	db        store.DatabaseService
	layout    *layout.App
	hasher    FileHasher
	progress  ProgressSink
	validator validators.Validator
	budget    int64
}

// NewAttachmentSyncEngine builds an AttachmentSyncEngine from the session.
func NewAttachmentSyncEngine(s *SyncSession) *AttachmentSyncEngine {
	return &AttachmentSyncEngine{
		sync:      s.Synchronizer,
		db:        s.Database,
		layout:    s.Layout,
		hasher:    s.Hasher,
		progress:  s.Progress,
		validator: validators.NewServerResponseValidator(),
		budget:    s.Settings.AttachmentBatchBytes,
	}
}

// SyncTableAttachments retries the attachments of every row that is in
// conflict or waiting for files, skipping checkpoints. Rows whose files are
// complete become synced. The returned outcome is SUCCESS,
// TABLE_PENDING_ATTACHMENTS or the outcome of the first row error.
func (a *AttachmentSyncEngine) SyncTableAttachments(ctx context.Context, table models.TableResource, columns models.OrderedColumns, mode models.AttachmentMode, result *models.TableLevelResult) (models.SyncOutcome, error) {
	log := logger.FromContext(ctx)

	if len(columns.Attachments()) == 0 {
		return models.SyncSuccess, nil
	}

	ids, err := a.db.RowIDsByState(ctx, table.TableID, models.SyncStateInConflict, models.SyncStateSyncedPendingFiles)
	if err != nil {
		return models.SyncLocalDatabase, fmt.Errorf("listing rows with pending files: %w", err)
	}
	checkpoints, err := a.db.CheckpointRowIDs(ctx, table.TableID)
	if err != nil {
		return models.SyncLocalDatabase, fmt.Errorf("listing checkpoints: %w", err)
	}
	ids = without(ids, checkpoints)

	var firstErr error
	pending := 0
	done := 0
	for start := 0; start < len(ids); start += attachmentQueryBatch {
		end := min(start+attachmentQueryBatch, len(ids))
		rows, err := a.db.RowsByID(ctx, table.TableID, columns, ids[start:end]...)
		if err != nil {
			return models.SyncLocalDatabase, fmt.Errorf("loading rows: %w", err)
		}

		for _, row := range rows {
			if err = ctx.Err(); err != nil {
				return OutcomeFor(err), err
			}

			rowMode := mode
			switch state := row.State.(type) {
			case models.InConflict:
				if state.Conflict.IsServerSide() {
					continue
				}
				rowMode = mode.Restrict(models.AttachmentDownload)
			case models.SyncedPendingFiles:
			default:
				continue
			}

			complete, err := a.SyncRowAttachments(ctx, table, row, columns, rowMode)
			result.LocalAttachmentRetries++
			done++
			a.progress.Report(ctx, progressStep(models.PhaseAttachments, table.TableID, "row "+row.ID, done, len(ids)))
			if err != nil {
				log.Err(err).Str("func", "AttachmentSyncEngine.SyncTableAttachments").Str("row_id", row.ID).
					Msg("error syncing row attachments")
				if firstErr == nil {
					firstErr = err
				}
				pending++
				continue
			}

			if _, waiting := row.State.(models.SyncedPendingFiles); !waiting {
				continue
			}
			if !complete {
				pending++
				continue
			}
			if err = a.db.UpdateRowETagAndSyncState(ctx, table.TableID, row.ID, row.RowETag, models.Synced{}); err != nil {
				return models.SyncLocalDatabase, fmt.Errorf("marking row synced: %w", err)
			}
		}
	}

	switch {
	case firstErr != nil:
		return OutcomeFor(firstErr), firstErr
	case pending > 0:
		return models.SyncTablePendingAttachments, nil
	default:
		return models.SyncSuccess, nil
	}
}

// SyncRowAttachments exchanges the files referenced by row with the server
// as far as mode allows. It reports whether every referenced file is now
// present on both sides.
func (a *AttachmentSyncEngine) SyncRowAttachments(ctx context.Context, table models.TableResource, row models.Row, columns models.OrderedColumns, mode models.AttachmentMode) (bool, error) {
	log := logger.FromContext(ctx)

	fragments := row.AttachmentFragments(columns)
	if len(fragments) == 0 {
		return true, nil
	}
	if mode == models.AttachmentNone {
		return false, nil
	}

	manifestURI := a.sync.RowManifestURI(table.InstanceFilesURI, row.ID)
	prefix := rowManifestPrefix(mode, row, columns)

	cached, err := a.db.ManifestSyncETag(ctx, manifestURI, table.TableID)
	if err != nil {
		return false, fmt.Errorf("reading row manifest etag: %w", err)
	}
	lastKnown := ""
	if strings.HasPrefix(cached, prefix) {
		lastKnown = strings.TrimPrefix(cached, prefix)
	}

	doc, err := a.sync.GetRowLevelFileManifest(ctx, table.InstanceFilesURI, row.ID, lastKnown)
	if err != nil {
		return false, fmt.Errorf("fetching row manifest: %w", err)
	}
	if doc == nil {
		return false, nil
	}
	if err = a.validator.Validate(ctx, doc, validators.FieldFilenames); err != nil {
		return false, protocolError("row manifest", err)
	}

	plan, err := a.planTransfers(table.TableID, row.ID, fragments, doc)
	if err != nil {
		return false, err
	}
	if plan.impossible {
		log.Warn().Str("func", "AttachmentSyncEngine.SyncRowAttachments").Str("row_id", row.ID).
			Msg("row references a file missing on both device and server")
	}

	uploaded := len(plan.uploads) == 0
	if !uploaded && mode.AllowsUpload() {
		for _, batch := range batchAttachments(plan.uploads, a.budget) {
			if err = a.sync.UploadInstanceFileBatch(ctx, table.InstanceFilesURI, row.ID, batch); err != nil {
				return false, fmt.Errorf("uploading attachments: %w", err)
			}
		}
		uploaded = true
	}

	downloaded := len(plan.downloads) == 0
	if !downloaded && mode.AllowsDownload() {
		for _, batch := range batchAttachments(plan.downloads, a.budget) {
			if err = a.sync.DownloadInstanceFileBatch(ctx, table.InstanceFilesURI, row.ID, batch); err != nil {
				return false, fmt.Errorf("downloading attachments: %w", err)
			}
		}
		downloaded = true
	}
	downloaded = downloaded && !plan.impossible

	if (uploaded || mode == models.AttachmentDownload) && (downloaded || mode == models.AttachmentUpload) {
		if err = a.db.UpdateManifestSyncETag(ctx, manifestURI, table.TableID, prefix+doc.ETag); err != nil {
			return false, fmt.Errorf("storing row manifest etag: %w", err)
		}
	}

	return uploaded && downloaded, nil
}

type transferPlan struct {
	uploads    []models.FileAttachment
	downloads  []models.FileAttachment
	impossible bool
}

// planTransfers splits the referenced files into uploads and downloads by
// comparing the row manifest with the instance folder.
func (a *AttachmentSyncEngine) planTransfers(tableID, rowID string, fragments []models.AttachmentFragment, doc *models.FileManifestDocument) (transferPlan, error) {
	var plan transferPlan

	referenced := make(map[string]models.AttachmentFragment, len(fragments))
	for _, f := range fragments {
		referenced[layout.NormalizeName(f.RowPath)] = f
	}

	for _, entry := range doc.Entries {
		name := layout.NormalizeName(entry.Filename)
		frag, ok := referenced[name]
		if !ok {
			continue
		}
		delete(referenced, name)

		local, err := a.layout.RowPathFile(tableID, rowID, frag.RowPath)
		if err != nil {
			return plan, protocolError("row manifest", err)
		}
		size, exists, err := fileSize(local)
		if err != nil {
			return plan, err
		}

		switch {
		case entry.MD5Hash == "" && exists:
			plan.uploads = append(plan.uploads, models.FileAttachment{RowPath: frag.RowPath, LocalPath: local, ContentLength: size})
		case entry.MD5Hash == "":
			plan.impossible = true
		case exists:
			hash, err := a.hasher.Hash(local)
			if err != nil {
				return plan, fmt.Errorf("hashing %s: %w", local, err)
			}
			if !utils.SameHash(hash, entry.MD5Hash) {
				plan.downloads = append(plan.downloads, downloadOf(frag, local, entry))
			}
		default:
			plan.downloads = append(plan.downloads, downloadOf(frag, local, entry))
		}
	}

	for _, f := range fragments {
		if _, unlisted := referenced[layout.NormalizeName(f.RowPath)]; !unlisted {
			continue
		}
		local, err := a.layout.RowPathFile(tableID, rowID, f.RowPath)
		if err != nil {
			return plan, protocolError("row path", err)
		}
		size, exists, err := fileSize(local)
		if err != nil {
			return plan, err
		}
		if exists {
			plan.uploads = append(plan.uploads, models.FileAttachment{RowPath: f.RowPath, LocalPath: local, ContentLength: size})
		} else {
			plan.impossible = true
		}
	}

	return plan, nil
}

func downloadOf(f models.AttachmentFragment, local string, entry models.FileManifestEntry) models.FileAttachment {
	return models.FileAttachment{
		RowPath:       f.RowPath,
		LocalPath:     local,
		DownloadURL:   entry.DownloadURL,
		ContentLength: entry.ContentLength,
	}
}

func fileSize(path string) (int64, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, false, nil
	}
	return info.Size(), true, nil
}

// batchAttachments groups files so that each batch stays within budget
// bytes. A file larger than the budget travels alone.
func batchAttachments(files []models.FileAttachment, budget int64) [][]models.FileAttachment {
	var (
		batches [][]models.FileAttachment
		batch   []models.FileAttachment
		size    int64
	)
	for _, f := range files {
		if len(batch) > 0 && size+f.ContentLength > budget {
			batches = append(batches, batch)
			batch, size = nil, 0
		}
		batch = append(batch, f)
		size += f.ContentLength
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}

// rowManifestPrefix qualifies a cached row manifest ETag with the mode and
// the set of referenced files it was confirmed for.
func rowManifestPrefix(mode models.AttachmentMode, row models.Row, columns models.OrderedColumns) string {
	var b strings.Builder
	b.WriteString(row.RowETag)
	for _, c := range columns.Attachments() {
		b.WriteString("<")
		b.WriteString(c.ElementKey)
		b.WriteString("|")
		if v := row.Values[c.ElementKey]; v != nil {
			b.WriteString(*v)
		}
		b.WriteString(">")
	}
	return string(mode) + "." + utils.MD5Hash([]byte(b.String())) + "|"
}

// without returns ids minus the ones in exclude, keeping order.
func without(ids, exclude []string) []string {
	if len(exclude) == 0 {
		return ids
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
