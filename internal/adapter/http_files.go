package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/utils"
	"github.com/MKhiriev/go-odk-sync/models"
)

// GetAppLevelFileManifest implements [Synchronizer]. When local files are
// about to be pushed the full manifest is always fetched.
func (h *httpSynchronizer) GetAppLevelFileManifest(ctx context.Context, lastKnownETag, serverReportedETag string, pushLocalFiles bool) (*models.FileManifestDocument, error) {
	if pushLocalFiles {
		lastKnownETag = ""
	} else if lastKnownETag != "" && serverReportedETag == lastKnownETag {
		return nil, nil
	}
	return h.fetchManifest(ctx, "get app level manifest", h.manifestPath(), lastKnownETag)
}

// GetTableLevelFileManifest implements [Synchronizer].
func (h *httpSynchronizer) GetTableLevelFileManifest(ctx context.Context, tableID, lastKnownETag, serverReportedETag string, pushLocalFiles bool) (*models.FileManifestDocument, error) {
	if pushLocalFiles {
		lastKnownETag = ""
	} else if lastKnownETag != "" && serverReportedETag == lastKnownETag {
		return nil, nil
	}
	return h.fetchManifest(ctx, "get table level manifest", h.manifestPath()+escapePath(tableID), lastKnownETag)
}

// GetRowLevelFileManifest implements [Synchronizer].
func (h *httpSynchronizer) GetRowLevelFileManifest(ctx context.Context, instanceFilesURI, rowID, lastKnownETag string) (*models.FileManifestDocument, error) {
	return h.fetchManifest(ctx, "get row level manifest", instancePath(instanceFilesURI, rowID, "manifest"), lastKnownETag)
}

func (h *httpSynchronizer) fetchManifest(ctx context.Context, op, uri, lastKnownETag string) (*models.FileManifestDocument, error) {
	req, err := h.request(ctx)
	if err != nil {
		return nil, err
	}
	if lastKnownETag != "" {
		req.SetHeader("If-None-Match", lastKnownETag)
	}

	resp, err := req.Get(uri)
	if err != nil {
		return nil, transportError(op, err)
	}
	if err = checkResponse(resp, http.StatusOK, http.StatusNotModified); err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotModified {
		return nil, nil
	}

	var manifest models.FileManifest
	if err = decode(op, resp.Body(), &manifest); err != nil {
		return nil, err
	}
	entries := manifest.Files
	if entries == nil {
		entries = []models.FileManifestEntry{}
	}
	return &models.FileManifestDocument{ETag: resp.Header().Get("ETag"), Entries: entries}, nil
}

// DownloadFile implements [Synchronizer]. The md5 of an existing destPath
// is sent as If-None-Match so unchanged files are not transferred.
func (h *httpSynchronizer) DownloadFile(ctx context.Context, destPath, downloadURL string) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(destPath); statErr == nil {
		if md5, hashErr := utils.MD5HashFile(destPath); hashErr == nil {
			req.SetHeader("If-None-Match", md5)
		}
	}

	resp, err := req.SetDoNotParseResponse(true).Get(downloadURL)
	if err != nil {
		return transportError("download file", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err = checkResponse(resp, http.StatusOK, http.StatusNotModified); err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotModified {
		logger.FromContext(ctx).Debug().
			Str("func", "httpSynchronizer.DownloadFile").
			Str("url", downloadURL).
			Msg("file not modified")
		return nil
	}

	if _, err = h.writeAtomically(body, destPath); err != nil {
		return fmt.Errorf("%w: download %s: %w", ErrNetworkTransmission, downloadURL, err)
	}
	return nil
}

// writeAtomically copies r into a temporary sibling of dest and renames it
// into place, so dest never holds a partial file.
func (h *httpSynchronizer) writeAtomically(r io.Reader, dest string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, err
	}

	tmp := h.tempNames.TempName(dest)
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, dest)
	}
	if err != nil {
		os.Remove(tmp)
		return n, err
	}
	return n, nil
}

// UploadConfigFile implements [Synchronizer].
func (h *httpSynchronizer) UploadConfigFile(ctx context.Context, configRelativePath, localPath string) error {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", localPath, err)
	}

	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", utils.ContentTypeFor(localPath)).
		SetBody(content).
		Post(h.configFilePath(configRelativePath))
	if err != nil {
		return transportError("upload config file", err)
	}
	return checkResponse(resp, http.StatusCreated, http.StatusAccepted)
}

// DeleteConfigFile implements [Synchronizer].
func (h *httpSynchronizer) DeleteConfigFile(ctx context.Context, configRelativePath string) error {
	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Delete(h.configFilePath(configRelativePath))
	if err != nil {
		return transportError("delete config file", err)
	}
	return checkResponse(resp, http.StatusOK)
}

// UploadInstanceFileBatch implements [Synchronizer]. Files are sent as one
// multipart body, each part named by its row path.
func (h *httpSynchronizer) UploadInstanceFileBatch(ctx context.Context, instanceFilesURI, rowID string, files []models.FileAttachment) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.SetBoundary("ref" + h.tempNames.Generate()); err != nil {
		return fmt.Errorf("set multipart boundary: %w", err)
	}

	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", "file;filename="+utils.QuoteFilename(f.RowPath))
		header.Set("Content-Type", utils.ContentTypeFor(f.RowPath))

		part, err := mw.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create multipart part: %w", err)
		}
		if err = copyFile(part, f.LocalPath); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", mw.FormDataContentType()).
		SetBody(buf.Bytes()).
		Post(instancePath(instanceFilesURI, rowID, "upload"))
	if err != nil {
		return transportError("upload instance files", err)
	}
	return checkResponse(resp, http.StatusCreated)
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", path, err)
	}
	defer f.Close()

	if _, err = io.Copy(w, f); err != nil {
		return fmt.Errorf("read attachment %s: %w", path, err)
	}
	return nil
}

// DownloadInstanceFileBatch implements [Synchronizer]. The server answers
// with a multipart body whose parts name the row path they carry.
func (h *httpSynchronizer) DownloadInstanceFileBatch(ctx context.Context, instanceFilesURI, rowID string, files []models.FileAttachment) error {
	targets := make(map[string]string, len(files))
	manifest := models.FileManifest{Files: make([]models.FileManifestEntry, 0, len(files))}
	for _, f := range files {
		targets[layout.NormalizeName(f.RowPath)] = f.LocalPath
		manifest.Files = append(manifest.Files, models.FileManifestEntry{Filename: f.RowPath})
	}

	req, err := h.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(manifest).
		SetDoNotParseResponse(true).
		Post(instancePath(instanceFilesURI, rowID, "download"))
	if err != nil {
		return transportError("download instance files", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err = checkResponse(resp, http.StatusOK); err != nil {
		return err
	}

	_, params, err := mime.ParseMediaType(resp.Header().Get("Content-Type"))
	if err != nil || params["boundary"] == "" {
		return fmt.Errorf("%w: unable to extract multipart boundary", ErrClientDetectedVersionMismatch)
	}

	mr := multipart.NewReader(body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read multipart body: %w", ErrNetworkTransmission, err)
		}

		name := extractFilename(part.Header.Get("Content-Disposition"))
		if name == "" {
			return fmt.Errorf("%w: server did not name the row path of a file", ErrClientDetectedVersionMismatch)
		}
		dest, ok := targets[layout.NormalizeName(name)]
		if !ok {
			return fmt.Errorf("%w: server sent unrequested file %q", ErrClientDetectedVersionMismatch, name)
		}

		if _, err = h.writeAtomically(part, dest); err != nil {
			return fmt.Errorf("%w: write %s: %w", ErrNetworkTransmission, dest, err)
		}
	}
}

// extractFilename returns the filename parameter of a Content-Disposition
// header written with doubled quotes.
func extractFilename(header string) string {
	const marker = `filename="`
	first := strings.Index(header, marker)
	if first < 0 {
		return ""
	}
	first += len(marker)
	last := strings.LastIndex(header, `"`)
	if last < first {
		return ""
	}
	return strings.ReplaceAll(header[first:last], `""`, `"`)
}
