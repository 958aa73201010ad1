package models

import (
	"fmt"
	"strings"
)

// AttachmentMode restricts which directions of row attachment transfer are
// allowed during a sync.
type AttachmentMode string

const (
	AttachmentSync     AttachmentMode = "SYNC"
	AttachmentUpload   AttachmentMode = "UPLOAD"
	AttachmentDownload AttachmentMode = "DOWNLOAD"
	AttachmentNone     AttachmentMode = "NONE"
)

// ParseAttachmentMode accepts the mode names case-insensitively. An empty
// string yields SYNC.
func ParseAttachmentMode(s string) (AttachmentMode, error) {
	switch mode := AttachmentMode(strings.ToUpper(strings.TrimSpace(s))); mode {
	case "":
		return AttachmentSync, nil
	case AttachmentSync, AttachmentUpload, AttachmentDownload, AttachmentNone:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown attachment mode %q", s)
	}
}

// AllowsUpload reports whether local files may be sent to the server.
func (m AttachmentMode) AllowsUpload() bool {
	return m == AttachmentSync || m == AttachmentUpload
}

// AllowsDownload reports whether server files may be fetched.
func (m AttachmentMode) AllowsDownload() bool {
	return m == AttachmentSync || m == AttachmentDownload
}

// Restrict narrows m to the downloads it allows. Rows held in conflict only
// fetch files: their local values are not authoritative.
func (m AttachmentMode) Restrict(to AttachmentMode) AttachmentMode {
	switch {
	case m == AttachmentNone || to == AttachmentNone:
		return AttachmentNone
	case m == AttachmentSync:
		return to
	case to == AttachmentSync || to == m:
		return m
	default:
		return AttachmentNone
	}
}

// AttachmentFragment is a non-null row-path value of one attachment column.
type AttachmentFragment struct {
	ElementKey string
	RowPath    string
}

// FileAttachment binds a row-path to its local file and server location.
type FileAttachment struct {
	RowPath       string
	LocalPath     string
	DownloadURL   string
	ContentLength int64
}
