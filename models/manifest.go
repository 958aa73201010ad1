package models

// FileManifestEntry describes one server file.
type FileManifestEntry struct {
	Filename      string `json:"filename"`
	ContentLength int64  `json:"contentLength"`
	ContentType   string `json:"contentType,omitempty"`
	MD5Hash       string `json:"md5hash"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
}

// FileManifest is the wire form of a manifest.
type FileManifest struct {
	Files []FileManifestEntry `json:"files"`
}

// FileManifestDocument is a fetched manifest together with its ETag.
//
// Fetch operations return *FileManifestDocument: nil means the server
// reported the manifest as not modified, while a document with no entries
// is a valid empty file set.
type FileManifestDocument struct {
	ETag    string
	Entries []FileManifestEntry
}
