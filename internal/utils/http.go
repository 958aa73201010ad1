package utils

import (
	"path"
	"strings"
)

// DefaultContentType is used for files whose extension is not in the table.
const DefaultContentType = "application/octet-stream"

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pbm":  "image/x-portable-bitmap",
	"ico":  "image/x-icon",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"mp2":  "audio/mpeg",
	"mp3":  "audio/mpeg",
	"wav":  "audio/x-wav",
	"asf":  "video/x-ms-asf",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"mpa":  "video/mpeg",
	"mpeg": "video/mpeg",
	"mpg":  "video/mpeg",
	"mp4":  "video/mp4",
	"qt":   "video/quicktime",
	"css":  "text/css",
	"htm":  "text/html",
	"html": "text/html",
	"csv":  "text/csv",
	"txt":  "text/plain",
	"log":  "text/plain",
	"rtf":  "application/rtf",
	"pdf":  "application/pdf",
	"zip":  "application/zip",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xml":  "application/xml",
	"js":   "application/x-javascript",
	"json": "application/x-javascript",
}

// ContentTypeFor returns the content type uploaded for a file name, chosen
// by its lower-cased extension.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}

// QuoteFilename escapes a file name for a Content-Disposition filename
// parameter. Embedded quotes are doubled.
func QuoteFilename(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
