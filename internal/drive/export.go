package drive

import (
	"path/filepath"
	"sort"
	"strings"
)

// exportMimeTypes maps local file extensions to the export MIME types the
// Drive API accepts for Google-native documents.
var exportMimeTypes = map[string]string{
	".html": "text/html",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
	".odt":  "application/vnd.oasis.opendocument.text",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".pdf":  "application/pdf",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ods":  "application/x-vnd.oasis.opendocument.spreadsheet",
	".tsv":  "text/tab-separated-values",
	".csv":  "text/csv",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".json": "application/vnd.google-apps.script+json",
}

// ExportMimeType returns the export MIME type for a local path based on its
// extension. ok is false when the extension has no known conversion.
func ExportMimeType(localPath string) (mimeType string, ok bool) {
	ext := strings.ToLower(filepath.Ext(localPath))
	mimeType, ok = exportMimeTypes[ext]
	return mimeType, ok
}

// SupportedExportExtensions returns the extensions with a known export
// conversion, sorted for stable display.
func SupportedExportExtensions() []string {
	exts := make([]string, 0, len(exportMimeTypes))
	for ext := range exportMimeTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
