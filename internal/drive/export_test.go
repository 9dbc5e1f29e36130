package drive

import (
	"sort"
	"testing"
)

func TestExportMimeType(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"report.pdf", "application/pdf", true},
		{"report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"sheet.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", true},
		{"sheet.csv", "text/csv", true},
		{"notes.txt", "text/plain", true},
		{"slides.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", true},
		{"/home/user/docs/report.PDF", "application/pdf", true},
		{"archive.zip", "", false},
		{"noextension", "", false},
	}

	for _, tt := range tests {
		mimeType, ok := ExportMimeType(tt.path)
		if ok != tt.ok || mimeType != tt.expected {
			t.Errorf("ExportMimeType(%q) = (%q, %v), want (%q, %v)",
				tt.path, mimeType, ok, tt.expected, tt.ok)
		}
	}
}

func TestSupportedExportExtensions(t *testing.T) {
	exts := SupportedExportExtensions()

	if len(exts) != len(exportMimeTypes) {
		t.Errorf("Expected %d extensions, got %d", len(exportMimeTypes), len(exts))
	}
	if !sort.StringsAreSorted(exts) {
		t.Errorf("Expected extensions to be sorted, got %v", exts)
	}
	for _, ext := range exts {
		if _, ok := exportMimeTypes[ext]; !ok {
			t.Errorf("Extension %s has no MIME type entry", ext)
		}
	}
}
