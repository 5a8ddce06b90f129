package util

import (
	"strings"
	"testing"
)

func TestPrepareFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		options  *FileUploadOptions
		expected string
	}{
		{"no options", "logo.png", nil, "logo.png"},
		{"directory", "logo.png", &FileUploadOptions{DirectoryPath: GetTemplateDirectoryPath("t1")}, "templates/t1/logo.png"},
		{"strips client directories", "../../etc/logo.png", &FileUploadOptions{DirectoryPath: "templates/t1"}, "templates/t1/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareFileName(tt.input, tt.options); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	unique := prepareFileName("logo.png", &FileUploadOptions{DirectoryPath: "templates/t1", UniquePrefix: true})
	if !strings.HasPrefix(unique, "templates/t1/") || !strings.HasSuffix(unique, "_logo.png") {
		t.Errorf("unexpected unique name %q", unique)
	}

	if got := prepareFileName("certificate_123_abcd.pdf", &FileUploadOptions{DirectoryPath: GetCertificateDirectoryPath("123")}); got != "certificates/123/certificate_123_abcd.pdf" {
		t.Errorf("unexpected certificate path %q", got)
	}
}
