package util

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestAddUniquePrefixToFileName(t *testing.T) {
	filename := "testfile.txt"
	result := AddUniquePrefixToFileName(filename)

	if !strings.HasSuffix(result, "_testfile.txt") {
		t.Errorf("Expected filename to have unique prefix, got %s", result)
	}

	prefix := strings.Split(result, "_")[0]
	if len(prefix) == 0 {
		t.Errorf("Expected a non-empty unique prefix, got %s", prefix)
	}
}

func TestWriteZip(t *testing.T) {
	var buf bytes.Buffer
	entries := []ZipEntry{
		{Name: "a.pdf", Data: []byte("first"), Modified: time.Now()},
		{Name: "b.pdf", Data: []byte("second"), Modified: time.Now()},
	}
	if err := WriteZip(&buf, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("invalid zip: %v", err)
	}
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 files, got %d", len(reader.File))
	}

	rc, err := reader.File[1].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if reader.File[1].Name != "b.pdf" || string(data) != "second" {
		t.Errorf("unexpected entry %s: %q", reader.File[1].Name, data)
	}
}
