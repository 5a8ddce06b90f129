package util

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

type ZipEntry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// WriteZip writes the entries as a flat archive.
func WriteZip(w io.Writer, entries []ZipEntry) error {
	archive := zip.NewWriter(w)

	for _, e := range entries {
		header := &zip.FileHeader{
			Name:     e.Name,
			Method:   zip.Deflate,
			Modified: e.Modified,
		}

		writer, err := archive.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", e.Name, err)
		}

		if _, err := writer.Write(e.Data); err != nil {
			return fmt.Errorf("failed to write %s to zip: %w", e.Name, err)
		}
	}

	return archive.Close()
}
