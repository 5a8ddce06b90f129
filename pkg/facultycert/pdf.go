package facultycert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ApplyBackgroundToPdf stamps an image behind the content of every page, stretched to the
// page size.
func ApplyBackgroundToPdf(inFile, outFile, imageFile string) error {
	description := "pos: c, scale: 1 rel, rotation: 0, opacity: 1"
	if err := api.AddImageWatermarksFile(inFile, outFile, nil, false, imageFile, description, nil); err != nil {
		return fmt.Errorf("failed to apply background to PDF: %w", err)
	}
	return nil
}

func GetPageCount(rs io.ReadSeeker) (int, error) {
	return api.PageCount(rs, nil)
}

// applyBackground round-trips the document through scratch files since pdfcpu stamps
// images from disk.
func applyBackground(tmpDir string, doc, background []byte) ([]byte, error) {
	ext, err := imageExtension(background)
	if err != nil {
		return nil, err
	}

	if tmpDir != "" {
		if err := os.MkdirAll(tmpDir, 0755); err != nil {
			return nil, err
		}
	}
	dir, err := os.MkdirTemp(tmpDir, "background-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	inFile := filepath.Join(dir, "in.pdf")
	outFile := filepath.Join(dir, "out.pdf")
	imageFile := filepath.Join(dir, "background"+ext)

	if err := os.WriteFile(inFile, doc, 0644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(imageFile, background, 0644); err != nil {
		return nil, err
	}

	if err := ApplyBackgroundToPdf(inFile, outFile, imageFile); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(outFile)
	if err != nil {
		return nil, err
	}

	if _, err := GetPageCount(bytes.NewReader(out)); err != nil {
		return nil, fmt.Errorf("stamped PDF unreadable: %w", err)
	}

	return out, nil
}
