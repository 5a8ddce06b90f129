package facultycert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"
)

func TestFontLoader(t *testing.T) {
	t.Run("missing metadata falls back to built-in fonts", func(t *testing.T) {
		logger := &recordingLogger{}
		loader := NewFontLoader(&Config{FontMetadataPath: filepath.Join(t.TempDir(), "none.json")}, logger)
		if len(loader.AvailableFonts) != 0 {
			t.Errorf("expected no fonts, got %d", len(loader.AvailableFonts))
		}

		family := loader.LoadFamily("Unknown Sans")
		if family == nil {
			t.Fatal("expected a fallback family")
		}
		if face := family.Face(11, canvas.Black, canvas.FontBold, canvas.FontNormal); face == nil {
			t.Error("expected a bold face")
		}
		if !logger.contains("Unknown Sans") {
			t.Errorf("expected a warning naming the font, got %v", logger.warnings)
		}
	})

	t.Run("metadata file is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "font_metadata.json")
		data := `[{"name":"Brand","style":"Regular","path":"a.ttf"},{"name":"Brand","style":"Bold","path":"b.ttf"},{"name":"Other","style":"Regular","path":"c.ttf"}]`
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		fonts, err := GetAvailableFonts(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if names := FontNames(fonts); len(names) != 2 || names[0] != "Brand" || names[1] != "Other" {
			t.Errorf("unexpected names %v", names)
		}
	})

	t.Run("scan skips non font files", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0644); err != nil {
			t.Fatal(err)
		}

		fonts, err := ScanFontDir(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fonts) != 0 {
			t.Errorf("expected no fonts, got %v", fonts)
		}
	})
}
