package facultycert

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const fallbackFontName = "Go"

type FontMetadata struct {
	Name string `json:"name"`
	// Subfamily as written in the font, e.g. "Regular" or "Bold Italic"
	Style string `json:"style"`
	Path  string `json:"path"`
}

func (m FontMetadata) isBold() bool {
	return strings.Contains(strings.ToLower(m.Style), "bold")
}

func (m FontMetadata) isItalic() bool {
	style := strings.ToLower(m.Style)
	return strings.Contains(style, "italic") || strings.Contains(style, "oblique")
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	style, err := font.Name(nil, sfnt.NameIDSubfamily)
	if err != nil {
		style = "Regular"
	}

	return &FontMetadata{
		Name:  name,
		Style: style,
		Path:  fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	fonts := []FontMetadata{}

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// List the available font family and its path
func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	if path == "" {
		path = "font_metadata.json"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("reading font metadata: %w", err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("unmarshalling font metadata: %w", err)
	}

	return fonts, nil
}

// FontNames lists the distinct family names of the scanned fonts.
func FontNames(fonts []*FontMetadata) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, f := range fonts {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	return names
}

type FontLoader struct {
	AvailableFonts []*FontMetadata
	logger         Logger
}

// NewFontLoader reads the metadata file. A missing file leaves only the built-in Go fonts.
func NewFontLoader(cfg *Config, logger Logger) *FontLoader {
	if logger == nil {
		logger = nopLogger{}
	}

	fonts, err := GetAvailableFonts(cfg.FontMetadataPath)
	if err != nil {
		logger.Warnf("Font metadata unavailable, using built-in fonts: %v", err)
	}

	return &FontLoader{
		AvailableFonts: fonts,
		logger:         logger,
	}
}

// LoadFamily loads the regular and bold faces of the named family. Unknown names and
// unreadable files fall back to the Go fonts. A family without a bold file reuses regular.
func (fl *FontLoader) LoadFamily(fontName string) *canvas.FontFamily {
	var regular, bold string
	for _, font := range fl.AvailableFonts {
		if font.Name != fontName || font.isItalic() {
			continue
		}
		if font.isBold() {
			bold = font.Path
		} else {
			regular = font.Path
		}
	}

	if regular != "" {
		if bold == "" {
			bold = regular
		}

		family := canvas.NewFontFamily(fontName)
		errRegular := family.LoadFontFile(regular, canvas.FontRegular)
		errBold := family.LoadFontFile(bold, canvas.FontBold)
		if errRegular == nil && errBold == nil {
			return family
		}
		fl.logger.Warnf("Failed to load font %s, using built-in fonts: %v %v", fontName, errRegular, errBold)
	} else if fontName != "" {
		fl.logger.Warnf("Font %s not found, using built-in fonts", fontName)
	}

	return fallbackFontFamily()
}

func fallbackFontFamily() *canvas.FontFamily {
	family := canvas.NewFontFamily(fallbackFontName)
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		panic(fmt.Sprintf("load built-in regular font: %v", err))
	}
	if err := family.LoadFont(gobold.TTF, 0, canvas.FontBold); err != nil {
		panic(fmt.Sprintf("load built-in bold font: %v", err))
	}
	return family
}
