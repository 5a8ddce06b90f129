package facultycert

import (
	"fmt"
	"os"
)

type Config struct {
	// A path to json where it store font name and path to the font file
	FontMetadataPath string
	// Directory for scratch files of the background stamping step, removed after each call
	TmpDir string
}

func NewDefaultConfig() *Config {
	cfg := Config{
		FontMetadataPath: "font_metadata.json",
		TmpDir:           fmt.Sprintf("%s/facultycert/tmp", os.TempDir()),
	}

	if err := os.MkdirAll(cfg.TmpDir, 0755); err != nil {
		fmt.Printf("Error creating tmp directory: %v\n", err)
	}

	return &cfg
}
