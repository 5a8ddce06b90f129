package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
)

func main() {
	fontDir := flag.String("dir", "fonts", "directory holding .ttf and .otf files")
	outputFile := flag.String("out", "font_metadata.json", "metadata file read by the certificate composer")
	flag.Parse()

	fonts, err := facultycert.ScanFontDir(*fontDir)
	if err != nil {
		log.Fatalf("Failed to scan font directory: %v", err)
	}

	data, err := json.MarshalIndent(fonts, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write JSON file: %v", err)
	}

	fmt.Printf("Saved metadata for %d fonts to %q\n", len(fonts), *outputFile)
}
