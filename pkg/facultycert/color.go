package facultycert

import (
	"image/color"
	"regexp"

	"github.com/tdewolff/canvas"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if !IsHexColor(s) {
		return fallback
	}
	return canvas.Hex(s)
}
