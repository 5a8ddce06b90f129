package facultycert

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetUnreadable, err)
	}
	return img, nil
}

// imageExtension maps the sniffed content type to the extension pdfcpu expects for
// image watermarks.
func imageExtension(data []byte) (string, error) {
	switch contentType := http.DetectContentType(data); contentType {
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	default:
		return "", fmt.Errorf("%w: unsupported background type %s", ErrAssetUnreadable, contentType)
	}
}
