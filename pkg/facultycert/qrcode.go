package facultycert

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
	svgqr "github.com/wamuir/svg-qr-code"
)

// QRCodeImage renders link as a size x size pixel QR code.
func QRCodeImage(link string, size int) (image.Image, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return qr.Image(size), nil
}

// QRCodeSVG renders link as a standalone SVG document.
func QRCodeSVG(link string) (string, error) {
	qr, err := svgqr.New(link)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}
	return qr.String(), nil
}
