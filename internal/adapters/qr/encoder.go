package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"eventful/internal/domain"
)

type pngEncoder struct {
	size int
}

// NewPNGEncoder returns a QREncoder that renders tokens as PNG data URLs of
// the given pixel size.
func NewPNGEncoder(size int) domain.QREncoder {
	return &pngEncoder{size: size}
}

func (e *pngEncoder) Encode(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, e.size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrQREncodeFailed, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
