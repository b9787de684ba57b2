package services

import (
	"github.com/skip2/go-qrcode"
)

const (
	qrDefaultSize = 256
	qrMinSize     = 64
	qrMaxSize     = 1024
)

// GenerateQRPNG renders content as a PNG QR code. Sizes outside the allowed
// range are clamped; zero or negative means the default.
func GenerateQRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = qrDefaultSize
	}
	if size < qrMinSize {
		size = qrMinSize
	}
	if size > qrMaxSize {
		size = qrMaxSize
	}

	return qrcode.Encode(content, qrcode.Medium, size)
}
