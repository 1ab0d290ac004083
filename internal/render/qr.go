// Package render turns an opaque pass payload into a scannable image.
// Rendering is deterministic and stateless; the poller treats it as a
// pure function.
package render

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// basePixels is the rendered edge length at scale factor 1.0. Door
// scanners want a generous quiet zone, which the encoder adds itself.
const basePixels = 256

// Renderer produces a displayable image from a payload string.
type Renderer interface {
	Render(payload string, scale float64) ([]byte, error)
}

// QRRenderer encodes payloads as PNG QR codes.
type QRRenderer struct{}

// NewQRRenderer creates the default renderer.
func NewQRRenderer() *QRRenderer {
	return &QRRenderer{}
}

// Render encodes payload as a PNG at basePixels scaled by scale.
func (r *QRRenderer) Render(payload string, scale float64) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("empty payload")
	}
	if scale <= 0 {
		scale = 1.0
	}

	size := int(basePixels * scale)
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qrcode: %w", err)
	}
	return png, nil
}
