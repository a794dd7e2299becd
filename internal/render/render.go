// Package render encodes text as a QR symbol using go-qrcode.
package render

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length used when none is configured.
const DefaultSize = 256

// Artifact is a rendered QR code. It can be displayed in the terminal or
// rasterized for export.
type Artifact struct {
	Text string
	code *qrcode.QRCode
}

// Renderer builds artifacts at a fixed error-correction level.
type Renderer struct {
	level qrcode.RecoveryLevel
}

// New returns a renderer for the named recovery level (low, medium, high,
// highest). Unknown names mean medium.
func New(level string) *Renderer {
	return &Renderer{level: ParseLevel(level)}
}

// ParseLevel maps a recovery level name to go-qrcode's constant.
func ParseLevel(name string) qrcode.RecoveryLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return qrcode.Low
	case "high":
		return qrcode.High
	case "highest":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Render encodes text. It fails when text does not fit in a QR symbol at
// the renderer's recovery level.
func (r *Renderer) Render(text string) (*Artifact, error) {
	code, err := qrcode.New(text, r.level)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return &Artifact{Text: text, code: code}, nil
}

// PNG rasterizes the symbol as a black-on-white PNG of size x size pixels.
func (a *Artifact) PNG(size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	data, err := a.code.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("rasterizing qr code: %w", err)
	}
	return data, nil
}

// Terminal renders the symbol with half-block characters, two modules per
// line of text.
func (a *Artifact) Terminal() string {
	return strings.TrimRight(a.code.ToSmallString(false), "\n")
}

// Modules returns the symbol's edge length in modules, including the quiet zone.
func (a *Artifact) Modules() int {
	return len(a.code.Bitmap())
}
