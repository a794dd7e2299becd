package camera

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoCode is returned when an image contains no readable code.
var ErrNoCode = errors.New("no code found")

// Decoder reads QR codes and common 1D barcodes from images. It is not
// safe for concurrent use.
type Decoder struct {
	readers []gozxing.Reader
	hints   map[gozxing.DecodeHintType]interface{}
}

// NewDecoder returns a decoder for QR, Code 128 and EAN-13.
func NewDecoder() *Decoder {
	return &Decoder{
		readers: []gozxing.Reader{
			qrcode.NewQRCodeReader(),
			oned.NewCode128Reader(),
			oned.NewEAN13Reader(),
		},
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode returns the text of the first code found in img.
func (d *Decoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("preparing image: %w", err)
	}
	for _, r := range d.readers {
		res, err := r.Decode(bmp, d.hints)
		if err == nil {
			return res.GetText(), nil
		}
	}
	return "", ErrNoCode
}

// DecodeFile decodes a PNG or JPEG file.
func (d *Decoder) DecodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decoding image %s: %w", path, err)
	}
	return d.Decode(img)
}
