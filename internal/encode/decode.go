package encode

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ftrvxmtrx/tga"
)

// DecodeFile reads an image, choosing the decoder by extension. TGA has no
// magic number, so formats are never sniffed from content.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("encode: open %s: %w", path, err)
	}
	defer f.Close()

	format, _ := FormatFromPath(path)
	var img image.Image
	switch format {
	case PPM:
		img, err = DecodePPM(f)
	case TGA:
		img, err = tga.Decode(f)
	case PNG:
		img, err = png.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("encode: decode %s: %w", path, err)
	}
	return img, nil
}
