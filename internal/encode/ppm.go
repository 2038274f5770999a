package encode

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const ppmMagic = "P6"

// EncodePPM writes img as a binary PPM (P6): an ASCII header
// "P6\n<w> <h>\n255\n" followed by 3 bytes (R,G,B) per pixel, row-major from
// the top-left. Alpha is dropped.
func EncodePPM(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", ppmMagic, b.Dx(), b.Dy()); err != nil {
		return err
	}

	row := make([]byte, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if n, ok := img.(*image.NRGBA); ok {
			pix := n.Pix[n.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				copy(row[3*x:3*x+3], pix[4*x:4*x+3])
			}
		} else {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, y)).(color.NRGBA)
				row[3*x], row[3*x+1], row[3*x+2] = c.R, c.G, c.B
			}
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var errPPMHeader = errors.New("encode: malformed PPM header")

type ppmHeader struct {
	width, height, maxval int
}

// readPPMHeader parses the P6 magic, dimensions and maxval, skipping
// whitespace and '#' comments, and consumes the single byte that separates
// the header from the raster.
func readPPMHeader(r *bufio.Reader) (ppmHeader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(r, magic); err != nil {
		return ppmHeader{}, err
	}
	if string(magic) != ppmMagic {
		return ppmHeader{}, fmt.Errorf("encode: not a P6 PPM (magic %q)", magic)
	}

	var vals [3]int
	for i := range vals {
		v, err := readPPMInt(r)
		if err != nil {
			return ppmHeader{}, err
		}
		vals[i] = v
	}
	h := ppmHeader{width: vals[0], height: vals[1], maxval: vals[2]}
	if h.width <= 0 || h.height <= 0 || h.maxval <= 0 || h.maxval > 255 {
		return ppmHeader{}, fmt.Errorf("%w: %dx%d maxval %d", errPPMHeader, h.width, h.height, h.maxval)
	}
	return h, nil
}

func readPPMInt(r *bufio.Reader) (int, error) {
	// Skip whitespace and comments.
	var c byte
	for {
		var err error
		c, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errPPMHeader, err)
		}
		if c == '#' {
			if _, err := r.ReadString('\n'); err != nil {
				return 0, fmt.Errorf("%w: %v", errPPMHeader, err)
			}
			continue
		}
		if !isPPMSpace(c) {
			break
		}
	}

	n := 0
	for {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: unexpected byte %q", errPPMHeader, c)
		}
		n = n*10 + int(c-'0')
		if n > 1<<20 {
			return 0, fmt.Errorf("%w: value too large", errPPMHeader)
		}
		var err error
		c, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errPPMHeader, err)
		}
		if isPPMSpace(c) {
			return n, nil
		}
	}
}

func isPPMSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// DecodePPM reads a binary PPM (P6) image.
func DecodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	row := make([]byte, 3*h.width)
	for y := 0; y < h.height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("encode: PPM raster row %d: %w", y, err)
		}
		pix := img.Pix[y*img.Stride:]
		for x := 0; x < h.width; x++ {
			pix[4*x] = scaleToByte(row[3*x], h.maxval)
			pix[4*x+1] = scaleToByte(row[3*x+1], h.maxval)
			pix[4*x+2] = scaleToByte(row[3*x+2], h.maxval)
			pix[4*x+3] = 255
		}
	}
	return img, nil
}

// DecodePPMConfig returns the dimensions of a binary PPM without reading the raster.
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	h, err := readPPMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

func scaleToByte(v byte, maxval int) byte {
	if maxval == 255 {
		return v
	}
	return byte(min(int(v), maxval) * 255 / maxval)
}
