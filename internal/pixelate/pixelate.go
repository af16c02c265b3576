// Package pixelate downsamples an RGBA image into square blocks and
// quantizes the colour of each block.
package pixelate

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/quantize"
)

// ErrSizeMismatch is returned when source and destination differ in size
var ErrSizeMismatch = errors.New("source and destination sizes differ")

// Options controls one pixelation pass
type Options struct {
	PixelSize int  // Block edge in pixels
	Bits      int  // Bits per colour channel
	Grayscale bool // Collapse to luminance before quantizing
}

// DefaultOptions returns the start-up state of the image demo
func DefaultOptions() Options {
	return Options{
		PixelSize: config.DefaultPixelSize,
		Bits:      config.DefaultImageBits,
	}
}

// Sanitize clamps PixelSize to at least 1 and Bits into the quantizer range
func (o Options) Sanitize() Options {
	if o.PixelSize < 1 {
		o.PixelSize = 1
	}
	o.Bits = quantize.ClampBits(o.Bits)
	return o
}

// Luminance converts RGB to Rec. 709 luma, rounded to the nearest integer
func Luminance(r, g, b uint8) uint8 {
	l := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return uint8(math.Min(math.Round(l), 255))
}

// Process returns a new image holding the pixelated and quantized src
func Process(src *image.RGBA, opts Options) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	apply(dst, src, opts)
	return dst
}

// Apply writes the pixelated src into dst. Blocks are aligned at the top-left
// corner, and each block takes the colour of its top-left pixel (no
// averaging). Blocks on the right and bottom edges are clipped. Alpha is
// copied from the sampled pixel unchanged.
func Apply(dst, src *image.RGBA, opts Options) error {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Dx() != db.Dx() || sb.Dy() != db.Dy() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, sb.Dx(), sb.Dy(), db.Dx(), db.Dy())
	}
	apply(dst, src, opts)
	return nil
}

// apply runs the block loop; dst and src must be the same size
func apply(dst, src *image.RGBA, opts Options) {
	sb, db := src.Bounds(), dst.Bounds()
	opts = opts.Sanitize()
	w, h := sb.Dx(), sb.Dy()
	size := opts.PixelSize

	// Pre-allocate one block row pattern (reused for every block)
	rowPattern := make([]byte, min(size, w)*4)

	for by := 0; by < h; by += size {
		blockH := min(size, h-by)

		for bx := 0; bx < w; bx += size {
			blockW := min(size, w-bx)

			so := src.PixOffset(sb.Min.X+bx, sb.Min.Y+by)
			r, g, b, a := src.Pix[so], src.Pix[so+1], src.Pix[so+2], src.Pix[so+3]

			if opts.Grayscale {
				l := Luminance(r, g, b)
				r, g, b = l, l, l
			}
			r = quantize.Channel(r, opts.Bits)
			g = quantize.Channel(g, opts.Bits)
			b = quantize.Channel(b, opts.Bits)

			pattern := rowPattern[:blockW*4]
			for px := 0; px < blockW; px++ {
				offset := px * 4
				pattern[offset] = r
				pattern[offset+1] = g
				pattern[offset+2] = b
				pattern[offset+3] = a
			}

			for y := 0; y < blockH; y++ {
				do := dst.PixOffset(db.Min.X+bx, db.Min.Y+by+y)
				copy(dst.Pix[do:do+blockW*4], pattern)
			}
		}
	}
}
