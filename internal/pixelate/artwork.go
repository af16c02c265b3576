package pixelate

import (
	"fmt"
	"image"
	"strings"

	"github.com/linuxmatters/sampleviz/internal/config"
)

// Artwork names a generated sample image
type Artwork int

const (
	Gradient Artwork = iota
	Checkerboard
)

// Artworks lists every generated sample image in display order
var Artworks = []Artwork{Gradient, Checkerboard}

func (a Artwork) String() string {
	switch a {
	case Gradient:
		return "gradient"
	case Checkerboard:
		return "checkerboard"
	default:
		return fmt.Sprintf("Artwork(%d)", int(a))
	}
}

// ParseArtwork accepts "gradient" or "checkerboard"
func ParseArtwork(s string) (Artwork, error) {
	for _, a := range Artworks {
		if strings.EqualFold(strings.TrimSpace(s), a.String()) {
			return a, nil
		}
	}
	return Gradient, fmt.Errorf("unknown sample image %q (want gradient or checkerboard)", s)
}

// Generate renders the sample image at the default demo size
func (a Artwork) Generate() *image.RGBA {
	switch a {
	case Checkerboard:
		return NewCheckerboard(config.SampleImageWidth, config.SampleImageHeight, config.CheckerCell)
	default:
		return NewGradient(config.SampleImageWidth, config.SampleImageHeight)
	}
}

// NewGradient creates a diagonal colour gradient
func NewGradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := y*img.Stride + x*4
			img.Pix[offset] = uint8(float64(x) / float64(width) * 255)
			img.Pix[offset+1] = uint8(float64(y) / float64(height) * 255)
			img.Pix[offset+2] = uint8(float64(x+y) / float64(width+height) * 255)
			img.Pix[offset+3] = 255
		}
	}

	return img
}

// NewCheckerboard creates alternating cells whose tint drifts across the
// image, so both the block grid and the colour steps are visible.
func NewCheckerboard(width, height, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := y*img.Stride + x*4
			tint := uint8(float64(x) / float64(width) * 200)
			if (x/cell+y/cell)%2 == 0 {
				img.Pix[offset] = 235
				img.Pix[offset+1] = 235 - tint/4
				img.Pix[offset+2] = 55 + tint
			} else {
				img.Pix[offset] = 30 + tint/2
				img.Pix[offset+1] = 40
				img.Pix[offset+2] = 70
			}
			img.Pix[offset+3] = 255
		}
	}

	return img
}
