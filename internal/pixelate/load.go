package pixelate

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/linuxmatters/sampleviz/internal/config"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load decodes an image file (PNG, JPEG, GIF, BMP, TIFF or WebP) into RGBA,
// scaled down to fit config.MaxImageWidth x config.MaxImageHeight.
func Load(filename string) (*image.RGBA, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads any registered image format into RGBA
func Decode(r io.Reader) (*image.RGBA, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("empty %s image", format)
	}

	return Fit(img, config.MaxImageWidth, config.MaxImageHeight), nil
}

// Fit converts img to RGBA at origin (0,0), scaling it down with bilinear
// interpolation when it exceeds maxW x maxH. Aspect ratio is preserved.
func Fit(img image.Image, maxW, maxH int) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxW && h <= maxH {
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
		return rgba
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	dw := max(1, int(float64(w)*scale))
	dh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
