package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/sampleviz/internal/config"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Palette holds the colours used to draw panels
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Axis       color.RGBA
	Reference  color.RGBA
	Sample     color.RGBA
	Trace      color.RGBA
	Text       color.RGBA
}

// NewPalette returns the panel colours, applying any overrides in rc
func NewPalette(rc *config.RuntimeConfig) Palette {
	rgb := func(r, g, b uint8) color.RGBA {
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}

	return Palette{
		Background: rgb(config.BackgroundColorR, config.BackgroundColorG, config.BackgroundColorB),
		Grid:       rgb(config.GridColorR, config.GridColorG, config.GridColorB),
		Axis:       rgb(config.AxisColorR, config.AxisColorG, config.AxisColorB),
		Reference:  rgb(rc.GetReferenceColor()),
		Sample:     rgb(rc.GetSampleColor()),
		Trace:      rgb(rc.GetTraceColor()),
		Text:       rgb(config.TextColorR, config.TextColorG, config.TextColorB),
	}
}

// LoadFont returns the embedded Go Regular face at the given size
func LoadFont(size float64) (font.Face, error) {
	return parseFace(goregular.TTF, size)
}

// LoadFontFile loads a TrueType font from a file
func LoadFontFile(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}
	return parseFace(fontBytes, size)
}

func parseFace(fontBytes []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	return face, nil
}

// measureText returns the width and actual bounds of rendered text
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}

// DrawLabel draws text left-aligned at x, vertically centred in the band
// of the given height starting at top. A nil face draws nothing.
func DrawLabel(img *image.RGBA, face font.Face, text string, x, top, height int, col color.RGBA) {
	if face == nil || text == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	// The baseline sits below the visual top by the ascent (-Min.Y)
	_, bounds := measureText(face, text)
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()
	y := top + (height-textHeight)/2 - bounds.Min.Y.Floor()

	d.Dot = freetype.Pt(x, y)
	d.DrawString(text)
}

// SavePNG writes img to a PNG file
func SavePNG(img image.Image, outputPath string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
