package renderer

import (
	"image"

	"github.com/linuxmatters/sampleviz/internal/config"
	"golang.org/x/image/font"
)

const (
	barGap      = 4
	barMinWidth = 2
)

// Spectrum draws normalised bar heights (0.0-1.0) as a bar graph panel
// with a label band above. Bars fade from full brightness at the base to
// half brightness at the tip.
type Spectrum struct {
	img      *image.RGBA
	fontFace font.Face
	palette  Palette

	panel     image.Rectangle
	maxHeight int

	// Pre-computed values
	alphaTable    []uint8    // Fade factor per pixel of bar height
	barColorTable [][3]uint8 // Bar colour blended over the background per alpha
}

// NewSpectrum creates a spectrum panel renderer. fontFace may be nil.
func NewSpectrum(fontFace font.Face, palette Palette) *Spectrum {
	panel := image.Rect(0, config.LabelHeight, config.Width, config.LabelHeight+config.Height)
	maxHeight := panel.Dy() - config.GridStepY/4

	// Pre-compute alpha gradient table (0.5 to 1.0 range)
	alphaTable := make([]uint8, maxHeight)
	for i := 0; i < maxHeight; i++ {
		distanceFromBase := float64(i) / float64(maxHeight)
		alphaTable[i] = uint8((1.0 - distanceFromBase*0.5) * 255)
	}

	// Pre-compute bar colours at every alpha level, blended over the background
	bg, fg := palette.Background, palette.Trace
	barColorTable := make([][3]uint8, 256)
	for alpha := 0; alpha < 256; alpha++ {
		factor := float64(alpha) / 255.0
		barColorTable[alpha][0] = uint8(float64(fg.R)*factor + float64(bg.R)*(1-factor))
		barColorTable[alpha][1] = uint8(float64(fg.G)*factor + float64(bg.G)*(1-factor))
		barColorTable[alpha][2] = uint8(float64(fg.B)*factor + float64(bg.B)*(1-factor))
	}

	return &Spectrum{
		img:           image.NewRGBA(image.Rect(0, 0, config.Width, config.LabelHeight+config.Height)),
		fontFace:      fontFace,
		palette:       palette,
		panel:         panel,
		maxHeight:     maxHeight,
		alphaTable:    alphaTable,
		barColorTable: barColorTable,
	}
}

// Draw renders the bars and the label
func (s *Spectrum) Draw(barHeights []float64, label string) {
	newCanvas(s.img, s.img.Bounds()).fill(s.palette.Background)

	c := newCanvas(s.img, s.panel)
	for x := 0; x <= c.width(); x += config.GridStepX {
		c.vLine(x, s.palette.Grid, config.GridAlpha)
	}
	c.hLine(c.height()-1, s.palette.Axis, config.GridAlpha)

	s.drawBars(c, barHeights)

	pad := config.GridStepX / 10
	DrawLabel(s.img, s.fontFace, label, pad, 0, config.LabelHeight, s.palette.Text)
}

// drawBars renders each bar upward from the panel floor one scanline at a
// time, reusing a single pixel pattern per scanline.
func (s *Spectrum) drawBars(c canvas, barHeights []float64) {
	numBars := len(barHeights)
	if numBars == 0 {
		return
	}

	barWidth := max(barMinWidth, (c.width()-(numBars-1)*barGap)/numBars)
	totalWidth := numBars*barWidth + (numBars-1)*barGap
	startX := max(0, (c.width()-totalWidth)/2)

	// Pre-allocate pixel pattern buffer (reused for all bars)
	pixelPattern := make([]byte, barWidth*4)

	for i, h := range barHeights {
		barHeight := int(min(max(h, 0), 1) * float64(s.maxHeight))
		if barHeight <= 0 {
			continue
		}

		x := startX + i*(barWidth+barGap)
		if x+barWidth > c.width() {
			continue
		}

		yEnd := c.height() - 1
		for y := yEnd - barHeight; y < yEnd; y++ {
			// Fade with distance from the base
			alpha := s.alphaTable[(yEnd-1-y)*s.maxHeight/barHeight]
			colors := &s.barColorTable[alpha]

			// Fill pixel pattern once for this scanline
			for px := 0; px < barWidth; px++ {
				offset := px * 4
				pixelPattern[offset] = colors[0]
				pixelPattern[offset+1] = colors[1]
				pixelPattern[offset+2] = colors[2]
				pixelPattern[offset+3] = 255
			}

			// Write entire bar width with single copy
			offset := c.offset(x, y)
			copy(s.img.Pix[offset:offset+barWidth*4], pixelPattern)
		}
	}
}

// GetImage returns the rendered panel
func (s *Spectrum) GetImage() *image.RGBA {
	return s.img
}
