package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/signal"
	"golang.org/x/image/font"
)

// Frame layout: a label band above each panel, original on top
const (
	FrameWidth  = config.Width
	FrameHeight = 2*(config.LabelHeight+config.Height) + config.PanelGap
)

var (
	originalPanel  = image.Rect(0, config.LabelHeight, config.Width, config.LabelHeight+config.Height)
	processedPanel = originalPanel.Add(image.Pt(0, config.LabelHeight+config.Height+config.PanelGap))
)

var framePool = sync.Pool{
	New: func() interface{} {
		return image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	},
}

// Frame renders the original and processed waveform panels into a pooled
// RGBA buffer. A Frame is redrawn in full on every Draw.
type Frame struct {
	img      *image.RGBA
	fontFace font.Face
	palette  Palette
}

// NewFrame creates a waveform frame renderer. fontFace may be nil to skip
// the panel labels.
func NewFrame(fontFace font.Face, palette Palette) *Frame {
	return &Frame{
		img:      framePool.Get().(*image.RGBA),
		fontFace: fontFace,
		palette:  palette,
	}
}

// Draw renders a computed waveform frame
func (f *Frame) Draw(wf signal.Frame) {
	newCanvas(f.img, f.img.Bounds()).fill(f.palette.Background)

	p := wf.Params.Sanitize()
	orig := newCanvas(f.img, originalPanel)
	proc := newCanvas(f.img, processedPanel)

	f.drawGrid(orig)
	f.drawGrid(proc)

	toPx := projection(orig.width(), orig.height(), p.Window)

	// Original panel: the continuous reference curve
	ref := make([]image.Point, len(wf.Reference))
	for i, pt := range wf.Reference {
		ref[i] = toPx(pt)
	}
	orig.polyline(ref, config.TraceWidth, f.palette.Reference)

	// Processed panel: raw sample markers, then the quantized trace
	for _, pt := range wf.Samples {
		x, y := toCanvas(pt, proc.width(), proc.height(), p.Window)
		proc.disc(x, y, config.SampleDotRadius, f.palette.Sample)
	}

	if wf.Reconstruction != nil && wf.Reconstruction.Len() > 0 {
		pts := wf.Reconstruction.Points()
		trace := make([]image.Point, 0, len(pts)+1)
		// The trace starts at the left edge at the first sample's level
		trace = append(trace, toPx(signal.Point{Time: 0, Amplitude: pts[0].Amplitude}))
		for _, pt := range pts {
			trace = append(trace, toPx(pt))
		}
		proc.polyline(trace, config.TraceWidth, f.palette.Trace)
	}

	if f.fontFace != nil {
		f.applyTextOverlay(p)
	}
}

// drawGrid paints the panel grid and the zero axis
func (f *Frame) drawGrid(c canvas) {
	for y := 0; y <= c.height(); y += config.GridStepY {
		c.hLine(y, f.palette.Grid, config.GridAlpha)
	}
	for x := 0; x <= c.width(); x += config.GridStepX {
		c.vLine(x, f.palette.Grid, config.GridAlpha)
	}
	c.hLine(c.height()/2, f.palette.Axis, config.GridAlpha)
}

// applyTextOverlay renders the panel labels
func (f *Frame) applyTextOverlay(p signal.Params) {
	pad := config.GridStepX / 10

	DrawLabel(f.img, f.fontFace, OriginalLabel(p), pad,
		originalPanel.Min.Y-config.LabelHeight, config.LabelHeight, f.palette.Text)
	DrawLabel(f.img, f.fontFace, ProcessedLabel(p), pad,
		processedPanel.Min.Y-config.LabelHeight, config.LabelHeight, f.palette.Text)
}

// OriginalLabel describes the reference panel
func OriginalLabel(p signal.Params) string {
	return fmt.Sprintf("Original  %g Hz  window %g ms", p.Frequency, p.Window*1000)
}

// ProcessedLabel describes the sampled panel, flagging aliasing
func ProcessedLabel(p signal.Params) string {
	label := fmt.Sprintf("Sampled  fs %g Hz  %d-bit  %s", p.SampleRate, p.BitDepth, p.Mode)
	if p.Aliased() {
		label += fmt.Sprintf("  aliased to %.2f Hz", p.AliasFrequency())
	}
	return label
}

// projection maps signal points onto a panel of w x h pixels
func projection(w, h int, window float64) func(signal.Point) image.Point {
	return func(pt signal.Point) image.Point {
		x, y := toCanvas(pt, w, h, window)
		return image.Pt(int(math.Round(x)), int(math.Round(y)))
	}
}

// toCanvas maps time to x across the window and amplitude to y around the
// panel midline, with full scale at config.AmplitudeScale of the height.
func toCanvas(pt signal.Point, w, h int, window float64) (float64, float64) {
	midY := float64(h) / 2
	amp := float64(h) * config.AmplitudeScale
	x := pt.Time / window * float64(w)
	y := midY - pt.Amplitude*amp
	return x, y
}

// GetImage returns the current frame image
func (f *Frame) GetImage() *image.RGBA {
	return f.img
}

// Release returns the frame buffer to the pool
func (f *Frame) Release() {
	if f.img != nil {
		framePool.Put(f.img)
		f.img = nil
	}
}
