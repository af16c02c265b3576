package renderer

import (
	"image"

	"github.com/linuxmatters/sampleviz/internal/config"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Compare composes the original and processed images side by side with a
// label band above each. Small images are enlarged by a whole-number factor
// with nearest-neighbour scaling so pixel blocks stay crisp.
func Compare(original, processed *image.RGBA, face font.Face, palette Palette, leftLabel, rightLabel string) *image.RGBA {
	ob := original.Bounds()
	w, h := ob.Dx(), ob.Dy()

	scale := 1
	if w > 0 && h > 0 {
		scale = max(1, min((config.Width/2)/w, config.MaxImageHeight/h))
	}
	sw, sh := w*scale, h*scale

	out := image.NewRGBA(image.Rect(0, 0, 2*sw+config.PanelGap, sh+config.LabelHeight))
	newCanvas(out, out.Bounds()).fill(palette.Background)

	left := image.Rect(0, config.LabelHeight, sw, config.LabelHeight+sh)
	right := left.Add(image.Pt(sw+config.PanelGap, 0))

	place(out, left, original, scale)
	place(out, right, processed, scale)

	pad := config.GridStepX / 10
	DrawLabel(out, face, leftLabel, left.Min.X+pad, 0, config.LabelHeight, palette.Text)
	DrawLabel(out, face, rightLabel, right.Min.X+pad, 0, config.LabelHeight, palette.Text)

	return out
}

func place(dst *image.RGBA, r image.Rectangle, src *image.RGBA, scale int) {
	if scale == 1 {
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
		return
	}
	draw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}
