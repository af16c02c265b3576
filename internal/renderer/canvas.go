package renderer

import (
	"image"
	"image/color"
	"math"
)

// canvas is a clipped drawing surface over one rectangle of an RGBA image.
// Coordinates are relative to the rectangle's top-left corner.
type canvas struct {
	img  *image.RGBA
	rect image.Rectangle
}

func newCanvas(img *image.RGBA, rect image.Rectangle) canvas {
	return canvas{img: img, rect: rect.Intersect(img.Bounds())}
}

func (c canvas) width() int  { return c.rect.Dx() }
func (c canvas) height() int { return c.rect.Dy() }

// offset returns the Pix offset of (x, y), or -1 when it falls outside
func (c canvas) offset(x, y int) int {
	if x < 0 || y < 0 || x >= c.rect.Dx() || y >= c.rect.Dy() {
		return -1
	}
	return c.img.PixOffset(c.rect.Min.X+x, c.rect.Min.Y+y)
}

// fill paints the whole canvas with col
func (c canvas) fill(col color.RGBA) {
	w := c.rect.Dx()
	if w <= 0 {
		return
	}

	// Build one scanline, then copy it to every row
	pixelPattern := make([]byte, w*4)
	for px := 0; px < w; px++ {
		offset := px * 4
		pixelPattern[offset] = col.R
		pixelPattern[offset+1] = col.G
		pixelPattern[offset+2] = col.B
		pixelPattern[offset+3] = 255
	}

	for y := 0; y < c.rect.Dy(); y++ {
		offset := c.offset(0, y)
		copy(c.img.Pix[offset:offset+w*4], pixelPattern)
	}
}

func (c canvas) set(x, y int, col color.RGBA) {
	offset := c.offset(x, y)
	if offset < 0 {
		return
	}
	c.img.Pix[offset] = col.R
	c.img.Pix[offset+1] = col.G
	c.img.Pix[offset+2] = col.B
	c.img.Pix[offset+3] = 255
}

// blend mixes col over the existing pixel at the given opacity
func (c canvas) blend(x, y int, col color.RGBA, alpha float64) {
	offset := c.offset(x, y)
	if offset < 0 {
		return
	}
	inv := 1.0 - alpha

	bgR := c.img.Pix[offset]
	bgG := c.img.Pix[offset+1]
	bgB := c.img.Pix[offset+2]

	c.img.Pix[offset] = uint8(float64(col.R)*alpha + float64(bgR)*inv)
	c.img.Pix[offset+1] = uint8(float64(col.G)*alpha + float64(bgG)*inv)
	c.img.Pix[offset+2] = uint8(float64(col.B)*alpha + float64(bgB)*inv)
}

func (c canvas) hLine(y int, col color.RGBA, alpha float64) {
	for x := 0; x < c.width(); x++ {
		c.blend(x, y, col, alpha)
	}
}

func (c canvas) vLine(x int, col color.RGBA, alpha float64) {
	for y := 0; y < c.height(); y++ {
		c.blend(x, y, col, alpha)
	}
}

// stamp paints a size x size square whose centre is at (x, y)
func (c canvas) stamp(x, y, size int, col color.RGBA) {
	lo := -(size / 2)
	for dy := lo; dy < lo+size; dy++ {
		for dx := lo; dx < lo+size; dx++ {
			c.set(x+dx, y+dy, col)
		}
	}
}

// line draws a straight stroke of the given width with Bresenham's algorithm
func (c canvas) line(x0, y0, x1, y1, width int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		c.stamp(x0, y0, width, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// polyline joins consecutive points with strokes of the given width
func (c canvas) polyline(pts []image.Point, width int, col color.RGBA) {
	if len(pts) == 1 {
		c.stamp(pts[0].X, pts[0].Y, width, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width, col)
	}
}

// disc fills a circle of radius r centred on (cx, cy)
func (c canvas) disc(cx, cy, r float64, col color.RGBA) {
	x0 := int(math.Floor(cx - r))
	x1 := int(math.Ceil(cx + r))
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			// Test pixel centres against the radius
			px := float64(x) + 0.5 - cx
			py := float64(y) + 0.5 - cy
			if px*px+py*py <= r*r {
				c.set(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
