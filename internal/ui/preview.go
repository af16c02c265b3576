package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/linuxmatters/sampleviz/internal/config"
)

// PreviewConfig holds configuration for the terminal preview
type PreviewConfig struct {
	Width  int // Width in terminal cells
	Height int // Height in terminal cells (two pixel rows per cell)

	// Background switches downsampling to line-art mode: each cell takes
	// the pixel that stands out most from this colour rather than the
	// region average, so thin traces survive the reduction.
	Background *color.RGBA
}

// DefaultPreviewConfig returns the default preview size
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Width:  config.PreviewWidth,
		Height: config.PreviewHeight,
	}
}

// DownsampleFrame reduces a full-resolution frame to Width x 2*Height
// pixels. Each output pixel represents a rectangular region of the source.
func DownsampleFrame(frame *image.RGBA, cfg PreviewConfig) [][]color.RGBA {
	bounds := frame.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	rows := cfg.Height * 2

	if cfg.Width <= 0 || rows <= 0 || srcWidth == 0 || srcHeight == 0 {
		return nil
	}

	preview := make([][]color.RGBA, rows)
	for row := 0; row < rows; row++ {
		preview[row] = make([]color.RGBA, cfg.Width)

		// Region edges are spread evenly so no source rows are dropped
		y0 := row * srcHeight / rows
		y1 := max((row+1)*srcHeight/rows, y0+1)

		for col := 0; col < cfg.Width; col++ {
			x0 := col * srcWidth / cfg.Width
			x1 := max((col+1)*srcWidth/cfg.Width, x0+1)

			region := image.Rect(x0, y0, x1, y1).Add(bounds.Min).Intersect(bounds)
			if cfg.Background != nil {
				preview[row][col] = standout(frame, region, *cfg.Background)
			} else {
				preview[row][col] = average(frame, region)
			}
		}
	}

	return preview
}

// average returns the mean colour of a region
func average(frame *image.RGBA, r image.Rectangle) color.RGBA {
	var sumR, sumG, sumB uint32
	pixelCount := 0

	for y := r.Min.Y; y < r.Max.Y; y++ {
		offset := frame.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sumR += uint32(frame.Pix[offset])
			sumG += uint32(frame.Pix[offset+1])
			sumB += uint32(frame.Pix[offset+2])
			offset += 4
			pixelCount++
		}
	}

	if pixelCount == 0 {
		return color.RGBA{A: 255}
	}

	return color.RGBA{
		R: uint8(sumR / uint32(pixelCount)),
		G: uint8(sumG / uint32(pixelCount)),
		B: uint8(sumB / uint32(pixelCount)),
		A: 255,
	}
}

// standout returns the pixel in a region farthest from bg
func standout(frame *image.RGBA, r image.Rectangle, bg color.RGBA) color.RGBA {
	best := bg
	bestDist := -1

	for y := r.Min.Y; y < r.Max.Y; y++ {
		offset := frame.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dr := int(frame.Pix[offset]) - int(bg.R)
			dg := int(frame.Pix[offset+1]) - int(bg.G)
			db := int(frame.Pix[offset+2]) - int(bg.B)
			if dist := dr*dr + dg*dg + db*db; dist > bestDist {
				bestDist = dist
				best = color.RGBA{R: frame.Pix[offset], G: frame.Pix[offset+1], B: frame.Pix[offset+2], A: 255}
			}
			offset += 4
		}
	}

	return best
}

// RenderPreview converts a preview grid to a string using ANSI 24-bit true
// colour escape codes. Each terminal cell is an upper half block whose
// foreground is the top pixel and background the bottom pixel.
func RenderPreview(preview [][]color.RGBA, title string) string {
	if len(preview) == 0 {
		return ""
	}
	width := len(preview[0])

	var result strings.Builder

	// Top border
	if title != "" {
		result.WriteString(title)
		result.WriteString("\n")
	}
	result.WriteString("┌" + strings.Repeat("─", width) + "┐\n")

	for row := 0; row+1 < len(preview); row += 2 {
		top, bottom := preview[row], preview[row+1]
		result.WriteString("│")
		for col := 0; col < width; col++ {
			// \x1b[38;2;R;G;Bm sets the foreground, \x1b[48;2;R;G;Bm the background
			fmt.Fprintf(&result, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top[col].R, top[col].G, top[col].B,
				bottom[col].R, bottom[col].G, bottom[col].B)
		}
		result.WriteString("\x1b[0m│\n")
	}

	// Bottom border
	result.WriteString("└" + strings.Repeat("─", width) + "┘")

	return result.String()
}
