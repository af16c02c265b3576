package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar colours from low to high intensity
var spectrumColors = []lipgloss.Color{
	lipgloss.Color("#3A3F5F"), // Axis slate
	lipgloss.Color("#4A5F9F"),
	lipgloss.Color("#6AA0FF"), // Reference blue
	lipgloss.Color("#9FB8E0"),
	lipgloss.Color("#FFD166"), // Sample gold
	lipgloss.Color("#FFA868"),
	lipgloss.Color("#FF7A6A"), // Trace coral
}

var spectrumBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderSpectrum draws bar heights two rows tall, sampling the bars to fit
// width. Heights are normalised to the tallest bar.
func renderSpectrum(barHeights []float64, width int) string {
	if len(barHeights) == 0 || width <= 0 {
		return ""
	}

	// Sample bars to fit width
	stride := max(1, len(barHeights)/width)

	// Find max height for normalisation
	maxHeight := 0.0
	for _, h := range barHeights {
		maxHeight = max(maxHeight, h)
	}
	if maxHeight == 0 {
		maxHeight = 1.0 // Avoid division by zero
	}

	// Collect normalised heights for all bars we'll display
	displayHeights := make([]float64, 0, width)
	for i := 0; i < len(barHeights) && len(displayHeights) < width; i += stride {
		displayHeights = append(displayHeights, max(0, barHeights[i]/maxHeight))
	}

	var result strings.Builder

	// Top row shows the portion above 0.5
	for _, normalised := range displayHeights {
		if normalised > 0.5 {
			result.WriteString(spectrumCell((normalised-0.5)*2.0, normalised))
		} else {
			result.WriteString(" ")
		}
	}

	result.WriteString("\n")

	// Bottom row: full block when the bar reaches the top row
	for _, normalised := range displayHeights {
		result.WriteString(spectrumCell(min(normalised*2.0, 1.0), normalised))
	}

	return result.String()
}

// spectrumCell picks a block for fill (0.0-1.0) coloured by overall height
func spectrumCell(fill, height float64) string {
	blockIdx := min(int(fill*float64(len(spectrumBlocks)-1)), len(spectrumBlocks)-1)
	colorIdx := min(int(height*float64(len(spectrumColors)-1)), len(spectrumColors)-1)

	return lipgloss.NewStyle().
		Foreground(spectrumColors[max(colorIdx, 0)]).
		Render(string(spectrumBlocks[max(blockIdx, 0)]))
}
