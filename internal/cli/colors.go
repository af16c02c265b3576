package cli

import "github.com/charmbracelet/lipgloss"

// Signal colour palette
// Shared with the rendered panels for consistent branding across CLI and TUI
var (
	// Trace colours
	ReferenceBlue = lipgloss.Color("#6AA0FF") // Continuous reference curve
	SampleGold    = lipgloss.Color("#FFD166") // Sample markers
	TraceCoral    = lipgloss.Color("#FF7A6A") // Quantized reconstruction

	// Accent colours
	AxisSlate  = lipgloss.Color("#3A3F5F") // Axes and empty meter cells
	MutedSlate = lipgloss.Color("#8A90B8") // Subtle text
)
