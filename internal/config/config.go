package config

// Canvas settings
const (
	Width       = 800 // Width of each waveform panel
	Height      = 240 // Height of each waveform panel
	PanelGap    = 24  // Vertical gap between the original and processed panels
	LabelHeight = 28  // Space reserved above each panel for its label
)

// Grid settings
const (
	GridStepX = 100 // Vertical grid line spacing in pixels
	GridStepY = 40  // Horizontal grid line spacing in pixels

	AmplitudeScale      = 0.4 // Peak amplitude as fraction of panel height (80% swing)
	ReferenceOversample = 4   // Reference curve points per horizontal pixel
	TraceWidth          = 2   // Stroke width of the reference and reconstruction traces
	SampleDotRadius     = 3   // Radius of the sample markers
)

// Signal defaults
const (
	DefaultFrequency  = 5.0  // Hz
	DefaultSampleRate = 40.0 // Hz
	DefaultBitDepth   = 3
	DefaultWindowMs   = 1000.0

	MinBitDepth = 1
	MaxBitDepth = 24

	// Upper bounds for untrusted numeric input
	MaxSampleRate = 1e7     // Hz
	MaxSamples    = 1 << 20 // Discrete samples per window
	MaxFrames     = 1 << 26 // Synthesized output frames
)

// Audio settings
const (
	OutputSampleRate = 44100 // Frame rate of rendered tones
	OutputGain       = 0.7   // Gain applied to held samples before emission
	ToneDuration     = 1.5   // Seconds
	WAVBitDepth      = 16

	// Playback envelope
	EnvelopeFloor     = 0.0001
	EnvelopeAttack    = 0.02 // Seconds to reach peak
	EnvelopeRelease   = 0.1  // Seconds of fade at the end
	OriginalTonePeak  = 0.4
	ProcessedTonePeak = 0.9

	SpectrumSize = 8192 // FFT length for the alias readout
	SpectrumBars = 48
)

// Image demo settings
const (
	DefaultPixelSize = 8
	DefaultImageBits = 3
	MaxPixelSize     = 256

	SampleImageWidth  = 320
	SampleImageHeight = 240
	CheckerCell       = 20

	// Loaded images larger than this are scaled down to fit
	MaxImageWidth  = 1280
	MaxImageHeight = 960
)

// Live view settings
const (
	TickFPS       = 30
	PreviewWidth  = 80 // Terminal cells
	PreviewHeight = 24 // Terminal cells (two pixel rows per cell)

	// Key step sizes
	FrequencyStep  = 1.0  // Hz
	SampleRateStep = 1.0  // Hz
	WindowStepMs   = 50.0 // Milliseconds
	MinWindowMs    = 50.0
	MaxWindowMs    = 5000.0 // Longer windows redraw too many samples per tick
)

// Appearance - palette of the original canvases
const (
	BackgroundColorR = 0x0c
	BackgroundColorG = 0x0f
	BackgroundColorB = 0x1e

	GridColorR = 0x2a
	GridColorG = 0x2e
	GridColorB = 0x44

	AxisColorR = 0x3a
	AxisColorG = 0x3f
	AxisColorB = 0x5f

	// Reference (continuous) trace
	ReferenceColorR = 0x6a
	ReferenceColorG = 0xa0
	ReferenceColorB = 0xff

	// Sample markers
	SampleColorR = 0xff
	SampleColorG = 0xd1
	SampleColorB = 0x66

	// Quantized reconstruction trace
	TraceColorR = 0xff
	TraceColorG = 0x7a
	TraceColorB = 0x6a

	// Panel labels
	TextColorR = 0xd8
	TextColorG = 0xdc
	TextColorB = 0xf0

	LabelFontSize = 16.0
	GridAlpha     = 0.8
)
