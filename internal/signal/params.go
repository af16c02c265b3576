// Package signal samples, quantizes and reconstructs a sine tone.
//
// Every function is pure: a Params value goes in, freshly allocated
// sequences of (time, amplitude) points come out. Callers recompute on every
// parameter change or refresh tick.
package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/quantize"
)

// Mode selects how quantized samples are joined for display
type Mode int

const (
	// Hold keeps each sample until the next one arrives (zero-order hold)
	Hold Mode = iota
	// Linear draws straight lines between consecutive samples
	Linear
)

func (m Mode) String() string {
	switch m {
	case Hold:
		return "hold"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "hold", "zoh" or "linear"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold", "zoh":
		return Hold, nil
	case "linear", "lerp":
		return Linear, nil
	}
	return Hold, fmt.Errorf("unknown reconstruction mode %q (want hold or linear)", s)
}

// Params describes one render pass of the waveform demo
type Params struct {
	Frequency  float64 // Tone frequency in Hz
	SampleRate float64 // Sampling rate in Hz
	BitDepth   int     // Quantizer bit depth
	Window     float64 // Visible window in seconds
	Mode       Mode
}

// DefaultParams returns the start-up state of the demo
func DefaultParams() Params {
	return Params{
		Frequency:  config.DefaultFrequency,
		SampleRate: config.DefaultSampleRate,
		BitDepth:   config.DefaultBitDepth,
		Window:     config.DefaultWindowMs / 1000,
		Mode:       Hold,
	}
}

// Sanitize replaces NaN, infinite and non-positive values with defaults and
// clamps the bit depth. Valid values pass through unchanged.
func (p Params) Sanitize() Params {
	def := DefaultParams()

	if !positive(p.Frequency) {
		p.Frequency = def.Frequency
	}
	if !positive(p.SampleRate) {
		p.SampleRate = def.SampleRate
	}
	p.SampleRate = math.Min(p.SampleRate, config.MaxSampleRate)
	if !positive(p.Window) {
		p.Window = def.Window
	}
	p.BitDepth = quantize.ClampBits(p.BitDepth)
	if p.Mode != Hold && p.Mode != Linear {
		p.Mode = Hold
	}
	return p
}

// Nyquist returns half the sample rate
func (p Params) Nyquist() float64 {
	return p.SampleRate / 2
}

// Aliased reports whether the tone sits above the Nyquist frequency
func (p Params) Aliased() bool {
	return p.Frequency > p.Nyquist()
}

// AliasFrequency returns the frequency the sampled tone appears at
func (p Params) AliasFrequency() float64 {
	f := math.Mod(p.Frequency, p.SampleRate)
	if f > p.SampleRate/2 {
		f = p.SampleRate - f
	}
	return f
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
