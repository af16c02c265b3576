// Package quantize snaps continuous values onto 2^bits evenly spaced levels.
// It is shared by the waveform sampler and the image pixelator.
package quantize

import (
	"math"

	"github.com/linuxmatters/sampleviz/internal/config"
)

// ClampBits limits a bit depth to [config.MinBitDepth, config.MaxBitDepth]
func ClampBits(bits int) int {
	if bits < config.MinBitDepth {
		return config.MinBitDepth
	}
	if bits > config.MaxBitDepth {
		return config.MaxBitDepth
	}
	return bits
}

// Levels returns the number of quantization levels for a bit depth.
// Never fewer than 2.
func Levels(bits int) int {
	levels := 1 << ClampBits(bits)
	if levels < 2 {
		return 2
	}
	return levels
}

// Sample quantizes an amplitude in [-1, 1] to one of Levels(bits) points.
// Out of range input is clamped first; NaN maps to 0.
func Sample(sample float64, bits int) float64 {
	if math.IsNaN(sample) {
		sample = 0
	}
	steps := float64(Levels(bits) - 1)

	normalized := (clamp(sample, -1, 1) + 1) * 0.5
	q := math.Round(normalized*steps) / steps
	return clamp(q*2-1, -1, 1)
}

// Channel quantizes an 8-bit colour channel to one of Levels(bits) points
// spread over [0, 255].
func Channel(v uint8, bits int) uint8 {
	steps := float64(Levels(bits) - 1)

	q := math.Round(float64(v)/255*steps) / steps
	return uint8(clamp(math.Round(q*255), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
