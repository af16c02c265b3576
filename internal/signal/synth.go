package signal

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/quantize"
)

// timeEpsilon absorbs rounding when an output frame lands on a sample instant
const timeEpsilon = 1e-12

// Synthesize renders the sampled and quantized tone at outputRate frames per
// second for duration seconds. Each frame holds the most recent quantized
// sample, whatever p.Mode says. A frame that reaches the next due sample
// takes that one sample and moves the due time on by 1/p.SampleRate, so
// samples are consumed in order even when p.SampleRate exceeds outputRate.
// Output is scaled by config.OutputGain.
func Synthesize(p Params, outputRate, duration float64) []float64 {
	p = p.Sanitize()
	if !positive(outputRate) || !positive(duration) {
		return nil
	}

	out := make([]float64, frameCount(outputRate, duration))

	next := 0 // index of the next sample due
	held := 0.0
	for i := range out {
		t := float64(i) / outputRate

		if due := float64(next) / p.SampleRate; t+timeEpsilon >= due {
			held = quantize.Sample(sine(p.Frequency, due), p.BitDepth)
			next++
		}
		out[i] = held
	}

	vecmath.ScaleBlock(out, out, config.OutputGain)
	return out
}

// Tone renders the unsampled reference tone at outputRate for duration
// seconds, at unit amplitude.
func Tone(frequency, outputRate, duration float64) []float64 {
	if !positive(frequency) {
		frequency = config.DefaultFrequency
	}
	if !positive(outputRate) || !positive(duration) {
		return nil
	}

	out := make([]float64, frameCount(outputRate, duration))
	for i := range out {
		out[i] = sine(frequency, float64(i)/outputRate)
	}
	return out
}

func frameCount(outputRate, duration float64) int {
	n := math.Floor(duration * outputRate)
	if n > config.MaxFrames {
		return config.MaxFrames
	}
	return int(n)
}
