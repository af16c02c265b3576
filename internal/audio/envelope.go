// Package audio renders the original and processed tones, shapes them with
// a playback envelope, writes them as WAV and analyses their spectrum.
package audio

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/linuxmatters/sampleviz/internal/config"
)

// Envelope is an exponential attack/hold/release gain curve. The attack
// ramps from Floor to Peak over Attack seconds, the gain holds at Peak, and
// the release ramps back to Floor over the last Release seconds.
type Envelope struct {
	Peak    float64
	Floor   float64
	Attack  float64 // Seconds
	Release float64 // Seconds
}

// NewEnvelope returns the playback envelope with the given peak gain
func NewEnvelope(peak float64) Envelope {
	return Envelope{
		Peak:    peak,
		Floor:   config.EnvelopeFloor,
		Attack:  config.EnvelopeAttack,
		Release: config.EnvelopeRelease,
	}
}

// Gain returns the envelope gain at time t for a sound lasting duration
// seconds. When the sound is shorter than attack plus release the two ramps
// meet and the lower of them wins, so the gain never jumps.
func (e Envelope) Gain(t, duration float64) float64 {
	if t <= 0 || t >= duration {
		return e.Floor
	}

	gain := e.Peak
	if t < e.Attack {
		gain = ramp(e.Floor, e.Peak, t/e.Attack)
	}

	releaseStart := duration - e.Release
	if t > releaseStart {
		gain = math.Min(gain, ramp(e.Peak, e.Floor, (t-releaseStart)/e.Release))
	}

	return gain
}

// Apply multiplies buf in place by the envelope, treating buf as a sound of
// len(buf) frames at rate frames per second.
func (e Envelope) Apply(buf []float64, rate float64) {
	if len(buf) == 0 || rate <= 0 {
		return
	}

	duration := float64(len(buf)) / rate
	gains := make([]float64, len(buf))
	for i := range gains {
		gains[i] = e.Gain(float64(i)/rate, duration)
	}

	vecmath.MulBlockInPlace(buf, gains)
}

// ramp evaluates an exponential ramp from v0 to v1 at fraction x of its length
func ramp(v0, v1, x float64) float64 {
	return v0 * math.Pow(v1/v0, x)
}
