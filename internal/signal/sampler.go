package signal

import (
	"math"
	"sort"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/quantize"
)

// Point is one (time, amplitude) pair. Time is in seconds, amplitude in [-1, 1].
type Point struct {
	Time      float64
	Amplitude float64
}

// Frame bundles everything one waveform render needs
type Frame struct {
	Params         Params
	Reference      []Point
	Samples        []Point
	Reconstruction *Reconstruction
}

// Compute evaluates the whole pipeline for one render pass
func Compute(p Params, referencePoints int) Frame {
	p = p.Sanitize()
	return Frame{
		Params:         p,
		Reference:      Reference(p, referencePoints),
		Samples:        Samples(p),
		Reconstruction: Reconstruct(p),
	}
}

func sine(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// Reference evaluates the continuous tone at points+1 evenly spaced times
// across the window. The density only affects how smooth the curve looks.
func Reference(p Params, points int) []Point {
	p = p.Sanitize()
	if points < 1 {
		points = 1
	}

	out := make([]Point, points+1)
	for i := range out {
		t := float64(i) / float64(points) * p.Window
		out[i] = Point{Time: t, Amplitude: sine(p.Frequency, t)}
	}
	return out
}

// Samples discretizes the tone at multiples of 1/SampleRate within the window
func Samples(p Params) []Point {
	p = p.Sanitize()

	count := config.MaxSamples
	if n := math.Floor(p.SampleRate*p.Window) + 1; n < float64(count) {
		count = int(n)
	}

	out := make([]Point, 0, count)
	for n := 0; n < count; n++ {
		t := float64(n) / p.SampleRate
		if t > p.Window {
			break
		}
		out = append(out, Point{Time: t, Amplitude: sine(p.Frequency, t)})
	}
	return out
}

// Quantized returns Samples with every amplitude snapped to the bit depth grid
func Quantized(p Params) []Point {
	p = p.Sanitize()
	samples := Samples(p)
	for i := range samples {
		samples[i].Amplitude = quantize.Sample(samples[i].Amplitude, p.BitDepth)
	}
	return samples
}

// Reconstruction is a continuous-time view of the quantized samples
type Reconstruction struct {
	mode    Mode
	window  float64
	samples []Point
}

// Reconstruct quantizes the samples of p and joins them according to p.Mode
func Reconstruct(p Params) *Reconstruction {
	p = p.Sanitize()
	return &Reconstruction{
		mode:    p.Mode,
		window:  p.Window,
		samples: Quantized(p),
	}
}

// Mode returns the joining mode
func (r *Reconstruction) Mode() Mode {
	return r.mode
}

// Samples returns the quantized sample points
func (r *Reconstruction) Samples() []Point {
	return r.samples
}

// Len returns the number of quantized samples
func (r *Reconstruction) Len() int {
	return len(r.samples)
}

// Points returns the polyline to draw. In Hold mode each sample is held
// until the next sample time, and the last one until the end of the window.
func (r *Reconstruction) Points() []Point {
	if len(r.samples) == 0 {
		return nil
	}

	if r.mode == Linear {
		out := make([]Point, len(r.samples))
		copy(out, r.samples)
		return out
	}

	out := make([]Point, 0, 2*len(r.samples))
	for n, s := range r.samples {
		next := r.window
		if n+1 < len(r.samples) {
			next = math.Min(r.samples[n+1].Time, r.window)
		}
		out = append(out,
			Point{Time: s.Time, Amplitude: s.Amplitude},
			Point{Time: next, Amplitude: s.Amplitude},
		)
	}
	return out
}

// At evaluates the reconstruction at time t. Times before the first sample
// take its value; times after the last sample hold it.
func (r *Reconstruction) At(t float64) float64 {
	if len(r.samples) == 0 {
		return 0
	}

	// index of the last sample at or before t
	i := sort.Search(len(r.samples), func(i int) bool {
		return r.samples[i].Time > t
	}) - 1
	if i < 0 {
		i = 0
	}

	cur := r.samples[i]
	if r.mode == Hold || i+1 >= len(r.samples) || t <= cur.Time {
		return cur.Amplitude
	}

	next := r.samples[i+1]
	frac := (t - cur.Time) / (next.Time - cur.Time)
	return cur.Amplitude + (next.Amplitude-cur.Amplitude)*frac
}
