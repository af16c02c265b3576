package audio

import (
	"fmt"
	"math"

	"github.com/argusdusty/gofft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/linuxmatters/sampleviz/internal/signal"
)

// ApplyHanning applies a Hanning window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n < 2 {
		copy(windowed, data)
		return windowed
	}
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// Spectrum holds the magnitudes of the positive-frequency FFT bins of one
// windowed block of audio.
type Spectrum struct {
	Magnitudes []float64 // Bins 0 to Size/2-1
	SampleRate float64
	Size       int
}

// Analyze computes the magnitude spectrum of the first size samples (zero
// padded when shorter). size must be a power of two.
func Analyze(samples []float64, sampleRate float64, size int) (*Spectrum, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyBuffer
	}
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("FFT size %d is not a power of two", size)
	}

	chunk := make([]float64, size)
	copy(chunk, samples)

	fftInput := gofft.Float64ToComplex128Array(ApplyHanning(chunk))
	if err := gofft.FFT(fftInput); err != nil {
		return nil, fmt.Errorf("FFT computation failed: %w", err)
	}

	half := size / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(fftInput[i])
		im[i] = imag(fftInput[i])
	}

	mags := make([]float64, half)
	vecmath.Magnitude(mags, re, im)

	return &Spectrum{
		Magnitudes: mags,
		SampleRate: sampleRate,
		Size:       size,
	}, nil
}

// BinFrequency returns the centre frequency of bin k in Hz
func (s *Spectrum) BinFrequency(k int) float64 {
	return float64(k) * s.SampleRate / float64(s.Size)
}

// Dominant returns the frequency of the strongest non-DC bin
func (s *Spectrum) Dominant() float64 {
	peak := 0
	maxVal := 0.0
	for k := 1; k < len(s.Magnitudes); k++ {
		if s.Magnitudes[k] > maxVal {
			maxVal = s.Magnitudes[k]
			peak = k
		}
	}
	return s.BinFrequency(peak)
}

// Bars bins the spectrum from DC up to maxFreq into len(result) bars,
// writing log-scaled heights normalised to the tallest bar (0.0-1.0).
func (s *Spectrum) Bars(maxFreq float64, result []float64) {
	numBars := len(result)
	if numBars == 0 {
		return
	}
	clear(result)

	maxBin := len(s.Magnitudes)
	if s.SampleRate > 0 && maxFreq > 0 {
		maxBin = min(maxBin, int(math.Ceil(maxFreq*float64(s.Size)/s.SampleRate)))
	}
	if maxBin < 1 {
		return
	}

	peak := 0.0
	for bar := 0; bar < numBars; bar++ {
		start := bar * maxBin / numBars
		// With fewer bins than bars, neighbouring bars share a bin
		end := max((bar+1)*maxBin/numBars, start+1)

		// Average magnitude in this range
		var sum float64
		for i := start; i < end; i++ {
			sum += s.Magnitudes[i]
		}
		result[bar] = sum / float64(end-start)
		peak = max(peak, result[bar])
	}

	if peak == 0 {
		return
	}
	for i := range result {
		// Log10(1 + x*9) maps [0, 1] onto [0, 1]
		result[i] = math.Log10(1 + result[i]/peak*9)
	}
}

// DisplayRange picks the upper frequency for a spectrum of p's processed
// tone: a few harmonics of the tone or twice the sample rate, whichever is
// larger, limited to the Nyquist frequency of outputRate.
func DisplayRange(p signal.Params, outputRate float64) float64 {
	return min(max(4*p.Frequency, 2*p.SampleRate), outputRate/2)
}
