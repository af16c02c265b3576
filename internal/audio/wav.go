package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrEmptyBuffer is returned when there are no frames to write or analyse
	ErrEmptyBuffer = errors.New("empty audio buffer")

	// ErrUnsupportedBitDepth is returned for WAV bit depths other than 16 or 24
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)

// WriteWAV encodes mono samples in [-1, 1] as PCM WAV. Samples outside the
// range are clipped.
func WriteWAV(w io.WriteSeeker, samples []float64, sampleRate, bitDepth int) error {
	if len(samples) == 0 {
		return ErrEmptyBuffer
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	maxVal := float64(audio.IntMaxSignedValue(bitDepth))
	data := make([]int, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		data[i] = int(math.Round(s * maxVal))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalise WAV header: %w", err)
	}
	return nil
}

// SaveWAV writes samples to filename as a mono WAV file
func SaveWAV(filename string, samples []float64, sampleRate, bitDepth int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := WriteWAV(f, samples, sampleRate, bitDepth); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
