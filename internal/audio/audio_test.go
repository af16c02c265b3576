package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/signal"
)

func TestEnvelope_Gain(t *testing.T) {
	env := NewEnvelope(0.9)
	const duration = 1.5
	midAttack := math.Sqrt(env.Floor * env.Peak)

	testCases := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, env.Floor},
		{"half attack", 0.01, midAttack},
		{"end of attack", 0.02, env.Peak},
		{"hold", 0.75, env.Peak},
		{"release start", 1.4, env.Peak},
		{"half release", 1.45, midAttack},
		{"end", duration, env.Floor},
		{"after end", 2.0, env.Floor},
		{"before start", -1, env.Floor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := env.Gain(tc.t, duration)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Gain(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}
}

// TestEnvelope_ShortSound verifies overlapping ramps never exceed the peak
// and never jump discontinuously.
func TestEnvelope_ShortSound(t *testing.T) {
	env := NewEnvelope(0.4)
	const duration = 0.05

	prev := env.Gain(0, duration)
	for i := 1; i <= 500; i++ {
		tm := duration * float64(i) / 500
		g := env.Gain(tm, duration)
		if g > env.Peak || g < env.Floor {
			t.Fatalf("Gain(%v) = %v outside [%v, %v]", tm, g, env.Floor, env.Peak)
		}
		// Exponential ramps change by at most a few percent per 0.1ms step
		if prev > 0 && (g/prev > 1.2 || prev/g > 1.2) {
			t.Fatalf("Gain jumps from %v to %v at %v", prev, g, tm)
		}
		prev = g
	}
}

func TestEnvelope_Apply(t *testing.T) {
	buf := make([]float64, 1000)
	for i := range buf {
		buf[i] = 1
	}

	env := NewEnvelope(0.5)
	env.Apply(buf, 1000)

	if math.Abs(buf[0]-env.Floor) > 1e-12 {
		t.Errorf("first frame = %v, want floor %v", buf[0], env.Floor)
	}
	if math.Abs(buf[500]-0.5) > 1e-12 {
		t.Errorf("middle frame = %v, want peak 0.5", buf[500])
	}

	// Empty buffers and bad rates are ignored
	env.Apply(nil, 1000)
	env.Apply(buf[:1], 0)
}

func TestRender(t *testing.T) {
	p := signal.DefaultParams()
	p.Frequency = 440
	p.SampleRate = 8000
	p.BitDepth = 4

	testCases := []struct {
		src  Source
		peak float64
	}{
		{Original, config.OriginalTonePeak},
		{Processed, config.OutputGain * config.ProcessedTonePeak},
	}

	for _, tc := range testCases {
		t.Run(tc.src.String(), func(t *testing.T) {
			buf, err := Render(tc.src, p, config.OutputSampleRate, config.ToneDuration)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}

			wantLen := int(config.OutputSampleRate * config.ToneDuration)
			if len(buf) != wantLen {
				t.Errorf("len = %d, want %d", len(buf), wantLen)
			}

			maxAbs := 0.0
			for _, v := range buf {
				maxAbs = math.Max(maxAbs, math.Abs(v))
			}
			if maxAbs > tc.peak+1e-9 {
				t.Errorf("peak %v exceeds %v", maxAbs, tc.peak)
			}
			if maxAbs < tc.peak*0.5 {
				t.Errorf("peak %v suspiciously quiet (want near %v)", maxAbs, tc.peak)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	_, err := Render(Original, signal.DefaultParams(), config.OutputSampleRate, 0)
	if !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Render with zero duration error = %v, want ErrEmptyBuffer", err)
	}
}

func TestParseSource(t *testing.T) {
	for _, src := range []Source{Original, Processed} {
		got, err := ParseSource(src.String())
		if err != nil || got != src {
			t.Errorf("ParseSource(%q) = %v, %v", src.String(), got, err)
		}
	}
	if _, err := ParseSource("reversed"); err == nil {
		t.Error("ParseSource(\"reversed\") expected error")
	}
}

func TestWAV_RoundTrip(t *testing.T) {
	samples := signal.Tone(440, 8000, 0.1)
	// Include out-of-range values to check clipping
	samples[3] = 1.7
	samples[4] = -2

	testCases := []struct {
		bitDepth int
	}{
		{16},
		{24},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d-bit", tc.bitDepth), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tone.wav")
			if err := SaveWAV(path, samples, 8000, tc.bitDepth); err != nil {
				t.Fatalf("SaveWAV: %v", err)
			}

			got, rate, err := readWAV(path)
			if err != nil {
				t.Fatalf("readWAV: %v", err)
			}
			if rate != 8000 {
				t.Errorf("sample rate = %d, want 8000", rate)
			}
			if len(got) != len(samples) {
				t.Fatalf("len = %d, want %d", len(got), len(samples))
			}

			tolerance := 1 / float64(int(1)<<(tc.bitDepth-1))
			for i, want := range samples {
				want = math.Max(-1, math.Min(1, want))
				if math.Abs(got[i]-want) > tolerance {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestWriteWAV_Errors(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WriteWAV(f, nil, 44100, 16); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("empty buffer error = %v, want ErrEmptyBuffer", err)
	}
	if err := WriteWAV(f, []float64{0}, 44100, 12); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("12-bit error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestReadWAV_Invalid(t *testing.T) {
	if _, _, err := readWAV("nonexistent.wav"); err == nil {
		t.Error("Expected error for nonexistent file, got nil")
	}

	path := filepath.Join(t.TempDir(), "text.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := readWAV(path); err == nil {
		t.Error("Expected error for non-WAV file, got nil")
	}
}

// readWAV decodes a mono WAV file to float64 samples in [-1, 1]
func readWAV(filename string) ([]float64, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	maxVal := float64(audio.IntMaxSignedValue(int(decoder.BitDepth)))
	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float64(s) / maxVal
	}
	return samples, int(decoder.SampleRate), nil
}
