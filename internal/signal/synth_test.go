package signal

import (
	"math"
	"testing"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/quantize"
)

// TestSynthesize_HoldsEachSample checks that every output frame carries the
// gain-scaled quantized value of the sample due at or before it.
func TestSynthesize_HoldsEachSample(t *testing.T) {
	p := Params{Frequency: 3, SampleRate: 10, BitDepth: 4, Window: 1}
	const outputRate = 1000.0

	out := Synthesize(p, outputRate, 1.5)
	if len(out) != 1500 {
		t.Fatalf("got %d frames, want 1500", len(out))
	}

	for i, v := range out {
		n := i / 100 // 100 output frames per sample period
		want := config.OutputGain * quantize.Sample(sine(3, float64(n)/10), p.BitDepth)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("frame %d = %v, want %v (sample %d)", i, v, want, n)
		}
	}
}

// TestSynthesize_IgnoresMode verifies the audio path always uses hold.
func TestSynthesize_IgnoresMode(t *testing.T) {
	hold := Params{Frequency: 7, SampleRate: 23, BitDepth: 5, Window: 1, Mode: Hold}
	linear := hold
	linear.Mode = Linear

	a := Synthesize(hold, 8000, 0.5)
	b := Synthesize(linear, 8000, 0.5)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frame %d differs between modes: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSynthesize_StaysWithinGain(t *testing.T) {
	p := Params{Frequency: 440, SampleRate: 8000, BitDepth: 1, Window: 1}
	out := Synthesize(p, 44100, 0.25)

	for i, v := range out {
		if math.Abs(v) > config.OutputGain+1e-12 {
			t.Fatalf("frame %d = %v exceeds output gain", i, v)
		}
		// 1-bit quantization leaves only the two extremes
		if math.Abs(math.Abs(v)-config.OutputGain) > 1e-12 {
			t.Fatalf("frame %d = %v, want ±%v", i, v, config.OutputGain)
		}
	}
}

// TestSynthesize_RateAboveOutput covers a sampling rate faster than the
// output rate: the due time only moves one sample period per frame, so
// frame i carries sample i.
func TestSynthesize_RateAboveOutput(t *testing.T) {
	testCases := []struct {
		name       string
		p          Params
		outputRate float64
	}{
		{"4x", Params{Frequency: 50, SampleRate: 4000, BitDepth: 8, Window: 1}, 1000},
		{"96k into 44.1k", Params{Frequency: 1000, SampleRate: 96000, BitDepth: 16, Window: 1}, 44100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Synthesize(tc.p, tc.outputRate, 0.2)
			if len(out) == 0 {
				t.Fatal("no frames")
			}
			for i, v := range out {
				due := float64(i) / tc.p.SampleRate
				want := config.OutputGain * quantize.Sample(sine(tc.p.Frequency, due), tc.p.BitDepth)
				if math.Abs(v-want) > 1e-12 {
					t.Fatalf("frame %d = %v, want sample %d = %v", i, v, i, want)
				}
			}
		})
	}
}

func TestSynthesize_Degenerate(t *testing.T) {
	p := DefaultParams()

	testCases := []struct {
		name     string
		rate     float64
		duration float64
	}{
		{"zero rate", 0, 1},
		{"negative duration", 44100, -1},
		{"NaN rate", math.NaN(), 1},
		{"tiny duration", 44100, 1e-9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if out := Synthesize(p, tc.rate, tc.duration); len(out) != 0 {
				t.Errorf("got %d frames, want none", len(out))
			}
		})
	}
}

func TestTone(t *testing.T) {
	out := Tone(100, 8000, 0.01)
	if len(out) != 80 {
		t.Fatalf("got %d frames, want 80", len(out))
	}
	for i, v := range out {
		want := sine(100, float64(i)/8000)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("frame %d = %v, want %v", i, v, want)
		}
	}

	if out := Tone(100, 0, 1); out != nil {
		t.Errorf("Tone with zero rate returned %d frames", len(out))
	}
}

func BenchmarkSynthesize(b *testing.B) {
	p := DefaultParams()
	for i := 0; i < b.N; i++ {
		Synthesize(p, config.OutputSampleRate, config.ToneDuration)
	}
}
