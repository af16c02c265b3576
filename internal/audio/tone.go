package audio

import (
	"fmt"
	"strings"

	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/signal"
)

// Source selects which tone to render
type Source int

const (
	// Original is the pure sine at the current frequency
	Original Source = iota
	// Processed is the sampled and quantized tone
	Processed
)

func (s Source) String() string {
	switch s {
	case Original:
		return "original"
	case Processed:
		return "processed"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// ParseSource accepts "original" or "processed"
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original":
		return Original, nil
	case "processed":
		return Processed, nil
	default:
		return Original, fmt.Errorf("unknown tone %q (want original or processed)", s)
	}
}

// Render produces duration seconds of the selected tone at rate frames per
// second with the playback envelope applied. The original tone peaks at
// config.OriginalTonePeak; the processed tone carries config.OutputGain
// from synthesis and an envelope peaking at config.ProcessedTonePeak.
func Render(src Source, p signal.Params, rate int, duration float64) ([]float64, error) {
	p = p.Sanitize()

	var (
		buf  []float64
		peak float64
	)
	switch src {
	case Original:
		buf = signal.Tone(p.Frequency, float64(rate), duration)
		peak = config.OriginalTonePeak
	case Processed:
		buf = signal.Synthesize(p, float64(rate), duration)
		peak = config.ProcessedTonePeak
	default:
		return nil, fmt.Errorf("unknown tone source %d", int(src))
	}

	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: rate %d, duration %gs", ErrEmptyBuffer, rate, duration)
	}

	NewEnvelope(peak).Apply(buf, float64(rate))
	return buf, nil
}
