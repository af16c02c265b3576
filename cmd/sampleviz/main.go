package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/sampleviz/internal/audio"
	"github.com/linuxmatters/sampleviz/internal/cli"
	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/pixelate"
	"github.com/linuxmatters/sampleviz/internal/quantize"
	"github.com/linuxmatters/sampleviz/internal/renderer"
	"github.com/linuxmatters/sampleviz/internal/signal"
	"github.com/linuxmatters/sampleviz/internal/ui"
	"golang.org/x/image/font"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

// SignalFlags are shared by the commands that sample a tone
type SignalFlags struct {
	Freq     float64 `help:"Tone frequency in Hz" default:"5" env:"SAMPLEVIZ_FREQ"`
	Rate     float64 `help:"Sampling rate in Hz" default:"40" env:"SAMPLEVIZ_RATE"`
	Bits     int     `help:"Quantizer bit depth (1-24)" default:"3" env:"SAMPLEVIZ_BITS"`
	WindowMs float64 `name:"window-ms" help:"Visible window in milliseconds" default:"1000" env:"SAMPLEVIZ_WINDOW_MS"`
	Mode     string  `help:"Reconstruction: hold or linear" default:"hold" enum:"hold,zoh,linear,lerp" env:"SAMPLEVIZ_MODE"`
}

func (f SignalFlags) params() (signal.Params, error) {
	mode, err := signal.ParseMode(f.Mode)
	if err != nil {
		return signal.Params{}, err
	}
	return signal.Params{
		Frequency:  f.Freq,
		SampleRate: f.Rate,
		BitDepth:   f.Bits,
		Window:     f.WindowMs / 1000,
		Mode:       mode,
	}.Sanitize(), nil
}

// StyleFlags override the palette and labels
type StyleFlags struct {
	ReferenceColor string `name:"reference-color" help:"Reference trace colour (RRGGBB)" env:"SAMPLEVIZ_REFERENCE_COLOR"`
	TraceColor     string `name:"trace-color" help:"Reconstruction trace colour (RRGGBB)" env:"SAMPLEVIZ_TRACE_COLOR"`
	SampleColor    string `name:"sample-color" help:"Sample marker colour (RRGGBB)" env:"SAMPLEVIZ_SAMPLE_COLOR"`
	NoLabels       bool   `name:"no-labels" help:"Omit the text labels"`
	Font           string `help:"TrueType font file for labels" type:"existingfile" env:"SAMPLEVIZ_FONT"`
}

func (f StyleFlags) runtime() (*config.RuntimeConfig, error) {
	rc := &config.RuntimeConfig{NoLabels: f.NoLabels}
	for _, set := range []struct {
		hex   string
		apply func(string) error
	}{
		{f.ReferenceColor, rc.SetReferenceColor},
		{f.TraceColor, rc.SetTraceColor},
		{f.SampleColor, rc.SetSampleColor},
	} {
		if set.hex == "" {
			continue
		}
		if err := set.apply(set.hex); err != nil {
			return nil, err
		}
	}
	return rc, nil
}

func (f StyleFlags) face(rc *config.RuntimeConfig) (font.Face, error) {
	if rc.NoLabels {
		return nil, nil
	}
	if f.Font != "" {
		return renderer.LoadFontFile(f.Font, config.LabelFontSize)
	}
	return renderer.LoadFont(config.LabelFontSize)
}

type waveCmd struct {
	SignalFlags `embed:""`
	StyleFlags  `embed:""`

	Output string `arg:"" name:"output" help:"Output PNG file"`
}

type toneCmd struct {
	SignalFlags `embed:""`

	Output     string  `arg:"" name:"output" help:"Output WAV file"`
	Source     string  `help:"Tone to render: original or processed" default:"processed" enum:"original,processed"`
	Duration   float64 `help:"Length in seconds" default:"1.5"`
	OutputRate int     `name:"output-rate" help:"WAV frame rate in Hz" default:"44100"`
	WAVBits    int     `name:"wav-bits" help:"WAV bit depth: 16 or 24" default:"16"`
	Spectrum   string  `help:"Also write a spectrum PNG of the tone" placeholder:"PNG"`
}

type imageCmd struct {
	StyleFlags `embed:""`

	Input     string `arg:"" name:"input" help:"Source image (PNG, JPEG, GIF, BMP, TIFF, WebP)" optional:"" type:"existingfile"`
	Output    string `short:"o" help:"Output PNG file" default:"pixelated.png"`
	Sample    string `help:"Generated image when no input is given: gradient or checkerboard" default:"gradient" enum:"gradient,checkerboard"`
	PixelSize int    `name:"pixel-size" help:"Block edge in pixels" default:"8"`
	Bits      int    `help:"Bits per colour channel (1-24)" default:"3"`
	Grayscale bool   `help:"Collapse to luminance before quantizing"`
}

type liveCmd struct {
	SignalFlags `embed:""`

	Image     string `help:"Image for the image demo" type:"existingfile"`
	PixelSize int    `name:"pixel-size" help:"Block edge in pixels" default:"8"`
	ImageBits int    `name:"image-bits" help:"Bits per colour channel (1-24)" default:"3"`
}

var CLI struct {
	Version bool `help:"Show version information"`

	Live  liveCmd  `cmd:"" default:"withargs" help:"Interactive terminal view (default)"`
	Wave  waveCmd  `cmd:"" help:"Render the original and sampled waveforms to a PNG"`
	Tone  toneCmd  `cmd:"" help:"Render the original or sampled tone to a WAV file"`
	Image imageCmd `cmd:"" help:"Pixelate and quantize an image, saved beside the original"`
}

func main() {
	// Defaults from the env file; flags and real variables still win
	if err := config.LoadEnvFile(config.EnvFile); err != nil {
		cli.PrintWarning(err.Error())
	}

	ctx := kong.Parse(&CLI,
		kong.Name("sampleviz"),
		kong.Description("See and hear what sampling rate and bit depth do to a sine tone and an image."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	var err error
	switch ctx.Command() {
	case "wave <output>":
		err = runWave(&CLI.Wave)
	case "tone <output>":
		err = runTone(&CLI.Tone)
	case "image", "image <input>":
		err = runImage(&CLI.Image)
	default:
		err = runLive(&CLI.Live)
	}

	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func runWave(cmd *waveCmd) error {
	p, err := cmd.params()
	if err != nil {
		return err
	}
	rc, err := cmd.runtime()
	if err != nil {
		return err
	}
	face, err := cmd.face(rc)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}

	frame := renderer.NewFrame(face, renderer.NewPalette(rc))
	defer frame.Release()

	wf := signal.Compute(p, config.Width*config.ReferenceOversample)
	frame.Draw(wf)

	if err := renderer.SavePNG(frame.GetImage(), cmd.Output); err != nil {
		return err
	}

	rows := [][2]string{
		{"Output", cmd.Output},
		{"Samples", fmt.Sprintf("%d", len(wf.Samples))},
		{"Levels", fmt.Sprintf("%d", quantize.Levels(p.BitDepth))},
		{"Nyquist", cli.FormatHz(p.Nyquist())},
	}
	if p.Aliased() {
		rows = append(rows, [2]string{"Alias", cli.FormatHz(p.AliasFrequency())})
	}
	cli.PrintSummary("Waveform rendered", rows)
	return nil
}

func runTone(cmd *toneCmd) error {
	p, err := cmd.params()
	if err != nil {
		return err
	}
	src, err := audio.ParseSource(cmd.Source)
	if err != nil {
		return err
	}

	samples, err := audio.Render(src, p, cmd.OutputRate, cmd.Duration)
	if err != nil {
		return fmt.Errorf("rendering tone: %w", err)
	}
	if err := audio.SaveWAV(cmd.Output, samples, cmd.OutputRate, cmd.WAVBits); err != nil {
		return err
	}

	rows := [][2]string{
		{"Output", cmd.Output},
		{"Tone", src.String()},
		{"Length", fmt.Sprintf("%.2f s at %s", cmd.Duration, cli.FormatHz(float64(cmd.OutputRate)))},
	}
	if info, err := os.Stat(cmd.Output); err == nil {
		rows = append(rows, [2]string{"Size", cli.FormatBytes(info.Size())})
	}

	spec, err := audio.Analyze(samples, float64(cmd.OutputRate), config.SpectrumSize)
	if err != nil {
		return fmt.Errorf("analysing tone: %w", err)
	}
	rows = append(rows, [2]string{"Dominant", cli.FormatHz(spec.Dominant())})
	if src == audio.Processed && p.Aliased() {
		rows = append(rows, [2]string{"Alias", cli.FormatHz(p.AliasFrequency())})
	}

	if cmd.Spectrum != "" {
		maxFreq := audio.DisplayRange(p, float64(cmd.OutputRate))
		bars := make([]float64, config.SpectrumBars)
		spec.Bars(maxFreq, bars)

		face, err := renderer.LoadFont(config.LabelFontSize)
		if err != nil {
			return fmt.Errorf("loading font: %w", err)
		}
		view := renderer.NewSpectrum(face, renderer.NewPalette(nil))
		view.Draw(bars, fmt.Sprintf("%s tone  0 - %s", src, cli.FormatHz(maxFreq)))
		if err := renderer.SavePNG(view.GetImage(), cmd.Spectrum); err != nil {
			return err
		}
		rows = append(rows, [2]string{"Spectrum", cmd.Spectrum})
	}

	cli.PrintSummary("Tone rendered", rows)
	return nil
}

func runImage(cmd *imageCmd) error {
	src, name, err := loadSource(cmd.Input, cmd.Sample)
	if err != nil {
		return err
	}
	rc, err := cmd.runtime()
	if err != nil {
		return err
	}
	face, err := cmd.face(rc)
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}

	opts := pixelate.Options{PixelSize: cmd.PixelSize, Bits: cmd.Bits, Grayscale: cmd.Grayscale}.Sanitize()
	processed := pixelate.Process(src, opts)

	label := fmt.Sprintf("Pixel %d  %d-bit", opts.PixelSize, opts.Bits)
	if opts.Grayscale {
		label += "  gray"
	}
	out := renderer.Compare(src, processed, face, renderer.NewPalette(rc), "Original", label)
	if err := renderer.SavePNG(out, cmd.Output); err != nil {
		return err
	}

	cli.PrintSummary("Image pixelated", [][2]string{
		{"Source", name},
		{"Size", fmt.Sprintf("%dx%d", src.Bounds().Dx(), src.Bounds().Dy())},
		{"Levels", fmt.Sprintf("%d per channel", quantize.Levels(opts.Bits))},
		{"Output", cmd.Output},
	})
	return nil
}

func runLive(cmd *liveCmd) error {
	p, err := cmd.params()
	if err != nil {
		return err
	}

	store := &pixelate.Store{}
	var name string
	if cmd.Image != "" {
		img, err := pixelate.Load(cmd.Image)
		if err != nil {
			return err
		}
		store.Replace(img)
		name = filepath.Base(cmd.Image)
	} else {
		store.Replace(pixelate.Artworks[0].Generate())
		name = pixelate.Artworks[0].String()
	}

	opts := pixelate.Options{PixelSize: cmd.PixelSize, Bits: cmd.ImageBits}
	model := ui.NewModel(p, opts, store, renderer.NewPalette(nil), name)
	defer model.Close()

	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	cli.PrintSummary("Final settings", model.Summary())
	return nil
}

// loadSource reads the input image, or generates the named sample
func loadSource(input, sample string) (*image.RGBA, string, error) {
	if input != "" {
		img, err := pixelate.Load(input)
		if err != nil {
			return nil, "", err
		}
		return img, filepath.Base(input), nil
	}

	art, err := pixelate.ParseArtwork(sample)
	if err != nil {
		return nil, "", err
	}
	return art.Generate(), art.String(), nil
}
