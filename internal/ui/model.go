// Package ui runs the interactive terminal view: the waveform demo and the
// image demo rendered as true-colour half-block previews.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/sampleviz/internal/audio"
	"github.com/linuxmatters/sampleviz/internal/cli"
	"github.com/linuxmatters/sampleviz/internal/config"
	"github.com/linuxmatters/sampleviz/internal/pixelate"
	"github.com/linuxmatters/sampleviz/internal/quantize"
	"github.com/linuxmatters/sampleviz/internal/renderer"
	"github.com/linuxmatters/sampleviz/internal/signal"
)

// View selects which demo is on screen
type View int

const (
	ViewWave View = iota
	ViewImage
)

func (v View) String() string {
	if v == ViewImage {
		return "image"
	}
	return "wave"
}

// tickMsg drives the waveform refresh
type tickMsg time.Time

// imageLoadedMsg reports that the store holds a new source image
type imageLoadedMsg struct {
	name string
}

// imageKey identifies the inputs of the last image preview
type imageKey struct {
	opts       pixelate.Options
	generation uint64
	width      int
	height     int
}

// Model is the Bubbletea model for the live view
type Model struct {
	params  signal.Params
	imgOpts pixelate.Options
	store   *pixelate.Store
	palette renderer.Palette
	frame   *renderer.Frame

	artwork   int
	imageName string
	view      View

	keys     keyMap
	help     help.Model
	nyquist  progress.Model
	preview  PreviewConfig
	width    int
	height   int
	ticks    int
	quitting bool

	// Waveform preview, redrawn on every tick
	wavePreview string

	// Image preview, redrawn only when its inputs change
	imagePreview string
	imageErr     error
	imageCache   imageKey
	imageValid   bool

	// Spectrum of the processed tone, redrawn when params change
	bars       []float64
	dominant   float64
	spectrumOf signal.Params
	haveBars   bool
}

// NewModel creates the live view. The store may be empty; the image view
// then shows a hint until an image is loaded.
func NewModel(params signal.Params, imgOpts pixelate.Options, store *pixelate.Store, palette renderer.Palette, imageName string) *Model {
	if store == nil {
		store = &pixelate.Store{}
	}

	// Blue to coral: the meter fills as the tone approaches Nyquist
	meter := progress.New(
		progress.WithGradient(string(cli.ReferenceBlue), string(cli.TraceCoral)),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	params = params.Sanitize()
	params.Window = math.Min(params.Window, config.MaxWindowMs/1000)

	return &Model{
		params:    params,
		imgOpts:   imgOpts.Sanitize(),
		store:     store,
		palette:   palette,
		frame:     renderer.NewFrame(nil, palette),
		imageName: imageName,
		keys:      defaultKeyMap(),
		help:      help.New(),
		nyquist:   meter,
		preview:   DefaultPreviewConfig(),
		bars:      make([]float64, config.SpectrumBars),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/config.TickFPS, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadArtwork generates a sample image off the update loop and swaps it
// into the store
func loadArtwork(store *pixelate.Store, a pixelate.Artwork) tea.Cmd {
	return func() tea.Msg {
		store.Replace(a.Generate())
		return imageLoadedMsg{name: a.String()}
	}
}

// Init starts the refresh ticker
func (m *Model) Init() tea.Cmd {
	m.refreshWave()
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nyquist.Width = max(10, min(msg.Width-30, 50))
		m.preview.Width = max(20, min(msg.Width-6, config.PreviewWidth))
		m.preview.Height = max(6, min(msg.Height-16, config.PreviewHeight))
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.ticks++
		m.refreshWave()
		return m, tick()

	case imageLoadedMsg:
		m.imageName = msg.name
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	p := &m.params
	o := &m.imgOpts

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Switch):
		if m.view == ViewWave {
			m.view = ViewImage
		} else {
			m.view = ViewWave
		}

	case key.Matches(msg, m.keys.FreqUp):
		p.Frequency = math.Min(p.Frequency+config.FrequencyStep, config.MaxSampleRate)
	case key.Matches(msg, m.keys.FreqDown):
		p.Frequency = math.Max(p.Frequency-config.FrequencyStep, config.FrequencyStep)
	case key.Matches(msg, m.keys.RateUp):
		p.SampleRate = math.Min(p.SampleRate+config.SampleRateStep, config.MaxSampleRate)
	case key.Matches(msg, m.keys.RateDown):
		p.SampleRate = math.Max(p.SampleRate-config.SampleRateStep, config.SampleRateStep)
	case key.Matches(msg, m.keys.BitsUp):
		p.BitDepth = quantize.ClampBits(p.BitDepth + 1)
	case key.Matches(msg, m.keys.BitsDown):
		p.BitDepth = quantize.ClampBits(p.BitDepth - 1)
	case key.Matches(msg, m.keys.WindowUp):
		p.Window = math.Min(p.Window+config.WindowStepMs/1000, config.MaxWindowMs/1000)
	case key.Matches(msg, m.keys.WindowDown):
		p.Window = math.Max(p.Window-config.WindowStepMs/1000, config.MinWindowMs/1000)
	case key.Matches(msg, m.keys.Mode):
		if p.Mode == signal.Hold {
			p.Mode = signal.Linear
		} else {
			p.Mode = signal.Hold
		}

	case key.Matches(msg, m.keys.PixelUp):
		o.PixelSize = min(o.PixelSize+1, config.MaxPixelSize)
	case key.Matches(msg, m.keys.PixelDown):
		o.PixelSize = max(o.PixelSize-1, 1)
	case key.Matches(msg, m.keys.ImageBitsUp):
		o.Bits = quantize.ClampBits(o.Bits + 1)
	case key.Matches(msg, m.keys.ImageBitsDn):
		o.Bits = quantize.ClampBits(o.Bits - 1)
	case key.Matches(msg, m.keys.Grayscale):
		o.Grayscale = !o.Grayscale
	case key.Matches(msg, m.keys.NextImage):
		m.artwork = (m.artwork + 1) % len(pixelate.Artworks)
		return loadArtwork(m.store, pixelate.Artworks[m.artwork])
	}

	return nil
}

// refreshWave recomputes and redraws the waveform panels from scratch
func (m *Model) refreshWave() {
	wf := signal.Compute(m.params, config.Width*config.ReferenceOversample)
	m.frame.Draw(wf)

	cfg := m.preview
	bg := m.palette.Background
	cfg.Background = &bg
	m.wavePreview = RenderPreview(DownsampleFrame(m.frame.GetImage(), cfg), "")

	if !m.haveBars || m.spectrumOf != m.params {
		m.refreshSpectrum()
	}
}

// refreshSpectrum analyses one FFT window of the processed tone
func (m *Model) refreshSpectrum() {
	m.spectrumOf = m.params
	m.haveBars = true

	rate := float64(config.OutputSampleRate)
	samples := signal.Synthesize(m.params, rate, float64(config.SpectrumSize)/rate)
	spec, err := audio.Analyze(samples, rate, config.SpectrumSize)
	if err != nil {
		clear(m.bars)
		m.dominant = 0
		return
	}
	m.dominant = spec.Dominant()
	spec.Bars(audio.DisplayRange(m.params, rate), m.bars)
}

// refreshImage recomputes the comparison only when its inputs changed
func (m *Model) refreshImage() {
	k := imageKey{
		opts:       m.imgOpts,
		generation: m.store.Generation(),
		width:      m.preview.Width,
		height:     m.preview.Height,
	}
	if m.imageValid && k == m.imageCache {
		return
	}
	m.imageCache = k
	m.imageValid = true

	src, err := m.store.Current()
	if err != nil {
		m.imageErr = err
		m.imagePreview = ""
		return
	}
	m.imageErr = nil

	cmp := renderer.Compare(src, pixelate.Process(src, m.imgOpts), nil, m.palette, "", "")
	m.imagePreview = RenderPreview(DownsampleFrame(cmp, m.preview), "")
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.ReferenceBlue)
	tabStyle   = lipgloss.NewStyle().Foreground(cli.MutedSlate)
	activeTab  = lipgloss.NewStyle().Bold(true).Foreground(cli.SampleGold).Underline(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(cli.TraceCoral)
)

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("sampleviz"))
	s.WriteString("  ")
	for _, v := range []View{ViewWave, ViewImage} {
		style := tabStyle
		if v == m.view {
			style = activeTab
		}
		s.WriteString(style.Render(v.String()))
		s.WriteString(" ")
	}
	s.WriteString("\n\n")

	if m.view == ViewImage {
		m.renderImageView(&s)
	} else {
		m.renderWaveView(&s)
	}

	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(cli.AxisSlate).
		Padding(0, 1).
		Render(s.String())
}

func (m *Model) renderWaveView(s *strings.Builder) {
	p := m.params

	s.WriteString(m.wavePreview)
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.ReferenceBlue).Render(renderer.OriginalLabel(p)))
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Foreground(cli.TraceCoral).Render(renderer.ProcessedLabel(p)))
	s.WriteString("\n\n")

	// Nyquist meter
	ratio := math.Min(1, p.Frequency/p.Nyquist())
	s.WriteString("Nyquist: ")
	s.WriteString(m.nyquist.ViewAs(ratio))
	fmt.Fprintf(s, "  %s / %s", cli.FormatHz(p.Frequency), cli.FormatHz(p.Nyquist()))
	if p.Aliased() {
		s.WriteString("  ")
		s.WriteString(warnStyle.Render("aliased to " + cli.FormatHz(p.AliasFrequency())))
	}
	s.WriteString("\n\n")

	s.WriteString(faintStyle.Render(fmt.Sprintf("Processed tone spectrum, 0 - %s, peak %s",
		cli.FormatHz(audio.DisplayRange(p, config.OutputSampleRate)), cli.FormatHz(m.dominant))))
	s.WriteString("\n")
	s.WriteString(renderSpectrum(m.bars, m.preview.Width))
}

func (m *Model) renderImageView(s *strings.Builder) {
	m.refreshImage()

	if m.imageErr != nil {
		s.WriteString(faintStyle.Render("No image loaded. Press n to generate one."))
		return
	}

	s.WriteString(m.imagePreview)
	s.WriteString("\n")

	mode := "colour"
	if m.imgOpts.Grayscale {
		mode = "grayscale"
	}
	name := m.imageName
	if name == "" {
		name = "image"
	}
	fmt.Fprintf(s, "%s  │  pixel %d  │  %d-bit %s  │  %d levels",
		name, m.imgOpts.PixelSize, m.imgOpts.Bits, mode, quantize.Levels(m.imgOpts.Bits))
}

// Summary returns the final settings for printing after the alt screen exits
func (m *Model) Summary() [][2]string {
	p := m.params
	rows := [][2]string{
		{"Frequency", cli.FormatHz(p.Frequency)},
		{"Sample rate", cli.FormatHz(p.SampleRate)},
		{"Bit depth", fmt.Sprintf("%d (%d levels)", p.BitDepth, quantize.Levels(p.BitDepth))},
		{"Window", fmt.Sprintf("%g ms", p.Window*1000)},
		{"Mode", p.Mode.String()},
		{"Pixel size", fmt.Sprintf("%d", m.imgOpts.PixelSize)},
		{"Image bits", fmt.Sprintf("%d", m.imgOpts.Bits)},
	}
	if p.Aliased() {
		rows = append(rows, [2]string{"Alias", cli.FormatHz(p.AliasFrequency())})
	}
	return rows
}

// Params returns the current waveform parameters
func (m *Model) Params() signal.Params {
	return m.params
}

// ImageOptions returns the current image demo options
func (m *Model) ImageOptions() pixelate.Options {
	return m.imgOpts
}

// Close returns the frame buffer to the pool
func (m *Model) Close() {
	m.frame.Release()
}
