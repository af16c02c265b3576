package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the live view bindings
type keyMap struct {
	FreqUp     key.Binding
	FreqDown   key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	BitsUp     key.Binding
	BitsDown   key.Binding
	WindowUp   key.Binding
	WindowDown key.Binding
	Mode       key.Binding

	PixelUp     key.Binding
	PixelDown   key.Binding
	ImageBitsUp key.Binding
	ImageBitsDn key.Binding
	Grayscale   key.Binding
	NextImage   key.Binding

	Switch key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		FreqUp:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "freq +")),
		FreqDown:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "freq -")),
		RateUp:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "rate +")),
		RateDown:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "rate -")),
		BitsUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bits +")),
		BitsDown:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "bits -")),
		WindowUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "window +")),
		WindowDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "window -")),
		Mode:       key.NewBinding(key.WithKeys("m", "z"), key.WithHelp("m", "hold/linear")),

		PixelUp:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "pixel +")),
		PixelDown:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pixel -")),
		ImageBitsUp: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "image bits +")),
		ImageBitsDn: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "image bits -")),
		Grayscale:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grayscale")),
		NextImage:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next image")),

		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "wave/image")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FreqUp, k.RateUp, k.BitsUp, k.Mode, k.Switch, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FreqUp, k.FreqDown, k.RateUp, k.RateDown},
		{k.BitsUp, k.BitsDown, k.WindowUp, k.WindowDown, k.Mode},
		{k.PixelUp, k.PixelDown, k.ImageBitsUp, k.ImageBitsDn, k.Grayscale, k.NextImage},
		{k.Switch, k.Help, k.Quit},
	}
}
