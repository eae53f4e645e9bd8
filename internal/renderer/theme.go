package renderer

import (
	"fmt"

	"github.com/dshills/rpncalc/internal/renderer/core"
)

// Palette holds the configurable theme colors as hex strings.
type Palette struct {
	ModeBar string
	Message string
	Error   string
	Ruler   string
}

// DefaultPalette returns the built-in colors.
func DefaultPalette() Palette {
	return Palette{
		ModeBar: "#5FAFFF",
		Message: "#AFAF87",
		Error:   "#FF5F5F",
		Ruler:   "#808080",
	}
}

// Theme maps line kinds to styles.
type Theme struct {
	Title   core.Style
	ModeBar core.Style
	Menu    core.Style
	Message core.Style
	Error   core.Style
	Ruler   core.Style
	Help    core.Style
	Text    core.Style
}

// DefaultTheme returns the theme built from DefaultPalette.
func DefaultTheme() Theme {
	t, _ := NewTheme(DefaultPalette())
	return t
}

// NewTheme builds a theme from a palette.
func NewTheme(p Palette) (Theme, error) {
	modeBar, err := core.ColorFromHex(p.ModeBar)
	if err != nil {
		return Theme{}, fmt.Errorf("mode bar: %w", err)
	}
	message, err := core.ColorFromHex(p.Message)
	if err != nil {
		return Theme{}, fmt.Errorf("message: %w", err)
	}
	errColor, err := core.ColorFromHex(p.Error)
	if err != nil {
		return Theme{}, fmt.Errorf("error: %w", err)
	}
	ruler, err := core.ColorFromHex(p.Ruler)
	if err != nil {
		return Theme{}, fmt.Errorf("ruler: %w", err)
	}

	white := core.ColorFromRGB(255, 255, 255)
	return Theme{
		Title:   core.NewStyle(modeBar).Reverse().Bold(),
		ModeBar: core.NewStyle(modeBar).Bold(),
		Menu:    core.NewStyle(modeBar.Blend(white, 0.3)),
		Message: core.NewStyle(message),
		Error:   core.NewStyle(errColor).Bold(),
		Ruler:   core.NewStyle(ruler).Dim(),
		Help:    core.NewStyle(message.Blend(white, 0.5)),
		Text:    core.DefaultStyle(),
	}, nil
}

// Style returns the style for a line kind.
func (t Theme) Style(k LineKind) core.Style {
	switch k {
	case LineModeBar:
		return t.ModeBar
	case LineMenu:
		return t.Menu
	case LineMessage:
		return t.Message
	case LineError:
		return t.Error
	case LineRuler:
		return t.Ruler
	case LineHelp:
		return t.Help
	default:
		return t.Text
	}
}
