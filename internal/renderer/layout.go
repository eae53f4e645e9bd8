package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/engine/command"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/renderer/core"
)

// LineKind identifies what a laid out line shows, for styling.
type LineKind uint8

const (
	LineModeBar LineKind = iota
	LineMessage
	LineError
	LineBlank
	LineRuler
	LineHelp
	LineStack
	LinePrompt
	LineMenu
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineModeBar:
		return "mode-bar"
	case LineMessage:
		return "message"
	case LineError:
		return "error"
	case LineBlank:
		return "blank"
	case LineRuler:
		return "ruler"
	case LineHelp:
		return "help"
	case LineStack:
		return "stack"
	case LinePrompt:
		return "prompt"
	case LineMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// Line is one line of calculator text, without its newline.
type Line struct {
	Kind LineKind
	Text string
}

const (
	modeBarLeft  = 15
	modeBarRight = 5
	messageWidth = 34
)

// ModeBar formats a mode bar with left text dot-padded to the right and
// right text dot-padded to the left.
func ModeBar(left, right string) string {
	return "....." + padRight(left, modeBarLeft, '.') + "..." + padLeft(right, modeBarRight, '.') + "......"
}

// Layout lays out a frame as lines. Joining the line texts with newlines
// gives the exact text of the calculator view.
func Layout(f engine.Frame) []Line {
	if f.Mode == mode.ChangeMode {
		return menuLines(f.PrevMode)
	}

	lines := []Line{{Kind: LineModeBar, Text: ModeBar(f.Mode.String(), statusField(f))}}

	if f.Message != "" {
		kind := LineMessage
		if isErrorMessage(f.Message) {
			kind = LineError
		}
		lines = append(lines, Line{Kind: kind, Text: padLeft(f.Message, messageWidth, ' ')})
	}

	lines = append(lines, Line{Kind: LineBlank})

	if f.Mode == mode.Programmer && f.Base == mode.Binary {
		lines = append(lines, Line{Kind: LineRuler, Text: Ruler(f.Bits)})
	}

	if f.Mode == mode.Help {
		for _, l := range strings.Split(f.Help, "\n") {
			lines = append(lines, Line{Kind: LineHelp, Text: l})
		}
		return lines
	}

	for i, entry := range f.Entries {
		lines = append(lines, Line{Kind: LineStack, Text: fmt.Sprintf("%d> %s", i, entry)})
	}
	lines = append(lines, Line{Kind: LinePrompt, Text: fmt.Sprintf("%d> ", len(f.Entries))})
	return lines
}

// Text returns the calculator view text for a frame.
func Text(f engine.Frame) string {
	return Join(Layout(f))
}

// Join joins line texts with newlines.
func Join(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// Ruler returns the bit-number line shown above binary values. Labels sit
// over the first bit of every byte, counting down to bit 0.
func Ruler(bits int) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for n := bits - 1; n > 0; n -= 8 {
		spaces := 8
		if n <= 7 {
			spaces = 7
		}
		fmt.Fprintf(&sb, "%d%s", n, strings.Repeat(" ", spaces))
	}
	sb.WriteString("0")
	return sb.String()
}

func statusField(f engine.Frame) string {
	switch f.Mode {
	case mode.Programmer:
		return f.Base.String()
	case mode.Scientific:
		return f.Notation.String()
	default:
		return ""
	}
}

// menuLines builds the mode change menu. The right column offers the
// settings of the mode being left.
func menuLines(prev mode.Mode) []Line {
	modes := command.ModeSelections()
	settings := command.SettingSelections(prev)

	right := make([]string, len(modes))
	switch {
	case prev == mode.Programmer:
		for i := range right {
			if i < len(settings) {
				right[i] = settings[i].Label
			}
		}
	case len(settings) > 0:
		// Notation choices sit on the Scientific and Statistics rows.
		right[0] = "NOTAT"
		for i, s := range settings {
			if 2+i < len(right) {
				right[2+i] = s.Label
			}
		}
	}

	lines := make([]Line, 0, len(modes)+1)
	for i, m := range modes {
		lines = append(lines, Line{Kind: LineMenu, Text: ModeBar(m.Label, right[i])})
	}
	return append(lines, Line{Kind: LineBlank})
}

func isErrorMessage(msg string) bool {
	return strings.HasPrefix(msg, "ERROR") || strings.HasPrefix(msg, "math error")
}

func padRight(s string, width int, pad rune) string {
	if w := core.StringWidth(s); w < width {
		return s + strings.Repeat(string(pad), width-w)
	}
	return s
}

func padLeft(s string, width int, pad rune) string {
	if w := core.StringWidth(s); w < width {
		return strings.Repeat(string(pad), width-w) + s
	}
	return s
}
