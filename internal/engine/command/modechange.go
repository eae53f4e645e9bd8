package command

import "github.com/dshills/rpncalc/internal/engine/mode"

// SelectionKind is what a change-mode key selects.
type SelectionKind uint8

const (
	SelectMode SelectionKind = iota
	SelectBase
	SelectNotation
	SelectExit
)

// Selection is one entry of the change-mode menu.
type Selection struct {
	Key      rune
	Label    string
	Kind     SelectionKind
	Mode     mode.Mode
	Base     mode.Base
	Notation mode.Notation
}

var (
	modeSelections = []Selection{
		{Key: 'b', Label: "(b)ASIC", Kind: SelectMode, Mode: mode.Basic},
		{Key: 'P', Label: "(P)ROGRAMMER", Kind: SelectMode, Mode: mode.Programmer},
		{Key: 'S', Label: "(S)CIENTIFIC", Kind: SelectMode, Mode: mode.Scientific},
		{Key: 's', Label: "(s)TATISTICS", Kind: SelectMode, Mode: mode.Stats},
	}
	baseSelections = []Selection{
		{Key: 'B', Label: "(B)IN", Kind: SelectBase, Base: mode.Binary},
		{Key: 'O', Label: "(O)CT", Kind: SelectBase, Base: mode.Octal},
		{Key: 'D', Label: "(D)EC", Kind: SelectBase, Base: mode.Decimal},
		{Key: 'H', Label: "(H)EX", Kind: SelectBase, Base: mode.Hex},
	}
	notationSelections = []Selection{
		{Key: 'R', Label: "(R)EG", Kind: SelectNotation, Notation: mode.Regular},
		{Key: 'E', Label: "(E)NG", Kind: SelectNotation, Notation: mode.Engineering},
	}
	exitSelection = Selection{Key: ':', Kind: SelectExit}
)

// ModeSelections returns the mode choices, in menu order.
func ModeSelections() []Selection {
	return append([]Selection(nil), modeSelections...)
}

// SettingSelections returns the base or notation choices offered when the
// menu was opened from prev. The result is empty for modes without one.
func SettingSelections(prev mode.Mode) []Selection {
	switch {
	case prev == mode.Programmer:
		return append([]Selection(nil), baseSelections...)
	case notationApplies(prev):
		return append([]Selection(nil), notationSelections...)
	default:
		return nil
	}
}

func notationApplies(m mode.Mode) bool {
	return m == mode.Scientific || m == mode.Basic
}

// LookupSelection resolves a key typed in the change-mode menu opened from
// prev.
func LookupSelection(prev mode.Mode, r rune) (Selection, bool) {
	if r == exitSelection.Key {
		return exitSelection, true
	}
	for _, s := range modeSelections {
		if s.Key == r {
			return s, true
		}
	}
	for _, s := range SettingSelections(prev) {
		if s.Key == r {
			return s, true
		}
	}
	return Selection{}, false
}
