package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/rpncalc/internal/engine/lexer"
	"github.com/dshills/rpncalc/internal/engine/mode"
)

// Registry errors.
var (
	ErrNoTable     = errors.New("mode has no command table")
	ErrKeyConflict = errors.New("key already bound")
	ErrLiteralKey  = errors.New("key is part of numeric entry")
	ErrInvalidOp   = errors.New("invalid operation")
)

const helpWidth = 30

// Table is the effective command table of one calculating mode.
type Table struct {
	mode   mode.Mode
	groups []Set
	byKey  map[rune]Operation
	extra  []string
}

func newTable(m mode.Mode, extra []string, sets ...Set) *Table {
	t := &Table{
		mode:  m,
		byKey: make(map[rune]Operation),
		extra: extra,
	}
	for _, s := range sets {
		t.add(s)
	}
	return t
}

func (t *Table) add(s Set) {
	t.groups = append(t.groups, s)
	for _, op := range s.Ops {
		t.byKey[op.Key] = op
	}
}

// Mode returns the mode the table belongs to.
func (t *Table) Mode() mode.Mode {
	return t.mode
}

// Lookup returns the operation bound to r.
func (t *Table) Lookup(r rune) (Operation, bool) {
	op, ok := t.byKey[r]
	return op, ok
}

// Groups returns the sets the table was composed from, in order.
func (t *Table) Groups() []Set {
	out := make([]Set, len(t.groups))
	copy(out, t.groups)
	return out
}

// Keys returns every bound key in ascending order.
func (t *Table) Keys() []rune {
	keys := make([]rune, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sortRunes(keys)
	return keys
}

// HelpText renders the help overlay for the mode.
func (t *Table) HelpText() string {
	var sb strings.Builder
	sb.WriteString(center("RPN Commands", helpWidth))
	sb.WriteString("\n\n")

	for _, g := range t.groups {
		fmt.Fprintf(&sb, "%-*s\n", helpWidth, g.Title)
		ops := make([]Operation, len(g.Ops))
		copy(ops, g.Ops)
		sort.Slice(ops, func(i, j int) bool { return ops[i].Key < ops[j].Key })
		for _, op := range ops {
			fmt.Fprintf(&sb, "    %c : %s\n", op.Key, op.Doc)
		}
		sb.WriteString("\n")
	}

	for _, line := range t.extra {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(center("Any key to exit.", helpWidth))
	sb.WriteString("\n")
	return sb.String()
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func sortRunes(rs []rune) {
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
}

// Registry holds the command table of every calculating mode.
type Registry struct {
	tables map[mode.Mode]*Table
}

// NewRegistry builds the built-in tables.
func NewRegistry(opts Options) *Registry {
	fundamental := fundamentalSet()
	basic := basicSet()
	return &Registry{
		tables: map[mode.Mode]*Table{
			mode.Basic:      newTable(mode.Basic, nil, fundamental, basic),
			mode.Programmer: newTable(mode.Programmer, nil, fundamental, basic, programmerSet(opts)),
			mode.Scientific: newTable(mode.Scientific, []string{
				"    E : Exponential Notation",
				"    e : Euler's number (2.71828)",
				"    p : pi (3.14159)",
			}, fundamental, basic, scientificSet()),
			mode.Stats: newTable(mode.Stats, nil, fundamental, basic, statsSet()),
		},
	}
}

// Table returns the table for m, or nil for the overlay modes.
func (r *Registry) Table(m mode.Mode) *Table {
	return r.tables[m]
}

// Extend adds a set of operations to the table of m. Keys must be unbound
// in that table and must not be characters of numeric entry in any base.
// On error the table is unchanged.
func (r *Registry) Extend(m mode.Mode, s Set) error {
	t := r.tables[m]
	if t == nil {
		return fmt.Errorf("%w: %v", ErrNoTable, m)
	}
	seen := make(map[rune]bool, len(s.Ops))
	for _, op := range s.Ops {
		if op.Fn == nil || op.Action != ActionNone || op.Arity < AllValues {
			return fmt.Errorf("%w: %q", ErrInvalidOp, op.Key)
		}
		if _, ok := t.byKey[op.Key]; ok || seen[op.Key] {
			return fmt.Errorf("%w: %q in %s mode", ErrKeyConflict, op.Key, m.Name())
		}
		if isLiteral(m, op.Key) {
			return fmt.Errorf("%w: %q in %s mode", ErrLiteralKey, op.Key, m.Name())
		}
		seen[op.Key] = true
	}
	if s.Title == "" {
		s.Title = "Extension Commands"
	}
	t.add(s)
	return nil
}

func isLiteral(m mode.Mode, r rune) bool {
	bases := []mode.Base{mode.Decimal}
	if m == mode.Programmer {
		bases = []mode.Base{mode.Binary, mode.Octal, mode.Decimal, mode.Hex}
	}
	for _, b := range bases {
		for _, prefix := range []string{"", "1", "1E"} {
			if lexer.Scan(m, b, prefix).CanAccept(r) {
				return true
			}
		}
	}
	return false
}
