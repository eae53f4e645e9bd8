package lua

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rpncalc/internal/engine"
	"github.com/dshills/rpncalc/internal/engine/command"
	"github.com/dshills/rpncalc/internal/engine/mode"
	"github.com/dshills/rpncalc/internal/engine/value"
)

// Plugin is one loaded script and the commands it registered.
type Plugin struct {
	Path  string
	state *State
	cmds  []definition
}

type definition struct {
	mode  mode.Mode
	op    command.Operation
	fn    *lua.LFunction
	all   bool
	nArgs int
}

// Load runs the script at path and collects the commands it registers
// with rpn.command.
func Load(path string, opts ...StateOption) (*Plugin, error) {
	p := &Plugin{Path: path, state: NewState(opts...)}
	p.install()
	if err := p.state.DoFile(path); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}

// LoadString runs code as a script named name.
func LoadString(name, code string, opts ...StateOption) (*Plugin, error) {
	p := &Plugin{Path: name, state: NewState(opts...)}
	p.install()
	if err := p.state.DoString(code); err != nil {
		p.state.Close()
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return p, nil
}

// LoadPath loads a single .lua file, or every .lua file in a directory in
// name order. Scripts that fail to load are returned in the error; the
// rest are still loaded.
func LoadPath(path string, opts ...StateOption) ([]*Plugin, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.lua"))
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
	}

	var (
		plugins []*Plugin
		errs    []string
	)
	for _, f := range files {
		p, err := Load(f, opts...)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		plugins = append(plugins, p)
	}
	if len(errs) > 0 {
		return plugins, fmt.Errorf("plugins: %s", strings.Join(errs, "; "))
	}
	return plugins, nil
}

// Close releases the plugin's Lua state. Its operations fail afterwards.
func (p *Plugin) Close() error {
	return p.state.Close()
}

// Extensions returns the registered commands grouped by mode, in mode
// order.
func (p *Plugin) Extensions() []engine.Extension {
	title := "Plugin Commands (" + filepath.Base(p.Path) + ")"
	byMode := make(map[mode.Mode][]command.Operation)
	for _, d := range p.cmds {
		byMode[d.mode] = append(byMode[d.mode], d.op)
	}

	var exts []engine.Extension
	for _, m := range mode.Modes {
		if ops := byMode[m]; len(ops) > 0 {
			exts = append(exts, engine.Extension{Mode: m, Set: command.Set{Title: title, Ops: ops}})
		}
	}
	return exts
}

// Extensions collects the extensions of several plugins.
func Extensions(plugins []*Plugin) []engine.Extension {
	var exts []engine.Extension
	for _, p := range plugins {
		exts = append(exts, p.Extensions()...)
	}
	return exts
}

// install registers the rpn module:
//
//	rpn.command{mode="basic", key="T", name="triple", doc="...", arity=1,
//	            undo_on_error=false, info="3x", fn=function(x) return 3*x end}
//
// fn receives the operands top of stack first. With arity="all" it
// receives one table holding the whole stack, bottom first.
func (p *Plugin) install() {
	L := p.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"command": p.luaCommand,
	})
	modes := L.NewTable()
	for _, m := range mode.Modes {
		modes.Append(lua.LString(m.Name()))
	}
	L.SetField(mod, "modes", modes)
	L.SetGlobal("rpn", mod)
}

func (p *Plugin) luaCommand(L *lua.LState) int {
	tbl := L.CheckTable(1)
	d, err := p.define(tbl)
	if err != nil {
		L.RaiseError("rpn.command: %v", err)
		return 0
	}
	p.cmds = append(p.cmds, d)
	return 0
}

func (p *Plugin) define(tbl *lua.LTable) (definition, error) {
	str := func(field string) string {
		if s, ok := tbl.RawGetString(field).(lua.LString); ok {
			return string(s)
		}
		return ""
	}

	var d definition
	m, ok := mode.Parse(str("mode"))
	if !ok {
		return d, fmt.Errorf("%w: unknown mode %q", ErrBadCommand, str("mode"))
	}
	key := str("key")
	if utf8.RuneCountInString(key) != 1 {
		return d, fmt.Errorf("%w: key must be one character, got %q", ErrBadCommand, key)
	}
	fn, ok := tbl.RawGetString("fn").(*lua.LFunction)
	if !ok {
		return d, fmt.Errorf("%w: fn must be a function", ErrBadCommand)
	}

	switch a := tbl.RawGetString("arity").(type) {
	case lua.LNumber:
		if a < 0 || float64(a) != math.Trunc(float64(a)) {
			return d, fmt.Errorf("%w: arity must be a non-negative integer", ErrBadCommand)
		}
		d.nArgs = int(a)
	case lua.LString:
		if a != "all" {
			return d, fmt.Errorf("%w: arity must be a number or \"all\"", ErrBadCommand)
		}
		d.all = true
	case *lua.LNilType:
		d.nArgs = 1
	default:
		return d, fmt.Errorf("%w: arity must be a number or \"all\"", ErrBadCommand)
	}

	name := str("name")
	if name == "" {
		name = "lua:" + key
	}
	r, _ := utf8.DecodeRuneInString(key)

	d.mode = m
	d.fn = fn
	d.op = command.Operation{
		Key:   r,
		Name:  name,
		Doc:   str("doc"),
		Info:  str("info"),
		Arity: d.nArgs,
	}
	if d.all {
		d.op.Arity = command.AllValues
	}
	if lua.LVAsBool(tbl.RawGetString("undo_on_error")) {
		d.op.Policy = command.ReportAndUndo
	}
	d.op.Fn = p.operation(d)
	return d, nil
}

// operation adapts a Lua function to a command function.
func (p *Plugin) operation(d definition) command.Func {
	return func(args []value.Value) ([]value.Value, error) {
		var largs []lua.LValue
		if d.all {
			t := p.state.L.NewTable()
			for _, a := range args {
				t.Append(toLua(a))
			}
			largs = []lua.LValue{t}
		} else {
			largs = make([]lua.LValue, len(args))
			for i, a := range args {
				largs[i] = toLua(a)
			}
		}

		rets, err := p.state.CallFunction(d.fn, largs...)
		if err != nil {
			return nil, command.Fault(d.op.Name, err)
		}

		out := make([]value.Value, 0, len(rets))
		for _, r := range rets {
			if r == lua.LNil {
				continue
			}
			v, err := fromLua(d.mode, r)
			if err != nil {
				return nil, command.Fault(d.op.Name, err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// toLua converts a value to a Lua number. Integers beyond float64 range
// lose precision.
func toLua(v value.Value) lua.LValue {
	return lua.LNumber(v.Float64())
}

// fromLua converts a Lua result. Programmer mode results are truncated to
// integers so bitwise operations keep working on them.
func fromLua(m mode.Mode, lv lua.LValue) (value.Value, error) {
	n, ok := lv.(lua.LNumber)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: got %s", ErrBadResult, lv.Type())
	}
	f := float64(n)
	if m == mode.Programmer {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return value.Value{}, command.ErrOverflow
		}
		i, _ := new(big.Float).SetFloat64(math.Trunc(f)).Int(nil)
		return value.FromBigInt(i), nil
	}
	return value.FromFloat(f), nil
}
