package lua

import (
	"errors"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func TestStateCallFunction(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function pair(a, b) return b, a end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	fn, ok := s.L.GetGlobal("pair").(*lua.LFunction)
	if !ok {
		t.Fatal("pair is not a function")
	}

	got, err := s.CallFunction(fn, lua.LNumber(1), lua.LNumber(2))
	if err != nil {
		t.Fatalf("CallFunction() error = %v", err)
	}
	if len(got) != 2 || got[0] != lua.LNumber(2) || got[1] != lua.LNumber(1) {
		t.Errorf("CallFunction() = %v, want [2 1]", got)
	}
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack top after call = %d, want 0", top)
	}
}

func TestStateLibraries(t *testing.T) {
	s := NewState()
	defer s.Close()

	code := `
assert(math.floor(2.5) == 2)
assert(string.upper("x") == "X")
assert(#table.concat({"a", "b"}) == 2)
assert(tostring(1) == "1")
`
	if err := s.DoString(code); err != nil {
		t.Errorf("DoString() error = %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(20 * time.Millisecond))
	defer s.Close()

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := s.DoString(`x = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClose(t *testing.T) {
	s := NewState()
	if s.IsClosed() {
		t.Fatal("new state reports closed")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() on closed state = %v, want ErrStateClosed", err)
	}
}
