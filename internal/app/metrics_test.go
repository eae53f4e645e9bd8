package app

import (
	"strings"
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordInput(2 * time.Millisecond)
	m.RecordInput(4 * time.Millisecond)
	m.RecordDraw(time.Millisecond)
	m.RecordFault()

	s := m.Snapshot()
	if s.Inputs != 2 || s.Draws != 1 || s.Faults != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", s.Inputs, s.Draws, s.Faults)
	}
	if s.AvgInputNs != int64(3*time.Millisecond) {
		t.Errorf("AvgInputNs = %d", s.AvgInputNs)
	}
	if s.MaxInputNs != int64(4*time.Millisecond) {
		t.Errorf("MaxInputNs = %d", s.MaxInputNs)
	}
	if !strings.Contains(s.String(), "inputs=2") || !strings.Contains(s.String(), "faults=1") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestMetrics_Empty(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.AvgInputNs != 0 || s.AvgDrawNs != 0 {
		t.Errorf("empty snapshot averages = %d, %d", s.AvgInputNs, s.AvgDrawNs)
	}
}
