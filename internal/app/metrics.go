package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts what happened during a session. It is safe for
// concurrent use.
type Metrics struct {
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64
	inputMaxNs   atomic.Int64

	drawCount   atomic.Uint64
	drawTotalNs atomic.Int64

	faults atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker starting now.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordInput records the time taken to handle one keystroke or line.
func (m *Metrics) RecordInput(d time.Duration) {
	ns := d.Nanoseconds()
	m.inputCount.Add(1)
	m.inputTotalNs.Add(ns)

	for {
		old := m.inputMaxNs.Load()
		if ns <= old || m.inputMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDraw records the time taken to draw the screen.
func (m *Metrics) RecordDraw(d time.Duration) {
	m.drawCount.Add(1)
	m.drawTotalNs.Add(d.Nanoseconds())
}

// RecordFault counts an input that left an error message.
func (m *Metrics) RecordFault() {
	m.faults.Add(1)
}

// Snapshot returns a point-in-time copy.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:     time.Since(m.startTime),
		Inputs:     m.inputCount.Load(),
		MaxInputNs: m.inputMaxNs.Load(),
		Draws:      m.drawCount.Load(),
		Faults:     m.faults.Load(),
	}
	if s.Inputs > 0 {
		s.AvgInputNs = m.inputTotalNs.Load() / int64(s.Inputs)
	}
	if s.Draws > 0 {
		s.AvgDrawNs = m.drawTotalNs.Load() / int64(s.Draws)
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime     time.Duration
	Inputs     uint64
	AvgInputNs int64
	MaxInputNs int64
	Draws      uint64
	AvgDrawNs  int64
	Faults     uint64
}

// String formats the snapshot for the session log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s inputs=%d avg_input=%s max_input=%s draws=%d avg_draw=%s faults=%d",
		s.Uptime.Round(time.Millisecond), s.Inputs,
		time.Duration(s.AvgInputNs), time.Duration(s.MaxInputNs),
		s.Draws, time.Duration(s.AvgDrawNs), s.Faults)
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
