package app

import (
	"sync/atomic"
	"time"
)

// EventSource identifies where a loop event came from.
type EventSource int

// Loop event sources.
const (
	SourceTerminal EventSource = iota
	SourceWatcher
	SourceSignal
	sourceCount
)

func (s EventSource) String() string {
	switch s {
	case SourceTerminal:
		return "terminal"
	case SourceWatcher:
		return "watcher"
	case SourceSignal:
		return "signal"
	default:
		return "unknown"
	}
}

// Metrics tracks event loop statistics.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	events [sourceCount]atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame records the time spent drawing one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent counts one event from src.
func (m *Metrics) RecordEvent(src EventSource) {
	if src < 0 || src >= sourceCount {
		return
	}
	m.events[src].Add(1)
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	FrameCount   uint64
	FrameAvg     time.Duration
	FrameMax     time.Duration
	TerminalEvts uint64
	WatcherEvts  uint64
	SignalEvts   uint64
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		FrameCount:   m.frameCount.Load(),
		FrameMax:     time.Duration(m.frameMaxNs.Load()),
		TerminalEvts: m.events[SourceTerminal].Load(),
		WatcherEvts:  m.events[SourceWatcher].Load(),
		SignalEvts:   m.events[SourceSignal].Load(),
	}
	if s.FrameCount > 0 {
		s.FrameAvg = time.Duration(m.frameTotalNs.Load() / int64(s.FrameCount))
	}
	return s
}
