package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics: key events handled and, per
// action kind, how often it ran, how long it took and how often it failed.
type Metrics struct {
	mu sync.RWMutex

	actions map[ActionKind]*ActionMetrics

	totalKeys     uint64
	totalErrors   uint64
	totalPanics   uint64
	totalDuration time.Duration
}

// ActionMetrics holds metrics for one action kind.
type ActionMetrics struct {
	Kind          ActionKind
	Count         uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastApplied   time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[ActionKind]*ActionMetrics)}
}

// RecordKey records one dispatched key event and the time spent on it.
func (m *Metrics) RecordKey(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalKeys++
	m.totalDuration += duration
}

// RecordAction records one applied action.
func (m *Metrics) RecordAction(kind ActionKind, duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[kind]
	if am == nil {
		am = &ActionMetrics{Kind: kind}
		m.actions[kind] = am
	}
	am.Count++
	am.TotalDuration += duration
	am.MaxDuration = max(am.MaxDuration, duration)
	am.LastApplied = time.Now()

	if failed {
		am.ErrorCount++
		m.totalErrors++
	}
}

// RecordPanic records a recovered panic.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalKeys returns the number of key events dispatched.
func (m *Metrics) TotalKeys() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalKeys
}

// TotalErrors returns the number of failed actions.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// ActionStats returns a copy of the metrics for kind, or nil.
func (m *Metrics) ActionStats(kind ActionKind) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actions[kind]
	if am == nil {
		return nil
	}
	cp := *am
	return &cp
}

// TopActions returns the n most applied action kinds.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]*ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		cp := *am
		actions = append(actions, &cp)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Count != actions[j].Count {
			return actions[i].Count > actions[j].Count
		}
		return actions[i].Kind < actions[j].Kind
	})
	return actions[:min(n, len(actions))]
}

// MetricsSnapshot is a point-in-time summary.
type MetricsSnapshot struct {
	TotalKeys       uint64
	TotalErrors     uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ActionCount     int
}

// Snapshot returns a summary of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalKeys:   m.totalKeys,
		TotalErrors: m.totalErrors,
		TotalPanics: m.totalPanics,
		ActionCount: len(m.actions),
	}
	if m.totalKeys > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalKeys)
	}
	return s
}

// AverageDuration returns the mean time per application.
func (am *ActionMetrics) AverageDuration() time.Duration {
	if am.Count == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.Count)
}
