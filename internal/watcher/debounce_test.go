package watcher

import (
	"sync"
	"testing"
	"time"
)

// mockWatcher is a simple mock for testing DebouncedWatcher.
type mockWatcher struct {
	mu       sync.Mutex
	events   chan Event
	errors   chan error
	watching map[string]bool
	closed   bool
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{
		events:   make(chan Event, 100),
		errors:   make(chan error, 100),
		watching: make(map[string]bool),
	}
}

func (m *mockWatcher) Watch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watching[path] = true
	return nil
}

func (m *mockWatcher) Unwatch(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watching, path)
	return nil
}

func (m *mockWatcher) Events() <-chan Event {
	return m.events
}

func (m *mockWatcher) Errors() <-chan error {
	return m.errors
}

func (m *mockWatcher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
		close(m.errors)
	}
	return nil
}

func (m *mockWatcher) isWatching(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watching[path]
}

func TestNewDebouncedWatcher_DefaultDelay(t *testing.T) {
	dw := NewDebouncedWatcher(newMockWatcher(), 0)
	defer dw.Close()

	if dw.delay != 100*time.Millisecond {
		t.Errorf("delay = %v, want 100ms (default)", dw.delay)
	}
}

func TestDebouncedWatcher_PassThrough(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	if err := dw.Watch("/f.bin"); err != nil {
		t.Errorf("Watch error = %v", err)
	}
	if !mock.isWatching("/f.bin") {
		t.Error("mock should be watching /f.bin")
	}
	if err := dw.Unwatch("/f.bin"); err != nil {
		t.Errorf("Unwatch error = %v", err)
	}
	if mock.isWatching("/f.bin") {
		t.Error("mock should not be watching /f.bin after Unwatch")
	}
}

func TestDebouncedWatcher_EventCoalescing(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 100*time.Millisecond)
	defer dw.Close()

	path := "/f.bin"
	now := time.Now()

	mock.events <- Event{Path: path, Op: OpRemove, Timestamp: now}
	time.Sleep(20 * time.Millisecond)
	mock.events <- Event{Path: path, Op: OpCreate, Timestamp: now.Add(20 * time.Millisecond)}
	time.Sleep(20 * time.Millisecond)
	mock.events <- Event{Path: path, Op: OpWrite, Timestamp: now.Add(40 * time.Millisecond)}

	select {
	case got := <-dw.Events():
		for _, op := range []Op{OpRemove, OpCreate, OpWrite} {
			if !got.Op.Has(op) {
				t.Errorf("coalesced event missing %v", op)
			}
		}
		if got.Removed() {
			t.Error("recreated file reported as removed")
		}
	case <-time.After(300 * time.Millisecond):
		t.Fatal("timeout waiting for coalesced event")
	}

	select {
	case extra := <-dw.Events():
		t.Errorf("unexpected extra event: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncedWatcher_ErrorForwarding(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	mock.errors <- ErrWatcherClosed

	select {
	case err := <-dw.Errors():
		if err != ErrWatcherClosed {
			t.Errorf("error = %v, want %v", err, ErrWatcherClosed)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for error")
	}
}

func TestDebouncedWatcher_Suppress(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 50*time.Millisecond)
	defer dw.Close()

	dw.Suppress("/f.bin")
	mock.events <- Event{Path: "/f.bin", Op: OpWrite, Timestamp: time.Now()}
	mock.events <- Event{Path: "/g.bin", Op: OpWrite, Timestamp: time.Now()}

	select {
	case got := <-dw.Events():
		if got.Path != "/g.bin" {
			t.Errorf("Path = %q, want /g.bin", got.Path)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for unsuppressed event")
	}

	select {
	case extra := <-dw.Events():
		t.Errorf("suppressed event delivered: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}

	// The window has passed.
	mock.events <- Event{Path: "/f.bin", Op: OpWrite, Timestamp: time.Now()}
	select {
	case got := <-dw.Events():
		if got.Path != "/f.bin" {
			t.Errorf("Path = %q, want /f.bin", got.Path)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("event after suppression window was dropped")
	}
}

func TestDebouncedWatcher_SuppressDropsPending(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 500*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/f.bin", Op: OpWrite, Timestamp: time.Now()}
	time.Sleep(50 * time.Millisecond)
	if n := dw.PendingCount(); n != 1 {
		t.Fatalf("PendingCount = %d, want 1", n)
	}

	dw.Suppress("/f.bin")
	if n := dw.PendingCount(); n != 0 {
		t.Errorf("PendingCount after Suppress = %d, want 0", n)
	}
}

func TestDebouncedWatcher_Flush(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, 500*time.Millisecond)
	defer dw.Close()

	mock.events <- Event{Path: "/a.bin", Op: OpWrite, Timestamp: time.Now()}
	mock.events <- Event{Path: "/b.bin", Op: OpWrite, Timestamp: time.Now()}
	time.Sleep(50 * time.Millisecond)

	if n := dw.PendingCount(); n != 2 {
		t.Errorf("PendingCount = %d, want 2", n)
	}

	dw.Flush()

	received := 0
	timeout := time.After(100 * time.Millisecond)
	for received < 2 {
		select {
		case <-dw.Events():
			received++
		case <-timeout:
			t.Fatalf("timeout, received only %d events", received)
		}
	}
	if n := dw.PendingCount(); n != 0 {
		t.Errorf("PendingCount after Flush = %d, want 0", n)
	}
}

func TestDebouncedWatcher_CloseWithPending(t *testing.T) {
	mock := newMockWatcher()
	dw := NewDebouncedWatcher(mock, time.Second)

	mock.events <- Event{Path: "/f.bin", Op: OpWrite, Timestamp: time.Now()}
	time.Sleep(50 * time.Millisecond)

	if err := dw.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := dw.Close(); err != nil {
		t.Errorf("Close again error = %v", err)
	}
	if _, ok := <-dw.Events(); ok {
		t.Error("Events channel should be closed")
	}
}
