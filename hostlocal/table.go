package hostlocal

import (
	"errors"
	"sync"

	scryptbridge "github.com/fanatid/scrypt-bridge"
)

// ErrClosed is returned when wrapping against a closed table.
var ErrClosed = errors.New("host buffer table closed")

// Event types for buffer lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventReclaimed
)

// Event describes a buffer lifecycle transition.
type Event struct {
	Handle Handle
	Type   EventType
	Len    int
}

// Observer receives notifications about buffer lifecycle events.
type Observer interface {
	OnBufferEvent(Event)
}

// Table maps handles to live buffers and drives their reclamation.
type Table struct {
	entries   []*Buffer
	freeList  []Handle
	mu        sync.Mutex
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]*Buffer, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

// Factory returns the table's BufferFactory. Buffers it wraps stay live
// until the table reclaims them.
func (t *Table) Factory() scryptbridge.BufferFactory {
	return factory{t}
}

type factory struct {
	t *Table
}

// Wrap registers data under a fresh handle. The release hook fires exactly
// once, when the table reclaims the buffer - never from Wrap itself.
func (f factory) Wrap(data []byte, release func()) (scryptbridge.Buffer, error) {
	return f.t.insert(data, release)
}

func (t *Table) insert(data []byte, release func()) (*Buffer, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrClosed
	}

	b := &Buffer{data: data, release: release}
	if n := len(t.freeList); n > 0 {
		b.handle = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[b.handle-1] = b
	} else {
		t.entries = append(t.entries, b)
		b.handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Handle: b.handle, Type: EventCreated, Len: b.Len()})
	return b, nil
}

// Get retrieves a live buffer by handle.
func (t *Table) Get(handle Handle) (scryptbridge.Buffer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b := t.lookup(handle)
	if b == nil {
		return nil, false
	}
	return b, true
}

// Remove reclaims a buffer: its release hook fires (once) and the handle
// becomes available for reuse. Returns false for unknown handles.
func (t *Table) Remove(handle Handle) bool {
	t.mu.Lock()
	b := t.lookup(handle)
	if b == nil {
		t.mu.Unlock()
		return false
	}
	t.entries[handle-1] = nil
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	n := b.Len()
	b.reclaim()

	t.notify(Event{Handle: handle, Type: EventReclaimed, Len: n})
	return true
}

// Len returns the number of live buffers.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, b := range t.entries {
		if b != nil {
			count++
		}
	}
	return count
}

// Close reclaims every live buffer and rejects further wrapping.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	live := make([]*Buffer, 0, len(t.entries))
	for i, b := range t.entries {
		if b != nil {
			live = append(live, b)
			t.entries[i] = nil
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	for _, b := range live {
		n := b.Len()
		b.reclaim()
		t.notify(Event{Handle: b.handle, Type: EventReclaimed, Len: n})
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// lookup requires t.mu held.
func (t *Table) lookup(handle Handle) *Buffer {
	if handle == 0 || int(handle) > len(t.entries) {
		return nil
	}
	return t.entries[handle-1]
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnBufferEvent(e)
	}
}
