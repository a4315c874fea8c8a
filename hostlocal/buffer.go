package hostlocal

import (
	"sync"
)

// Handle is an opaque reference to a buffer in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Buffer is a host-visible byte buffer backed by a table entry.
type Buffer struct {
	data    []byte
	release func()
	handle  Handle
	once    sync.Once
}

// Bytes exposes the underlying storage without copying. Nil after the host
// has reclaimed the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Handle returns the table handle the host reclaims the buffer by.
func (b *Buffer) Handle() Handle { return b.handle }

// reclaim discharges the release obligation. Guaranteed once regardless of
// how many reclamation paths race.
func (b *Buffer) reclaim() {
	b.once.Do(func() {
		if b.release != nil {
			b.release()
		}
		b.data = nil
	})
}
