package scryptbridge

// Buffer is an opaque host-visible byte buffer.
//
// A Buffer is produced either by the caller (pre-existing raw bytes handed
// across the boundary) or by a BufferFactory wrapping freshly decoded
// storage. Bytes exposes the underlying storage without copying; callers
// must not retain the slice past the host's reclamation of the buffer.
type Buffer interface {
	Bytes() []byte
	Len() int
}

// BufferFactory allocates host-visible buffers from raw bytes.
//
// Wrap takes exclusive ownership of data. The release hook, if non-nil, runs
// exactly once when the host reclaims the buffer - never eagerly, never more
// than once, and never by the code that called Wrap. Implementations back the
// buffer with whatever storage the host runtime requires (in-process handle
// tables, guest linear memory) and guarantee the exactly-once discipline
// regardless of how many reclamation paths race.
type BufferFactory interface {
	Wrap(data []byte, release func()) (Buffer, error)
}
