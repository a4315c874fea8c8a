// Package marshal converts caller-supplied password/salt arguments into
// host-visible byte buffers.
//
// An argument is either a pre-existing byte buffer (passed through without
// copying) or text interpreted under a named encoding. Text is decoded into
// a single freshly allocated byte sequence; the bytes actually written must
// equal the length the decoder predicted, otherwise the argument was
// probably encoded differently to what the configuration specified and the
// call fails.
//
// Ownership of decoded storage moves to the host-visible wrapper created by
// the supplied BufferFactory. The marshaling call never releases storage it
// has handed off; release happens exactly once, later, when the host
// reclaims the wrapper.
package marshal
