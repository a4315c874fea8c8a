package marshal

import (
	scryptbridge "github.com/fanatid/scrypt-bridge"
)

// Kind categorizes a marshaling failure.
type Kind string

const (
	KindTypeMismatch     Kind = "type_mismatch"
	KindEncodingMismatch Kind = "encoding_mismatch"
	KindEmptyArgument    Kind = "empty_argument"
)

// ArgumentError reports a byte-bearing argument that could not be marshaled.
type ArgumentError struct {
	Name   string
	Kind   Kind
	detail string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return e.Name + " " + e.detail
}

// Is reports whether target matches this error. A target with an empty Name
// matches any argument of the same kind.
func (e *ArgumentError) Is(target error) bool {
	t, ok := target.(*ArgumentError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Name == "" || t.Name == e.Name)
}

func typeMismatch(name string) *ArgumentError {
	return &ArgumentError{Name: name, Kind: KindTypeMismatch, detail: "must be a buffer or string"}
}

func mustBeBuffer(name string) *ArgumentError {
	return &ArgumentError{Name: name, Kind: KindEncodingMismatch, detail: "must be a buffer as specified by config"}
}

func badEncoding(name string) *ArgumentError {
	return &ArgumentError{Name: name, Kind: KindEncodingMismatch, detail: "is probably encoded differently to what was specified"}
}

func empty(name string) *ArgumentError {
	return &ArgumentError{Name: name, Kind: KindEmptyArgument, detail: "cannot be empty"}
}

// Produce converts an argument into a host-visible buffer.
//
// A pre-existing buffer passes through unchanged with no copy. Text is
// decoded under enc into a single fresh allocation whose ownership moves to
// the wrapper built by factory; the wrapper's release hook, driven by the
// host's reclamation, is the only thing that ever frees that storage. When
// enc is Raw, text is rejected rather than silently accepted.
//
// rejectEmpty fails the call if the resulting buffer would be zero-length.
func Produce(argument any, name string, enc Encoding, rejectEmpty bool, factory scryptbridge.BufferFactory) (scryptbridge.Buffer, error) {
	switch arg := argument.(type) {
	case scryptbridge.Buffer:
		if rejectEmpty && arg.Len() == 0 {
			return nil, empty(name)
		}
		return arg, nil

	case []byte:
		// Raw bytes count as an already-constructed buffer: wrap without
		// copying, no release obligation beyond the caller's.
		if rejectEmpty && len(arg) == 0 {
			return nil, empty(name)
		}
		buf, err := factory.Wrap(arg, nil)
		if err != nil {
			return nil, &ArgumentError{Name: name, Kind: KindTypeMismatch, detail: "could not be wrapped: " + err.Error()}
		}
		return buf, nil

	case string:
		if enc == Raw {
			return nil, mustBeBuffer(name)
		}
		return produceFromText(arg, name, enc, rejectEmpty, factory)

	default:
		return nil, typeMismatch(name)
	}
}

func produceFromText(text, name string, enc Encoding, rejectEmpty bool, factory scryptbridge.BufferFactory) (scryptbridge.Buffer, error) {
	predicted, err := DecodedLen(text, enc)
	if err != nil {
		return nil, badEncoding(name)
	}

	// Decided before allocation so no wrapped-then-failed path exists.
	if rejectEmpty && predicted == 0 {
		return nil, empty(name)
	}

	// The single heap allocation this call is allowed.
	data := make([]byte, predicted)

	written, err := DecodeInto(data, text, enc)
	if err != nil || written != predicted {
		// Storage never escaped this call; no second owner exists.
		return nil, badEncoding(name)
	}

	// Ownership moves to the wrapper here. Its release hook fires exactly
	// once when the host reclaims it; never from this call.
	buf, err := factory.Wrap(data, nil)
	if err != nil {
		return nil, &ArgumentError{Name: name, Kind: KindTypeMismatch, detail: "could not be wrapped: " + err.Error()}
	}

	return buf, nil
}
