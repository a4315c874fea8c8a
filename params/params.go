package params

import (
	"encoding/json"
	"strconv"
)

// Kind categorizes a validation failure.
type Kind string

const (
	KindMissingField Kind = "missing_field"
	KindWrongType    Kind = "wrong_type"
)

// ValidationError reports a malformed cost-parameter candidate.
type ValidationError struct {
	Field string
	Kind  Kind
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return e.Field + " value is not present"
	default:
		return e.Field + " must be a numeric value"
	}
}

// Is reports whether target matches this error. A target with an empty
// Field matches any field of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Field == "" || t.Field == e.Field)
}

// Params is the scrypt cost triple. Immutable once built; constructed fresh
// per call and discarded after the call completes.
type Params struct {
	N int
	R int
	P int
}

// fields in the order the original wire contract checks them
var fields = [3]string{"N", "r", "p"}

// Validate checks a candidate for shape and type correctness and copies its
// numeric values into a Params record. Presence of all three fields is
// checked before any type is, so a missing field always wins over a
// mistyped one. No range checking happens here.
func Validate(candidate map[string]any) (Params, error) {
	for _, name := range fields {
		if _, ok := candidate[name]; !ok {
			return Params{}, &ValidationError{Field: name, Kind: KindMissingField}
		}
	}

	var out [3]int
	for i, name := range fields {
		n, ok := toInt(candidate[name])
		if !ok {
			return Params{}, &ValidationError{Field: name, Kind: KindWrongType}
		}
		out[i] = n
	}

	return Params{N: out[0], R: out[1], P: out[2]}, nil
}

// toInt coerces any numeric representation the host may hand over. Floats
// truncate toward zero, matching a double-to-integer native handoff.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
