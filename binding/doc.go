// Package binding sequences a key-derivation call across the boundary:
// validate the cost-parameter object, marshal the byte-bearing arguments,
// invoke the native routine, and translate any failure into a structured
// error value.
//
// Validation and marshaling failures short-circuit before the native routine
// runs; no partial computation is attempted. Native failures are translated,
// never retried. Every failure surfaces as a *errors.Value with a stable
// code; nil means success.
package binding
