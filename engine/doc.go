// Package engine adapts the native scrypt key-derivation routine to the
// numeric status-code contract the binding layer consumes.
//
// The routine never returns a Go error: it reports a status code from the
// native code space (0 is success) which errors.MakeScrypt translates into a
// structured error value. Cost-parameter range checking happens here, not in
// the validator - excessive parameters surface as the memory/time status
// codes, preserving the original deferral.
package engine
