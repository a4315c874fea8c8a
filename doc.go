// Package scryptbridge provides the boundary layer between a managed host
// runtime and a native scrypt key-derivation routine.
//
// The library does three things: validates scrypt cost parameters before any
// expensive computation is attempted, marshals caller-supplied passwords and
// salts (text or raw bytes, in a chosen text encoding) into byte buffers
// whose ownership is safely handed across the runtime boundary, and
// translates native numeric status codes into structured, inspectable error
// values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	scryptbridge/        Root package with core Buffer and BufferFactory interfaces
//	├── params/          Cost-parameter validation (N, r, p)
//	├── marshal/         Text/buffer argument marshaling and ownership handoff
//	├── errors/          Error categories and native status-code translation
//	├── engine/          Native scrypt routine adapter
//	├── binding/         Call-site sequencing: validate, marshal, invoke, translate
//	├── hostlocal/       In-process host buffer backend (handle table)
//	└── hostwasm/        WASM guest-memory host buffer backend (wazero)
//
// # Quick Start
//
// Derive a key with the in-process host backend:
//
//	table := hostlocal.NewTable()
//	defer table.Close()
//
//	b, bindErr := binding.New(&engine.Scrypt{}, table.Factory())
//	if bindErr != nil {
//	    log.Fatal(bindErr)
//	}
//
//	key, kdfErr := b.KDF(
//	    map[string]any{"N": 16384, "r": 8, "p": 1},
//	    "hunter2",
//	    salt,
//	)
//	if kdfErr != nil {
//	    log.Fatal(kdfErr) // {err_code, err_message[, scrypt_err_code, scrypt_err_message]}
//	}
//	fmt.Printf("%x\n", key.Bytes())
//
// # Error Model
//
// Failures never panic. Validation and marshaling errors short-circuit
// before the native routine is invoked; native failures are translated into
// the same structured shape via a fixed status-code table. Absence of error
// is an explicit nil sentinel, not an exception.
//
// # Buffer Ownership
//
// Storage allocated while decoding a text argument is owned by exactly one
// host-visible wrapper, and its release hook fires exactly once when the
// host reclaims the wrapper. The marshaling call itself never releases
// storage it has handed off.
package scryptbridge
