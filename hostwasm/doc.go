// Package hostwasm backs host-visible buffers with WASM guest linear memory.
//
// When the embedding host is a WASM guest, marshaled passwords, salts and
// derived keys must live in the guest's linear memory. The Factory copies
// wrapped bytes into a guest allocation obtained from the module's exported
// allocator; the buffer's release path frees that allocation exactly once
// and then runs the caller's release hook.
//
//	f, err := hostwasm.FromModule(ctx, mod, "malloc", "free")
//	buf, err := f.Wrap(key, nil)
//	// guest reads buf at buf.(*hostwasm.Buffer).Ptr()
//	buf.(*hostwasm.Buffer).Release()
//
// The Memory and Allocator interfaces are narrow on purpose: tests and
// non-wazero embedders can supply their own implementations via New.
package hostwasm
