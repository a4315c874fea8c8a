// Package hostlocal provides an in-process host buffer backend.
//
// Buffers produced by marshaling are opaque to the embedding host; this
// backend models the host's reclamation with a handle table:
//
//	table := hostlocal.NewTable()
//	defer table.Close()
//
//	buf, err := table.Factory().Wrap(data, release)
//	// ... hand buf across the boundary ...
//
//	// The host reclaims the wrapper; the release hook fires here, once.
//	table.Remove(buf.(*hostlocal.Buffer).Handle())
//
// Handle 0 is reserved and always invalid. Release hooks run exactly once
// per buffer, no matter how Remove and Close interleave. Observers can
// subscribe to creation and reclamation events.
package hostlocal
