package hostwasm

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"

	scryptbridge "github.com/fanatid/scrypt-bridge"
)

// Memory is guest linear memory as this package needs it.
type Memory interface {
	Read(offset, length uint32) ([]byte, bool)
	Write(offset uint32, data []byte) bool
}

// Allocator allocates and frees guest memory.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr, size uint32)
}

// Factory implements scryptbridge.BufferFactory over guest memory.
type Factory struct {
	mem   Memory
	alloc Allocator
}

// New builds a factory from explicit memory and allocator implementations.
func New(mem Memory, alloc Allocator) *Factory {
	return &Factory{mem: mem, alloc: alloc}
}

// FromModule adapts a wazero module into a Factory. The module must export
// its linear memory plus malloc/free-style functions under the given names.
func FromModule(ctx context.Context, mod api.Module, allocName, freeName string) (*Factory, error) {
	mem := mod.Memory()
	if mem == nil {
		return nil, fmt.Errorf("module %q exports no memory", mod.Name())
	}

	allocFn := mod.ExportedFunction(allocName)
	if allocFn == nil {
		return nil, fmt.Errorf("module %q exports no function %q", mod.Name(), allocName)
	}
	freeFn := mod.ExportedFunction(freeName)
	if freeFn == nil {
		return nil, fmt.Errorf("module %q exports no function %q", mod.Name(), freeName)
	}

	return New(wazeroMemory{mem}, &wazeroAllocator{ctx: ctx, alloc: allocFn, free: freeFn}), nil
}

// Wrap copies data into a fresh guest allocation and returns a buffer whose
// release path frees the allocation exactly once. If the copy fails the
// partially-built allocation is freed here, before any wrapper exists.
func (f *Factory) Wrap(data []byte, release func()) (scryptbridge.Buffer, error) {
	b := &Buffer{factory: f, size: uint32(len(data)), release: release}
	if len(data) == 0 {
		return b, nil
	}

	ptr, err := f.alloc.Alloc(b.size)
	if err != nil {
		return nil, fmt.Errorf("guest alloc %d bytes: %w", b.size, err)
	}

	if !f.mem.Write(ptr, data) {
		f.alloc.Free(ptr, b.size)
		return nil, fmt.Errorf("guest write at %#x out of range", ptr)
	}

	b.ptr = ptr
	return b, nil
}

// Buffer is a host-visible buffer living in guest linear memory.
type Buffer struct {
	factory *Factory
	release func()
	ptr     uint32
	size    uint32
	once    sync.Once
}

// Bytes reads the buffer out of guest memory. Nil once the guest memory
// range is no longer readable or the buffer has been released.
func (b *Buffer) Bytes() []byte {
	if b.size == 0 {
		return []byte{}
	}
	data, ok := b.factory.mem.Read(b.ptr, b.size)
	if !ok {
		return nil
	}
	return data
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return int(b.size) }

// Ptr returns the guest memory offset of the buffer.
func (b *Buffer) Ptr() uint32 { return b.ptr }

// Release frees the guest allocation and runs the registered release hook.
// Guaranteed once; later calls are no-ops.
func (b *Buffer) Release() {
	b.once.Do(func() {
		if b.size > 0 {
			b.factory.alloc.Free(b.ptr, b.size)
		}
		if b.release != nil {
			b.release()
		}
	})
}

// wazeroMemory adapts api.Memory.
type wazeroMemory struct {
	mem api.Memory
}

func (m wazeroMemory) Read(offset, length uint32) ([]byte, bool) {
	return m.mem.Read(offset, length)
}

func (m wazeroMemory) Write(offset uint32, data []byte) bool {
	return m.mem.Write(offset, data)
}

// wazeroAllocator adapts exported malloc/free-style guest functions.
type wazeroAllocator struct {
	ctx   context.Context
	alloc api.Function
	free  api.Function
}

func (a *wazeroAllocator) Alloc(size uint32) (uint32, error) {
	results, err := a.alloc.Call(a.ctx, uint64(size))
	if err != nil {
		return 0, err
	}
	if len(results) == 0 || results[0] == 0 {
		return 0, fmt.Errorf("guest allocator returned no memory for %d bytes", size)
	}
	return uint32(results[0]), nil
}

func (a *wazeroAllocator) Free(ptr, size uint32) {
	// Guest free signatures vary; the common C ABI takes just the pointer.
	_, _ = a.free.Call(a.ctx, uint64(ptr))
}
