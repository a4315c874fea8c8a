package hostwasm

import (
	"errors"
	"testing"
)

// fakeMemory is a linear byte array with bounds checking.
type fakeMemory struct {
	data      []byte
	failWrite bool
}

func (m *fakeMemory) Read(offset, length uint32) ([]byte, bool) {
	if int(offset)+int(length) > len(m.data) {
		return nil, false
	}
	return m.data[offset : offset+length], true
}

func (m *fakeMemory) Write(offset uint32, data []byte) bool {
	if m.failWrite || int(offset)+len(data) > len(m.data) {
		return false
	}
	copy(m.data[offset:], data)
	return true
}

// fakeAllocator is a bump allocator recording alloc/free pairs.
type fakeAllocator struct {
	next    uint32
	allocs  int
	frees   int
	freed   []uint32
	failing bool
}

func (a *fakeAllocator) Alloc(size uint32) (uint32, error) {
	if a.failing {
		return 0, errors.New("out of guest memory")
	}
	if a.next == 0 {
		a.next = 8
	}
	ptr := a.next
	a.next += size
	a.allocs++
	return ptr, nil
}

func (a *fakeAllocator) Free(ptr, size uint32) {
	a.frees++
	a.freed = append(a.freed, ptr)
}

func TestFactory_Wrap(t *testing.T) {
	mem := &fakeMemory{data: make([]byte, 1024)}
	alloc := &fakeAllocator{}
	f := New(mem, alloc)

	buf, err := f.Wrap([]byte("hunter2"), nil)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if buf.Len() != 7 {
		t.Errorf("Len() = %d, want 7", buf.Len())
	}
	if string(buf.Bytes()) != "hunter2" {
		t.Errorf("Bytes() = %q, want %q", buf.Bytes(), "hunter2")
	}

	gb := buf.(*Buffer)
	if gb.Ptr() == 0 {
		t.Error("Ptr() = 0, want guest allocation")
	}
	if got, ok := mem.Read(gb.Ptr(), 7); !ok || string(got) != "hunter2" {
		t.Errorf("guest memory at %#x = %q, %v", gb.Ptr(), got, ok)
	}
	if alloc.allocs != 1 {
		t.Errorf("allocs = %d, want 1", alloc.allocs)
	}
}

func TestBuffer_ReleaseExactlyOnce(t *testing.T) {
	mem := &fakeMemory{data: make([]byte, 1024)}
	alloc := &fakeAllocator{}
	f := New(mem, alloc)

	hooked := 0
	buf, err := f.Wrap([]byte("key material"), func() { hooked++ })
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	gb := buf.(*Buffer)

	gb.Release()
	gb.Release()
	gb.Release()

	if alloc.frees != 1 {
		t.Errorf("guest frees = %d, want 1", alloc.frees)
	}
	if len(alloc.freed) != 1 || alloc.freed[0] != gb.Ptr() {
		t.Errorf("freed %v, want [%d]", alloc.freed, gb.Ptr())
	}
	if hooked != 1 {
		t.Errorf("release hook fired %d times, want 1", hooked)
	}
}

func TestFactory_Wrap_WriteFailureFreesAllocation(t *testing.T) {
	mem := &fakeMemory{data: make([]byte, 1024), failWrite: true}
	alloc := &fakeAllocator{}
	f := New(mem, alloc)

	if _, err := f.Wrap([]byte("data"), nil); err == nil {
		t.Fatal("Wrap() succeeded with unwritable memory")
	}
	if alloc.allocs != 1 || alloc.frees != 1 {
		t.Errorf("allocs/frees = %d/%d, want 1/1 (no leak on the error path)", alloc.allocs, alloc.frees)
	}
}

func TestFactory_Wrap_AllocFailure(t *testing.T) {
	f := New(&fakeMemory{data: make([]byte, 8)}, &fakeAllocator{failing: true})

	if _, err := f.Wrap([]byte("data"), nil); err == nil {
		t.Fatal("Wrap() succeeded with failing allocator")
	}
}

func TestFactory_Wrap_Empty(t *testing.T) {
	alloc := &fakeAllocator{}
	f := New(&fakeMemory{data: make([]byte, 8)}, alloc)

	buf, err := f.Wrap(nil, nil)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0", buf.Len())
	}
	if alloc.allocs != 0 {
		t.Errorf("allocs = %d, want 0 for empty buffer", alloc.allocs)
	}

	buf.(*Buffer).Release()
	if alloc.frees != 0 {
		t.Errorf("frees = %d, want 0 for empty buffer", alloc.frees)
	}
}
