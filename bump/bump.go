// Package bump implements a bump-pointer (arena) allocator over a
// fixed-size backing region. Allocation advances a single cursor and is
// O(1); individual blocks are never reclaimed. Once the region is
// exhausted it stays exhausted for the allocator's lifetime.
//
// The allocator is intended for bounded-lifetime or throwaway-heap
// workloads where the whole region is abandoned at once.
package bump

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// PtrAlign is the alignment AllocBytes uses for its blocks.
const PtrAlign = unsafe.Sizeof(uintptr(0))

// Allocator hands out monotonically increasing offsets from a fixed
// backing region. Not goroutine-safe: callers needing concurrent access
// must provide external mutual exclusion (see package heap).
type Allocator struct {
	// arena is the backing region. It keeps the memory reachable for as
	// long as the allocator is.
	arena []byte

	// heapStart is a cached pointer to the start of the arena.
	heapStart unsafe.Pointer

	// heapSize is len(arena), fixed at construction.
	heapSize uintptr

	// next is the offset of the first unused byte. It only ever grows.
	next uintptr
}

// New binds a new allocator to the given backing region. The binding is
// fixed for the allocator's lifetime. The region must not be shared with
// any other memory source while the allocator is live; handing the same
// region to two allocators aliases live blocks.
//
// An empty region yields an allocator that is born exhausted.
func New(arena []byte) *Allocator {
	a := &Allocator{
		arena:    arena,
		heapSize: uintptr(len(arena)),
	}
	if len(arena) > 0 {
		a.heapStart = unsafe.Pointer(&arena[0])
	}
	return a
}

// NewSize is a convenience constructor that allocates a backing region of
// the given size. The region is not zeroed: blocks returned by Alloc may
// contain garbage, which the arena contract permits.
func NewSize(size int) *Allocator {
	return New(dirtmake.Bytes(size, size))
}

// Alloc reserves size bytes at the next cursor position aligned to align
// and returns the block's base pointer, or nil if the block does not fit
// in the remaining region. The cursor is unchanged on failure.
//
// align MUST be a power of two; this precondition is not checked.
// size == 0 succeeds as long as the aligned cursor is still in bounds,
// reserving a zero-length block at that position.
func (a *Allocator) Alloc(size, align uintptr) unsafe.Pointer {
	// Alignment is computed on absolute addresses: the region's base is
	// not necessarily a multiple of align.
	base := uintptr(a.heapStart)
	start := AlignUp(base+a.next, align) - base
	// Checked in offset space so a huge size cannot wrap past heapSize.
	if start > a.heapSize || size > a.heapSize-start {
		return nil
	}
	a.next = start + size
	return unsafe.Add(a.heapStart, start)
}

// AllocBytes reserves a pointer-aligned block of n bytes and returns it as
// a []byte, or nil if the region cannot satisfy the request or n <= 0.
// The slice is only valid while the allocator is reachable.
func (a *Allocator) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	p := a.Alloc(uintptr(n), PtrAlign)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Free releases nothing. The arena never reclaims individual blocks, so
// Free neither moves the cursor nor validates its arguments. It exists so
// consumers can pair every Alloc with a Free.
func (a *Allocator) Free(ptr unsafe.Pointer, size uintptr) {}

// Size returns the fixed size of the backing region.
func (a *Allocator) Size() int {
	return int(a.heapSize)
}

// Used returns the number of bytes consumed so far, including bytes lost
// to alignment padding.
func (a *Allocator) Used() int {
	return int(a.next)
}

// Remaining returns the number of unused bytes left in the region.
func (a *Allocator) Remaining() int {
	return int(a.heapSize - a.next)
}
