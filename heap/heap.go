/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package heap binds one bump allocator over one fixed-size static region
// as a process-wide memory source. The binding is established before any
// allocation can happen and lasts for the process lifetime; there is no
// reset, so heap memory is handed out exactly once.
//
// The raw surface is Alloc/Free. New, MakeSlice and NewString are the
// typed facilities built on top of it; they treat exhaustion as fatal and
// panic, while Alloc itself only reports it with a nil return.
package heap

import (
	"sync"
	"unsafe"

	"github.com/cloudwego/bumpx/bump"
)

// Size is the fixed size of the process heap region, set at build time.
const Size = 1 << 20 // 1MB

// region is the backing store: static lifetime, never resized, never moved.
var region [Size]byte

var (
	// mu guards the cursor. The core allocator is unsynchronized and the
	// package functions are reachable from any goroutine.
	mu        sync.Mutex
	allocator = bump.New(region[:])
)

// Alloc reserves size bytes aligned to align from the process heap and
// returns the block's base pointer, or nil if the heap cannot satisfy the
// request. The heap is unchanged on failure.
//
// align MUST be a power of two.
func Alloc(size, align uintptr) unsafe.Pointer {
	mu.Lock()
	p := allocator.Alloc(size, align)
	mu.Unlock()
	return p
}

// Free releases nothing: the heap never reclaims individual blocks. It
// exists so consumers can pair every Alloc with a Free.
func Free(ptr unsafe.Pointer, size uintptr) {}

// Used returns the number of heap bytes consumed so far, including
// alignment padding.
func Used() int {
	mu.Lock()
	n := allocator.Used()
	mu.Unlock()
	return n
}

// Remaining returns the number of unused heap bytes.
func Remaining() int {
	mu.Lock()
	n := allocator.Remaining()
	mu.Unlock()
	return n
}

// New returns a pointer to a zeroed T on the process heap.
// Panics when the heap is exhausted.
//
// The heap region is not scanned by the garbage collector, so T must not
// hold pointers to garbage-collected memory. Pointers to other heap
// blocks are fine: the region is static and never freed.
func New[T any]() *T {
	var zero T
	p := Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if p == nil {
		panic("heap: out of memory")
	}
	v := (*T)(p)
	*v = zero
	return v
}

// MakeSlice returns a slice of n zeroed Ts on the process heap. The slice
// has capacity n and must not be appended past it.
// Panics when the heap is exhausted.
// T must not hold pointers to garbage-collected memory; see New.
func MakeSlice[T any](n int) []T {
	var zero T
	p := Alloc(unsafe.Sizeof(zero)*uintptr(n), unsafe.Alignof(zero))
	if p == nil {
		panic("heap: out of memory")
	}
	s := unsafe.Slice((*T)(p), n)
	for i := range s {
		s[i] = zero
	}
	return s
}

// NewString copies s into the process heap and returns the owned copy.
// Panics when the heap is exhausted.
func NewString(s string) string {
	if len(s) == 0 {
		return ""
	}
	p := Alloc(uintptr(len(s)), 1)
	if p == nil {
		panic("heap: out of memory")
	}
	b := unsafe.Slice((*byte)(p), len(s))
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}
