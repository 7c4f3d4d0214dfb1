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

package vec

import (
	"unsafe"

	"github.com/cloudwego/bumpx/bump"
)

// minCap is the capacity of the first allocated block.
const minCap = 4

// Vec is a growable slice backed by a bump arena. Growing allocates a new
// block and copies; the old block is abandoned, which is the arena's
// documented waste profile. Not goroutine-safe.
//
// The arena is not scanned by the garbage collector, so type V must NOT
// hold pointers to garbage-collected memory.
type Vec[V any] struct {
	arena *bump.Allocator
	items []V // len is the element count, cap the current block size
}

// New creates an empty vector allocating from a.
func New[V any](a *bump.Allocator) *Vec[V] {
	return &Vec[V]{arena: a}
}

// Append adds v at the end. It reports false when the arena cannot hold
// the grown block; the vector is unchanged in that case.
func (v *Vec[V]) Append(x V) bool {
	if len(v.items) == cap(v.items) && !v.grow() {
		return false
	}
	v.items = append(v.items, x)
	return true
}

// grow moves the elements into a block twice the current capacity.
func (v *Vec[V]) grow() bool {
	newCap := 2 * cap(v.items)
	if newCap < minCap {
		newCap = minCap
	}
	var proto V
	p := v.arena.Alloc(unsafe.Sizeof(proto)*uintptr(newCap), unsafe.Alignof(proto))
	if p == nil {
		return false
	}
	items := unsafe.Slice((*V)(p), newCap)[:len(v.items)]
	copy(items, v.items)
	v.items = items
	return true
}

// Get returns the ith element. It reports false when i is out of range.
func (v *Vec[V]) Get(i int) (V, bool) {
	if i < 0 || i >= len(v.items) {
		var zero V
		return zero, false
	}
	return v.items[i], true
}

// Set overwrites the ith element. It reports false when i is out of range.
func (v *Vec[V]) Set(i int, x V) bool {
	if i < 0 || i >= len(v.items) {
		return false
	}
	v.items[i] = x
	return true
}

// Len returns the number of elements.
func (v *Vec[V]) Len() int {
	return len(v.items)
}

// Cap returns the capacity of the current block.
func (v *Vec[V]) Cap() int {
	return cap(v.items)
}

// Slice returns the elements as a plain slice view into the arena. The
// view is invalidated by the next growing Append.
func (v *Vec[V]) Slice() []V {
	return v.items
}
