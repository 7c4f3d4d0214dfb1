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

package list

import (
	"unsafe"

	"github.com/cloudwego/bumpx/bump"
)

// List is a singly linked list whose nodes live in a bump arena.
// Nodes are never freed individually; the list is abandoned together with
// its arena. Not goroutine-safe.
//
// The arena is not scanned by the garbage collector, so type V must NOT
// hold pointers to garbage-collected memory.
type List[V any] struct {
	arena *bump.Allocator
	head  *Node[V]
	tail  *Node[V]
	n     int
}

// Node is an element of a List.
type Node[V any] struct {
	value V
	next  *Node[V]
}

// New creates an empty list allocating from a.
func New[V any](a *bump.Allocator) *List[V] {
	return &List[V]{arena: a}
}

// Push appends v to the list. It reports false when the arena cannot hold
// another node; the list is unchanged in that case.
func (l *List[V]) Push(v V) bool {
	var proto Node[V]
	p := l.arena.Alloc(unsafe.Sizeof(proto), unsafe.Alignof(proto))
	if p == nil {
		return false
	}
	nd := (*Node[V])(p)
	*nd = Node[V]{value: v}
	if l.tail == nil {
		l.head = nd
	} else {
		l.tail.next = nd
	}
	l.tail = nd
	l.n++
	return true
}

// Head returns the first node, or nil if the list is empty.
func (l *List[V]) Head() *Node[V] {
	return l.head
}

// Len returns the number of nodes.
func (l *List[V]) Len() int {
	return l.n
}

// Value returns the node's value.
func (n *Node[V]) Value() V {
	return n.value
}

// Next returns the following node, or nil at the end of the list.
func (n *Node[V]) Next() *Node[V] {
	return n.next
}
