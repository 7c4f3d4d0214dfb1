// Copyright 2026 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strstore

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/cloudwego/bumpx/bump"
)

const (
	strlenSize = 4 // size of uint32, maximum 4GB for each string
)

// StrStore packs strings into a single bump-arena block with less GC
// overhead. The strings are never deleted; offsets stay valid for the
// arena's lifetime.
type StrStore struct {
	buf []byte
}

// Load packs ss into one block of the given arena and returns the store
// and per-string offsets for the following reads. It returns an error
// when the arena cannot hold the packed strings.
// It panics if any string in the slice is longer than math.MaxUint32.
func Load(a *bump.Allocator, ss []string) (*StrStore, []int, error) {
	n := len(ss)
	totalLen := strlenSize * n
	for i := 0; i < n; i++ {
		if len(ss[i]) > math.MaxUint32 {
			panic("string too long")
		}
		totalLen += len(ss[i])
	}

	s := &StrStore{}
	idxes := make([]int, n)
	if totalLen == 0 {
		return s, idxes, nil
	}
	s.buf = a.AllocBytes(totalLen)
	if s.buf == nil {
		return nil, nil, fmt.Errorf("strstore: arena cannot hold %d bytes", totalLen)
	}

	offset := 0
	for i := 0; i < n; i++ {
		idxes[i] = offset
		*(*uint32)(unsafe.Pointer(&s.buf[offset])) = uint32(len(ss[i]))
		copy(s.buf[offset+strlenSize:offset+strlenSize+len(ss[i])], ss[i])
		offset += strlenSize + len(ss[i])
	}
	return s, idxes, nil
}

// Get gets the string at the given offset. The returned string aliases
// the arena block; no copy is made.
// It returns an empty string if no string can be found at idx.
func (s *StrStore) Get(idx int) string {
	if idx < 0 || idx+strlenSize > len(s.buf) {
		return ""
	}
	length := *(*uint32)(unsafe.Pointer(&s.buf[idx]))
	b := s.buf[idx+strlenSize : idx+strlenSize+int(length)]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Len returns the total length of the packed bytes.
func (s *StrStore) Len() int {
	return len(s.buf)
}
