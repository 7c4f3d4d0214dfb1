package bump

import (
	"math/rand"
	"sort"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	arena := make([]byte, 1024)
	a := New(arena)
	assert.Equal(t, 1024, a.Size())
	assert.Equal(t, 0, a.Used())
	assert.Equal(t, 1024, a.Remaining())
	assert.Equal(t, unsafe.Pointer(&arena[0]), a.heapStart)
}

func TestNewEmpty(t *testing.T) {
	a := New(nil)
	assert.Equal(t, 0, a.Size())
	assert.Nil(t, a.Alloc(1, 1))
	assert.Nil(t, a.AllocBytes(1))
}

func TestNewSize(t *testing.T) {
	a := NewSize(4096)
	assert.Equal(t, 4096, a.Size())
	b := a.AllocBytes(100)
	require.NotNil(t, b)
	assert.Equal(t, 100, len(b))
}

// TestAllocSequence walks a 16-byte region through a fixed alloc sequence
// and checks the cursor after every step.
func TestAllocSequence(t *testing.T) {
	arena := make([]byte, 16)
	a := New(arena)
	base := uintptr(unsafe.Pointer(&arena[0]))

	// aligned cursor is already at base
	p1 := a.Alloc(3, 4)
	require.NotNil(t, p1)
	assert.Equal(t, base, uintptr(p1))
	assert.Equal(t, uintptr(3), a.next)

	// cursor 3 rounds up to 4
	p2 := a.Alloc(5, 4)
	require.NotNil(t, p2)
	assert.Equal(t, base+4, uintptr(p2))
	assert.Equal(t, uintptr(9), a.next)

	// 9+10 exceeds the region, cursor must not move
	p3 := a.Alloc(10, 1)
	assert.Nil(t, p3)
	assert.Equal(t, uintptr(9), a.next)

	// what still fits keeps succeeding
	p4 := a.Alloc(7, 1)
	require.NotNil(t, p4)
	assert.Equal(t, base+9, uintptr(p4))
	assert.Equal(t, uintptr(16), a.next)
	assert.Equal(t, 0, a.Remaining())
}

func TestAllocZeroSize(t *testing.T) {
	a := New(make([]byte, 64))
	a.Alloc(3, 1)

	// zero-size block at the aligned cursor, cursor advances to the
	// aligned position only
	p1 := a.Alloc(0, 8)
	require.NotNil(t, p1)
	assert.Equal(t, uintptr(8), a.next)

	// repeated zero-size allocs stay put
	p2 := a.Alloc(0, 8)
	assert.Equal(t, p1, p2)
	assert.Equal(t, uintptr(8), a.next)

	// zero-size succeeds even when the region is full
	a.Alloc(56, 1)
	assert.Equal(t, 0, a.Remaining())
	assert.NotNil(t, a.Alloc(0, 1))
}

func TestAllocHugeSize(t *testing.T) {
	a := New(make([]byte, 64))
	// must fail cleanly rather than wrap the bounds arithmetic
	assert.Nil(t, a.Alloc(^uintptr(0), 1))
	assert.Nil(t, a.Alloc(^uintptr(0)-7, 8))
	assert.Equal(t, 0, a.Used())
}

func TestAllocAlignment(t *testing.T) {
	a := New(make([]byte, 4096))
	for _, align := range []uintptr{1, 2, 4, 8, 16, 32, 64} {
		p := a.Alloc(5, align)
		require.NotNil(t, p, "align=%d", align)
		assert.Zero(t, uintptr(p)%align, "align=%d", align)
	}
}

// TestAllocProperties drives random requests through one allocator and
// checks that successful blocks are in bounds, monotonic and disjoint.
func TestAllocProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	arena := make([]byte, 64*1024)
	a := New(arena)
	base := uintptr(unsafe.Pointer(&arena[0]))
	end := base + uintptr(len(arena))

	aligns := []uintptr{1, 2, 4, 8, 16, 32}
	type block struct{ start, size uintptr }
	var blocks []block

	for i := 0; i < 10000; i++ {
		size := uintptr(rng.Intn(256))
		align := aligns[rng.Intn(len(aligns))]
		p := a.Alloc(size, align)
		if p == nil {
			continue
		}
		start := uintptr(p)
		assert.Zero(t, start%align)
		assert.GreaterOrEqual(t, start, base)
		assert.LessOrEqual(t, start+size, end)
		if size > 0 {
			blocks = append(blocks, block{start, size})
		}
	}
	require.NotEmpty(t, blocks)

	// bump order is address order, so sorted blocks must not intersect
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })
	for i := 1; i < len(blocks); i++ {
		prev, cur := blocks[i-1], blocks[i]
		assert.GreaterOrEqual(t, cur.start, prev.start+prev.size)
	}
}

func TestExhaustion(t *testing.T) {
	a := New(make([]byte, 256))

	var n int
	for a.Alloc(16, 8) != nil {
		n++
	}
	assert.Equal(t, 16, n)
	assert.Equal(t, 0, a.Remaining())

	// the same failing request keeps failing and never moves the cursor
	next := a.next
	for i := 0; i < 3; i++ {
		assert.Nil(t, a.Alloc(16, 8))
		assert.Equal(t, next, a.next)
	}
}

func TestFreeNoop(t *testing.T) {
	a := New(make([]byte, 128))
	p := a.Alloc(32, 8)
	require.NotNil(t, p)
	next := a.next

	a.Free(p, 32)
	a.Free(nil, 0)
	a.Free(p, 999) // junk arguments are not validated
	assert.Equal(t, next, a.next)

	// allocation behavior is unaffected by any number of frees
	q := a.Alloc(32, 8)
	require.NotNil(t, q)
	assert.Equal(t, uintptr(p)+32, uintptr(q))
}

func TestAllocBytes(t *testing.T) {
	a := New(make([]byte, 1024))

	b := a.AllocBytes(100)
	require.NotNil(t, b)
	assert.Equal(t, 100, len(b))
	assert.Zero(t, uintptr(unsafe.Pointer(&b[0]))%PtrAlign)

	// blocks are writable and independent
	for i := range b {
		b[i] = byte(i)
	}
	b2 := a.AllocBytes(100)
	require.NotNil(t, b2)
	for i := range b2 {
		b2[i] = 0xFF
	}
	assert.Equal(t, byte(99), b[99])

	assert.Nil(t, a.AllocBytes(0))
	assert.Nil(t, a.AllocBytes(-1))
	assert.Nil(t, a.AllocBytes(2048))
}

func TestAccounting(t *testing.T) {
	a := New(make([]byte, 128))
	assert.Equal(t, 0, a.Used())

	a.Alloc(10, 1)
	assert.Equal(t, 10, a.Used())
	assert.Equal(t, 118, a.Remaining())

	// padding counts as used
	a.Alloc(1, 16)
	assert.Equal(t, 17, a.Used())
	assert.Equal(t, a.Size(), a.Used()+a.Remaining())
}
