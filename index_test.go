package tlsf

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFreeBlock builds a standalone freeBlockHeader with the given
// payload size, not attached to any pool; enough for exercising the
// index in isolation.
func newFreeBlock(payload uint32) *freeBlockHeader {
	b := &freeBlockHeader{}
	b.sizeAndFlags = payload | freeBit
	return b
}

func TestFreeIndexInsertFind(t *testing.T) {
	var idx freeIndex
	b := newFreeBlock(1024)
	idx.insert(b)

	fl, sl := sizeToIndex(1024)
	assert.NotZero(t, idx.flBitmap&(1<<uint(fl)))
	assert.NotZero(t, idx.slBitmap[fl]&(1<<uint(sl)))

	searchFL, searchSL := goodFitIndex(1024 - HeaderSize)
	found := idx.find(&searchFL, &searchSL)
	require.NotNil(t, found)
	assert.Same(t, unsafe.Pointer(b), unsafe.Pointer(found))
}

func TestFreeIndexFindNoneReturnsNil(t *testing.T) {
	var idx freeIndex
	fl, sl := goodFitIndex(64)
	assert.Nil(t, idx.find(&fl, &sl))
}

func TestFreeIndexRemoveClearsBitmapWhenListEmpties(t *testing.T) {
	var idx freeIndex
	b := newFreeBlock(64)
	idx.insert(b)
	fl, sl := sizeToIndex(64)

	idx.remove(b, fl, sl)

	assert.Zero(t, idx.slBitmap[fl])
	assert.Zero(t, idx.flBitmap&(1<<uint(fl)))
}

func TestFreeIndexMultipleBlocksSameCellLIFO(t *testing.T) {
	var idx freeIndex
	a := newFreeBlock(64)
	b := newFreeBlock(64)
	idx.insert(a)
	idx.insert(b)

	fl, sl := sizeToIndex(64)
	head := idx.lists[fl][sl]
	assert.Same(t, unsafe.Pointer(b), unsafe.Pointer(head))

	idx.removeAny(b)
	head = idx.lists[fl][sl]
	assert.Same(t, unsafe.Pointer(a), unsafe.Pointer(head))
}

func TestFreeIndexFindFallsBackToHigherFL(t *testing.T) {
	var idx freeIndex
	big := newFreeBlock(1 << 20)
	idx.insert(big)

	fl, sl := goodFitIndex(64)
	found := idx.find(&fl, &sl)
	require.NotNil(t, found)
	assert.Same(t, unsafe.Pointer(big), unsafe.Pointer(found))
}
