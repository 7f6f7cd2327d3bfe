package tlsf

import "unsafe"

// Manager is a Two-Level Segregated Fit allocator. Its zero value is
// ready to use: no pools, every free list empty, both bitmaps zero.
//
// WARNING: a Manager is NOT goroutine-safe; see the package doc.
type Manager struct {
	index freeIndex
	frames *frame

	totalMemory uint64
	freeMemory  uint64
}

// New returns an empty Manager, equivalent to the zero value — it
// exists for symmetry with Destruct and so call sites read the same
// way as the rest of the lifecycle.
func New() *Manager {
	return &Manager{}
}

// TotalMemory is the sum, across every supplied pool, of each pool's
// one real block's header-plus-payload bytes, excluding the sentinel.
func (m *Manager) TotalMemory() uint64 {
	return m.totalMemory
}

// FreeMemory is the sum of size(b) over every currently free block.
func (m *Manager) FreeMemory() uint64 {
	return m.freeMemory
}

// Alloc returns a pointer to a payload of at least size bytes, or nil
// if size is zero or the search finds no free block large enough. The
// search takes the head of the rounded-up good-fit cell, then falls
// back to the head of the request's own cell and the cells above it;
// blocks behind the head of the request's own cell are not examined.
// The returned pointer is aligned to Alignment and, when satisfied
// from an unsplit block, its usable size may exceed the request by up
// to one SL stride.
func (m *Manager) Alloc(size int) (unsafe.Pointer, error) {
	if size <= 0 {
		return nil, nil
	}
	if uint64(size) > uint64(MaxPayloadSize) {
		return nil, ErrOutOfMemory
	}
	aligned := alignUp(uint32(size))

	fl, sl := goodFitIndex(aligned)
	found := m.index.find(&fl, &sl)
	if found == nil {
		// The rounded-up cell can lie above cells whose blocks still
		// fit the request exactly.
		fl, sl = sizeToIndex(aligned)
		if found = m.index.lists[fl][sl]; found == nil || found.size() < aligned {
			sl++
			found = m.index.find(&fl, &sl)
		}
	}
	if found == nil {
		return nil, ErrOutOfMemory
	}
	m.index.remove(found, fl, sl)

	b := &found.blockHeader
	var used *blockHeader
	var consumed uint64
	if tail := divide(b, aligned); tail != nil {
		m.index.insert(asFree(b))
		clearFree(tail)
		used = tail
		// The tail's header itself came out of the free remainder's
		// former payload, so it leaves free_memory along with the
		// tail's own size.
		consumed = uint64(used.size()) + uint64(HeaderSize)
	} else {
		clearFree(b)
		used = b
		consumed = uint64(used.size())
	}

	m.freeMemory -= consumed
	return used.payload(), nil
}

// Free returns the block at ptr to the index, coalescing it with any
// free physical neighbours. Free(nil) is a silent no-op.
func (m *Manager) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	b := blockFromPayload(ptr)
	assert(!b.isFree(), "tlsf: double free")

	setFree(b)
	m.freeMemory += uint64(b.size())

	b = m.mergeNeighbours(b)
	m.index.insert(asFree(b))
}

// divide carves the tail off b so the tail holds exactly s bytes of
// payload (MinBlockPayload when s is smaller), returning it; b itself
// shrinks in place and keeps its address and prevPhys linkage. It
// returns nil, leaving b untouched, when the split would leave b with
// less than MinBlockPayload.
func divide(b *blockHeader, s uint32) *blockHeader {
	if s < MinBlockPayload {
		s = MinBlockPayload
	}
	if b.size() < s+HeaderSize+MinBlockPayload {
		return nil
	}

	oldNext := b.physNext()
	b.setSize(b.size() - s - HeaderSize)

	n := b.physNext()
	n.prevPhys = b
	oldNext.prevPhys = n

	n.sizeAndFlags = s | freeBit | prevFreeBit
	return n
}

// mergeNeighbours absorbs the physically adjacent blocks of b that are
// free, in both directions, and returns the surviving block. Forward
// always merges with physNext, backward always merges with physPrev —
// the forward case must never walk backward instead.
func (m *Manager) mergeNeighbours(b *blockHeader) *blockHeader {
	if next := b.physNext(); !next.isSentinel() && next.isFree() {
		m.index.removeAny(asFree(next))
		b.setSize(b.size() + HeaderSize + next.size())
		m.freeMemory += uint64(HeaderSize) // next's header becomes free payload
		survivorNext := b.physNext()
		survivorNext.prevPhys = b
		setFree(b) // re-propagate F_PREV_FREE onto survivorNext
	}
	if b.isPrevFree() {
		prev := b.physPrev()
		m.index.removeAny(asFree(prev))
		prev.setSize(prev.size() + HeaderSize + b.size())
		m.freeMemory += uint64(HeaderSize) // b's header becomes free payload
		survivorNext := prev.physNext()
		survivorNext.prevPhys = prev
		setFree(prev)
		b = prev
	}
	return b
}
