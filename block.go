package tlsf

import "unsafe"

// Flag bits packed into the low two bits of sizeAndFlags. Every block
// size is a multiple of Alignment (4), so these bits never overlap the
// size itself.
const (
	freeBit     uint32 = 1 << 0 // this block is free
	prevFreeBit uint32 = 1 << 1 // the physically previous block is free
	flagMask    uint32 = freeBit | prevFreeBit
)

// blockHeader is the fixed-size header every block in a pool carries,
// used whether the block is free or in use.
//
// prevPhys is the one audited primitive for walking backwards through
// physical memory; every other backward traversal goes through it
// rather than recomputing addresses by hand.
type blockHeader struct {
	prevPhys     *blockHeader
	sizeAndFlags uint32
}

// freeBlockHeader overlays blockHeader for blocks currently in a free
// list. The list links are intrusive: they live in what would
// otherwise be the block's payload, and are only meaningful while the
// block is free — logically absent once the block is handed out.
type freeBlockHeader struct {
	blockHeader
	listPrev *freeBlockHeader
	listNext *freeBlockHeader
}

// HeaderSize is the fixed per-block overhead.
const HeaderSize = uint32(unsafe.Sizeof(blockHeader{}))

// MinBlockPayload is the smallest payload a block can have: it must
// be able to hold the free-list links when the block is free.
const MinBlockPayload = uint32(unsafe.Sizeof(freeBlockHeader{})) - HeaderSize

// MaxPayloadSize is the largest payload size the size/flags word can
// encode; requests beyond this are rejected outright.
const MaxPayloadSize = ^uint32(0) &^ flagMask

// blockAt is the one narrow, audited pointer-arithmetic primitive for
// reaching a header at a byte offset from a base address; every other
// header-walk in the package routes through it rather than computing
// raw offsets inline.
func blockAt(base unsafe.Pointer, offset uint32) *blockHeader {
	return (*blockHeader)(unsafe.Add(base, offset))
}

func (b *blockHeader) size() uint32 {
	return b.sizeAndFlags &^ flagMask
}

func (b *blockHeader) setSize(s uint32) {
	b.sizeAndFlags = s | (b.sizeAndFlags & flagMask)
}

func (b *blockHeader) isFree() bool {
	return b.sizeAndFlags&freeBit != 0
}

func (b *blockHeader) isPrevFree() bool {
	return b.sizeAndFlags&prevFreeBit != 0
}

func (b *blockHeader) setPrevFree(free bool) {
	if free {
		b.sizeAndFlags |= prevFreeBit
	} else {
		b.sizeAndFlags &^= prevFreeBit
	}
}

// isSentinel reports whether b is a pool's zero-payload walk
// terminator: never free, never split, never coalesced.
func (b *blockHeader) isSentinel() bool {
	return b.size() == 0
}

// physNext returns the block physically following b.
func (b *blockHeader) physNext() *blockHeader {
	return blockAt(unsafe.Pointer(b), HeaderSize+b.size())
}

// physPrev returns the block physically preceding b, or nil if b is
// the first block of its pool.
func (b *blockHeader) physPrev() *blockHeader {
	return b.prevPhys
}

// payload returns a pointer to the usable memory area following b's
// header.
func (b *blockHeader) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), HeaderSize)
}

// blockFromPayload recovers a block header from a pointer previously
// returned by Alloc.
func blockFromPayload(ptr unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(ptr, -int(HeaderSize)))
}

func asFree(b *blockHeader) *freeBlockHeader {
	return (*freeBlockHeader)(unsafe.Pointer(b))
}

// setFree marks b free and propagates prevFreeBit to its physical
// successor in the same step, so the successor's view of b never goes
// stale between the two updates.
func setFree(b *blockHeader) {
	b.sizeAndFlags |= freeBit
	b.physNext().setPrevFree(true)
}

// clearFree marks b used and propagates F_PREV_FREE to its physical
// successor in the same step.
func clearFree(b *blockHeader) {
	b.sizeAndFlags &^= freeBit
	b.physNext().setPrevFree(false)
}
