package tlsf

import "math/bits"

// Tunable parameters. Changing any of these requires re-deriving the
// size_to_index / good-fit arithmetic below to match.
const (
	// AlignmentLog2 is log2 of the payload/size alignment.
	AlignmentLog2 = 2
	// Alignment is the byte alignment every block size (and every
	// pointer returned by Alloc) is a multiple of.
	Alignment = 1 << AlignmentLog2

	// SLBits is the number of second-level bits; SL is the resulting
	// fan-out (16-way) of each first-level bucket.
	SLBits = 4
	SL     = 1 << SLBits

	// FLBase is the first-level bucket below which all sizes collapse
	// into bucket 0. 2^(FLBase+1) is the small/large size boundary.
	FLBase = 9
	// FLMax is the number of first-level buckets.
	FLMax = 32 - FLBase

	// smallBlockBoundary is the size below which fl is always 0.
	smallBlockBoundary = 1 << (FLBase + 1)
	// smallSLStride is the SL bucket width below smallBlockBoundary.
	smallSLStride = 1 << (FLBase + 1 - SLBits)
)

// msb returns floor(log2(n)) for n > 0. It is the hot-path bit scan
// used to place a size into its first-level bucket; math/bits is the
// idiomatic, instruction-backed way to do this in Go.
func msb(n uint32) int {
	return bits.Len32(n) - 1
}

// ctz returns the index of the lowest set bit of n. Callers only
// invoke it on a non-zero word, by construction.
func ctz(n uint32) int {
	return bits.TrailingZeros32(n)
}

// alignUp rounds size up to the nearest multiple of Alignment.
func alignUp(size uint32) uint32 {
	return (size + (Alignment - 1)) &^ (Alignment - 1)
}

// sizeToIndex computes the (fl, sl) bucket a free block of this size
// belongs in. size must already be a multiple of Alignment.
func sizeToIndex(size uint32) (fl, sl int) {
	if size < smallBlockBoundary {
		return 0, int(size / smallSLStride)
	}
	k := msb(size)
	fl = k - FLBase
	sl = int((size >> (k - SLBits)) - SL)
	return fl, sl
}

// goodFitIndex rounds a requested payload size up to the next bucket
// boundary and returns the (fl, sl) cell the search should start from.
// This upgrades a first-fit scan into a bounded, constant-time search
// by guaranteeing the first block pulled from the chosen cell is large
// enough, at the cost of a bounded amount of internal fragmentation.
// The stride is added unconditionally, for both small and large sizes,
// so the "first bucket fits" guarantee holds uniformly across the
// whole range.
func goodFitIndex(payload uint32) (fl, sl int) {
	s := payload + HeaderSize
	if s >= smallBlockBoundary {
		stride := uint32(1)<<uint(msb(s)-SLBits) - 1
		s += stride
	} else {
		s += smallSLStride
	}
	return sizeToIndex(s)
}
