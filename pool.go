package tlsf

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// Supplier hands the Manager externally-owned memory regions and
// takes them back at teardown. The region it returns must already be
// aligned to Alignment, and the supplier promises not to touch it
// again until Release.
//
// The subpackage supply provides a plain heap-backed implementation
// and, on unix, an anonymous-mmap-backed one; Manager.Supply itself
// accepts a raw []byte and needs no Supplier at all when the caller
// already owns a region outright.
type Supplier interface {
	Acquire(size int) ([]byte, error)
	Release(region []byte) error
}

// frame is one entry in a pool's roster, recording enough to hand the
// region back to whatever supplied it.
type frame struct {
	next     *frame
	region   []byte
	supplier Supplier // nil when the region was supplied directly via Supply
}

// Supply installs one maximally-sized free block, bounded by a
// zero-payload sentinel, over a caller-owned region. The region must
// remain untouched by the caller until Destruct; the Manager takes no
// ownership of the bytes themselves, only of their interpretation as
// block headers.
func (m *Manager) Supply(region []byte) error {
	return m.supply(region, nil)
}

// SupplyFrom acquires size bytes from s and installs them the same
// way Supply does, remembering s so Destruct can hand the region back
// via Release.
func (m *Manager) SupplyFrom(s Supplier, size int) error {
	region, err := s.Acquire(size)
	if err != nil {
		return err
	}
	return m.supply(region, s)
}

func (m *Manager) supply(region []byte, s Supplier) error {
	if uint32(len(region)) < 2*HeaderSize {
		return ErrTooSmallPool
	}

	base := unsafe.Pointer(&region[0])
	// Clamp to the largest payload the size/flags word can encode: a
	// region donated by the caller may exceed the indexable range
	// even though no single request ever will.
	usable := mathutil.Min(len(region)-int(2*HeaderSize), int(MaxPayloadSize))
	payload := alignDown(uint32(usable))
	if payload < MinBlockPayload {
		return ErrTooSmallPool
	}

	b := asFree(blockAt(base, 0))
	b.prevPhys = nil
	b.sizeAndFlags = payload | freeBit

	sentinel := blockAt(base, HeaderSize+payload)
	sentinel.prevPhys = &b.blockHeader
	sentinel.sizeAndFlags = prevFreeBit

	m.index.insert(b)

	m.totalMemory += uint64(HeaderSize) + uint64(payload)
	m.freeMemory += uint64(payload)

	m.frames = &frame{next: m.frames, region: region, supplier: s}
	return nil
}

// alignDown rounds size down to the nearest multiple of Alignment.
func alignDown(size uint32) uint32 {
	return size &^ (Alignment - 1)
}

// Destruct releases every pool region back to the supplier that
// produced it (regions supplied directly via Supply are simply
// forgotten — ownership reverts to the caller) and zeroes the
// Manager's state.
func (m *Manager) Destruct() error {
	var firstErr error
	for f := m.frames; f != nil; f = f.next {
		if f.supplier == nil {
			continue
		}
		if err := f.supplier.Release(f.region); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	*m = Manager{}
	return firstErr
}
