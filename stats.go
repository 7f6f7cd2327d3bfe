package tlsf

import "github.com/bits-and-blooms/bitset"

// Occupancy returns a snapshot of which (fl, sl) cells currently hold
// at least one free block, flattened to bit fl*SL+sl. It exists for
// tests and callers that want to assert on free-list shape without
// reaching into unexported fields; it never touches the hot alloc/free
// path, which keeps the bitmaps themselves as native machine words.
//
// This is deliberately not a pretty-printer: it hands back structured
// data, nothing is formatted or written anywhere.
func (m *Manager) Occupancy() *bitset.BitSet {
	bs := bitset.New(uint(FLMax * SL))
	for fl := 0; fl < FLMax; fl++ {
		sl := m.index.slBitmap[fl]
		for i := 0; i < SL; i++ {
			if sl&(1<<uint(i)) != 0 {
				bs.Set(uint(fl*SL + i))
			}
		}
	}
	return bs
}
