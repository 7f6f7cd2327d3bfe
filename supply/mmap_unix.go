//go:build unix

package supply

import "golang.org/x/sys/unix"

// MMap hands out anonymous, private mmap regions, one per Acquire
// call, and munmaps them on Release. It exists for callers who want
// pool memory that bypasses the Go heap and GC entirely.
type MMap struct{}

func (MMap) Acquire(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func (MMap) Release(region []byte) error {
	return unix.Munmap(region)
}
