package tlsf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyTooSmallPool(t *testing.T) {
	var m Manager
	err := m.Supply(make([]byte, HeaderSize))
	assert.ErrorIs(t, err, ErrTooSmallPool)
}

func TestSupplyInstallsOneFreeBlock(t *testing.T) {
	var m Manager
	region := make([]byte, 4096)
	require.NoError(t, m.Supply(region))

	assert.Equal(t, m.totalMemory, m.freeMemory+uint64(HeaderSize))
	assert.True(t, m.TotalMemory() > 0)
}

type countingSupplier struct {
	acquired, released int
}

func (s *countingSupplier) Acquire(size int) ([]byte, error) {
	s.acquired++
	return make([]byte, size), nil
}

func (s *countingSupplier) Release(region []byte) error {
	s.released++
	return nil
}

func TestSupplyFromRoundTripsThroughSupplier(t *testing.T) {
	var m Manager
	sup := &countingSupplier{}
	require.NoError(t, m.SupplyFrom(sup, 4096))
	assert.Equal(t, 1, sup.acquired)

	require.NoError(t, m.Destruct())
	assert.Equal(t, 1, sup.released)
}

func TestDestructZeroesState(t *testing.T) {
	var m Manager
	require.NoError(t, m.Supply(make([]byte, 4096)))
	require.NoError(t, m.Destruct())

	assert.Zero(t, m.TotalMemory())
	assert.Zero(t, m.FreeMemory())
	assert.Nil(t, m.frames)
}
