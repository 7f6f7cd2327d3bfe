//go:build unix

package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMMapAcquireRelease(t *testing.T) {
	var m MMap
	region, err := m.Acquire(4096)
	require.NoError(t, err)
	assert.Len(t, region, 4096)
	assert.NoError(t, m.Release(region))
}
