package filterbuffer

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/simerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ResolveResident(t *testing.T) {
	b := New()
	row := Row{1, 2, 3}
	b.LoadTile(100, []Row{row})

	got, id, err := b.Resolve(100)
	require.NoError(t, err)
	assert.Equal(t, row, got)
	assert.Equal(t, 100, id)
}

func TestBuffer_ResolveMiss(t *testing.T) {
	b := New()
	b.LoadTile(100, []Row{{1}})

	_, id, err := b.Resolve(200)
	assert.ErrorIs(t, err, simerr.ErrRowOutOfTile)
	assert.Equal(t, -1, id)
}

func TestBuffer_LoadTileReplacesResidency(t *testing.T) {
	b := New()
	b.LoadTile(0, []Row{{1}, {2}})
	b.LoadTile(10, []Row{{3}})

	_, _, err := b.Resolve(0)
	assert.ErrorIs(t, err, simerr.ErrRowOutOfTile, "previous tile's rows must be evicted")

	got, _, err := b.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, Row{3}, got)
}

func TestRowID(t *testing.T) {
	id := RowID(1, 2, 3, 0, 3, 4)
	assert.Equal(t, 1*3*4+2*4+3, id)
}

func TestComputeRowID_InWindow(t *testing.T) {
	// C_in=1, W_in=4, K=3x3, stride 1, no padding, site (0,0).
	// neuron_id 5 decodes to h_in=1, w_in=1 (5/4=1, 5%4=1), which is
	// inside the window anchored at (0,0).
	rowID := ComputeRowID(5, 1, 4, 3, 3, 1, 1, 0, 0, 0, 0)
	assert.Equal(t, (0*3+1)*3+1, rowID)
}

func TestComputeRowID_PaddingTapDropped(t *testing.T) {
	// Spec scenario S4: K=3x3, no padding, site (0,0). A neuron_id that
	// decodes to (h_in=5, w_in=5) lands outside the 3x3 window anchored
	// at the origin, so the tap must be dropped (row id -1).
	rowID := ComputeRowID(5*6+5, 1, 6, 3, 3, 1, 1, 0, 0, 0, 0)
	assert.Equal(t, -1, rowID, "tap outside the kernel window must be reported as a padding miss")
}

func TestComputeRowID_DegenerateKernelResolvesRowZero(t *testing.T) {
	rowID := ComputeRowID(0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0)
	assert.Equal(t, 0, rowID)
}
