package core

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSorter_MergeTilesOrdersAcrossTiles(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	require.NoError(t, tob.Offer(0, 0, entry.Entry{TS: 4, NeuronID: 0}))
	require.NoError(t, tob.Offer(3, 1, entry.Entry{TS: 1, NeuronID: 1}))
	require.NoError(t, tob.Offer(3, 0, entry.Entry{TS: 2, NeuronID: 2}))
	require.NoError(t, tob.Offer(0, 1, entry.Entry{TS: 3, NeuronID: 3}))

	sorter := NewOutputSorter()
	out := sorter.MergeTiles(tob)

	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].TS, out[i].TS, "merge must be globally ts-ordered across tiles")
	}
	assert.Equal(t, uint8(1), out[0].TS)
	assert.Equal(t, uint8(4), out[3].TS)
	assert.True(t, tob.Empty(), "MergeTiles must drain every tile it visited")
}

func TestOutputSorter_MergeTilesEmptyBufferReturnsNil(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	sorter := NewOutputSorter()
	out := sorter.MergeTiles(tob)
	assert.Empty(t, out)
}

func TestOutputSorter_MergeTilesBreaksTiesByNeuronID(t *testing.T) {
	tob := NewTiledOutputBuffer(1)
	require.NoError(t, tob.Offer(5, 0, entry.Entry{TS: 1, NeuronID: 20}))
	require.NoError(t, tob.Offer(2, 0, entry.Entry{TS: 1, NeuronID: 10}))

	sorter := NewOutputSorter()
	out := sorter.MergeTiles(tob)

	require.Len(t, out, 2)
	assert.Equal(t, uint32(10), out[0].NeuronID, "equal ts entries drain in neuron_id order regardless of tile")
}
