package core

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiledOutputBuffer_OfferAndDrainTile(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	require.NoError(t, tob.Offer(0, 0, entry.Entry{TS: 3, NeuronID: 0}))
	require.NoError(t, tob.Offer(0, 1, entry.Entry{TS: 1, NeuronID: 1}))

	assert.False(t, tob.TileEmpty(0))
	got := tob.DrainTile(0)
	require.Len(t, got, 2)
	assert.True(t, tob.TileEmpty(0))
}

func TestTiledOutputBuffer_PeekTileHeadPicksSmallestAcrossSlots(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	require.NoError(t, tob.Offer(0, 0, entry.Entry{TS: 5, NeuronID: 0}))
	require.NoError(t, tob.Offer(0, 1, entry.Entry{TS: 2, NeuronID: 1}))

	e, peIdx, ok := tob.PeekTileHead(0)
	require.True(t, ok)
	assert.Equal(t, uint8(2), e.TS)
	assert.Equal(t, 1, peIdx)
}

func TestTiledOutputBuffer_PopTileHeadRemovesPeekedEntry(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	require.NoError(t, tob.Offer(0, 0, entry.Entry{TS: 5, NeuronID: 0}))
	require.NoError(t, tob.Offer(0, 1, entry.Entry{TS: 2, NeuronID: 1}))

	e, ok := tob.PopTileHead(0)
	require.True(t, ok)
	assert.Equal(t, uint8(2), e.TS)

	e, _, ok = tob.PeekTileHead(0)
	require.True(t, ok)
	assert.Equal(t, uint8(5), e.TS, "the remaining slot's entry is now the tile head")
}

func TestTiledOutputBuffer_OfferRejectsOutOfRangeSlot(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	assert.Error(t, tob.Offer(TileCount, 0, entry.Entry{}))
	assert.Error(t, tob.Offer(0, 5, entry.Entry{}))
}

func TestTiledOutputBuffer_Empty(t *testing.T) {
	tob := NewTiledOutputBuffer(2)
	assert.True(t, tob.Empty())
	require.NoError(t, tob.Offer(3, 0, entry.Entry{TS: 1}))
	assert.False(t, tob.Empty())
}
