package pipeline

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/stretchr/testify/assert"
)

// TestPEArray_Scenario_S1_AllLanesFireWithDistinctNeuronIDs is scenario S1:
// a single merged entry broadcast to every lane, with every lane's weight
// crossing threshold, must produce LaneCount firings whose neuron ids are
// the distinct range [0, LaneCount).
func TestPEArray_Scenario_S1_AllLanesFireWithDistinctNeuronIDs(t *testing.T) {
	a := NewPEArray(1)
	a.SetOutNeuronIDs(0, 0, 1, LaneCount, 0)

	e := entry.Entry{TS: 5, NeuronID: 0}
	seen := make(map[uint32]bool)
	for i := 0; i < LaneCount; i++ {
		fired := a.Process(i, e, 127)
		if assert.GreaterOrEqual(t, fired, int8(0), "lane %d must fire", i) {
			seen[a.OutNeuronID(i)] = true
		}
	}
	assert.Len(t, seen, LaneCount)
	for i := uint32(0); i < LaneCount; i++ {
		assert.True(t, seen[i], "neuron id %d must be present", i)
	}
}

// TestPEArray_Scenario_S6_SecondTileOffsetsNeuronIDs is scenario S6: with
// C_out=256 (two PE-array tiles) and W_out=4, PE 0 in tile 1 at site (0,0)
// must emit out_neuron_id = 0*4*256 + (1*128+0) = 128.
func TestPEArray_Scenario_S6_SecondTileOffsetsNeuronIDs(t *testing.T) {
	a := NewPEArray(1)
	a.SetOutNeuronIDs(0, 0, 4, 256, 1)
	assert.Equal(t, uint32(128), a.OutNeuronID(0))
}
