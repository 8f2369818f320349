package pipeline

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/fifo"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
	"github.com/hyperifyio/snnsim/internal/isb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLaneBatchLoader() BatchLoader {
	return func(b int) [isb.LaneCount][]entry.Entry {
		var lanes [isb.LaneCount][]entry.Entry
		if b != 0 {
			return lanes
		}
		lanes[0] = []entry.Entry{{TS: 1, NeuronID: 0}, {TS: 2, NeuronID: 0}, {TS: 3, NeuronID: 0}}
		lanes[1] = []entry.Entry{{TS: 1, NeuronID: 1}, {TS: 4, NeuronID: 1}}
		return lanes
	}
}

func TestClockCore_OutputsAreMonotonicNonDecreasing(t *testing.T) {
	buf := isb.New()
	var fifos [MaxBatches]*fifo.FIFO
	fifos[0] = fifo.New()

	weights := NewInputWeightProvider(func(e entry.Entry) (filterbuffer.Row, int, bool) {
		var row filterbuffer.Row
		for i := range row {
			row[i] = 127
		}
		return row, 0, true
	})

	core := NewClockCore(buf, fifos, 1, twoLaneBatchLoader(), weights, 1, 0, 0, 1, LaneCount, 0)

	for tick := 0; tick < 1000 && !core.Quiescent(); tick++ {
		_, err := core.Tick()
		require.NoError(t, err)
	}

	out := core.Out.Drain()
	require.NotEmpty(t, out)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].TS, out[i].TS, "output queue must be non-decreasing in ts")
	}
}

func TestClockCore_QuiescesWhenEmpty(t *testing.T) {
	buf := isb.New()
	var fifos [MaxBatches]*fifo.FIFO
	weights := NewInputWeightProvider(func(e entry.Entry) (filterbuffer.Row, int, bool) { return filterbuffer.Row{}, -1, false })
	core := NewClockCore(buf, fifos, 0, nil, weights, 1, 0, 0, 0, LaneCount, 0)

	assert.True(t, core.Quiescent())
	didWork, err := core.Tick()
	require.NoError(t, err)
	assert.False(t, didWork)
}

// TestClockCore_Scenario_S1_AllPEsFireWithDistinctNeuronIDs is scenario S1
// driven through ClockCore's full Tick loop: one merged entry every PE
// fires for must drain LaneCount entries with distinct [0, LaneCount)
// neuron ids.
func TestClockCore_Scenario_S1_AllPEsFireWithDistinctNeuronIDs(t *testing.T) {
	buf := isb.New()
	var fifos [MaxBatches]*fifo.FIFO
	fifos[0] = fifo.New()
	load := func(b int) [isb.LaneCount][]entry.Entry {
		var lanes [isb.LaneCount][]entry.Entry
		if b == 0 {
			lanes[0] = []entry.Entry{{TS: 1, NeuronID: 0}}
		}
		return lanes
	}
	weights := NewInputWeightProvider(func(e entry.Entry) (filterbuffer.Row, int, bool) {
		var row filterbuffer.Row
		for i := range row {
			row[i] = 127
		}
		return row, 0, true
	})

	core := NewClockCore(buf, fifos, 1, load, weights, 1, 0, 0, 0, LaneCount, 0)
	for tick := 0; tick < 1000 && !core.Quiescent(); tick++ {
		_, err := core.Tick()
		require.NoError(t, err)
	}
	// One final drain: Quiescent only requires the picker pool empty, not
	// the output queue drained, so collect whatever Tick already pushed.
	out := core.Out.Drain()
	require.Len(t, out, LaneCount)
	seen := make(map[uint32]bool)
	for _, e := range out {
		seen[e.NeuronID] = true
	}
	assert.Len(t, seen, LaneCount)
}
