package runner

import (
	"testing"

	"github.com/hyperifyio/snnsim/internal/config"
	"github.com/hyperifyio/snnsim/internal/dram"
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
	"github.com/hyperifyio/snnsim/internal/model"
	"github.com/hyperifyio/snnsim/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpineSource(t *testing.T) {
	w := dram.NewStreamWriter(dram.Packed{})
	w.WriteSegment(dram.SegmentHeader{Version: dram.HeaderVersion, LogicalSpineID: 1*4 + 2, Size: 1}, []entry.Entry{{TS: 7, NeuronID: 3}})
	w.WriteSegment(dram.SegmentHeader{Version: dram.HeaderVersion, LogicalSpineID: 0, Size: 0, EOL: 1}, nil)

	img := dram.NewImage(w.Bytes())
	region := dram.Range{Offset: 0, Length: int64(len(w.Bytes()))}

	spines, err := BuildSpineSource(img, region, dram.Packed{}, 4)
	require.NoError(t, err)

	got := spines(1, 2)
	require.Len(t, got, 1)
	assert.Equal(t, uint8(7), got[0].TS)

	assert.Empty(t, spines(9, 9))
}

func TestLoadWeightTileAndBuildWeightSource(t *testing.T) {
	raw := make([]byte, filterbuffer.RowWide*2)
	raw[0] = 0xFF // -1 as int8
	raw[filterbuffer.RowWide] = 5

	img := dram.NewImage(raw)
	region := dram.Range{Offset: 0, Length: int64(len(raw))}

	fb := filterbuffer.New()
	require.NoError(t, LoadWeightTile(img, region, 0, 2, fb))

	ws := BuildWeightSource([]*filterbuffer.Buffer{fb})
	row, ok := ws(0, 0)
	require.True(t, ok)
	assert.Equal(t, int8(-1), row[0])

	_, ok = ws(1, 0)
	assert.False(t, ok, "tile 1 has no resident FilterBuffer")
}

func TestRunNetwork_AccumulatesStats(t *testing.T) {
	net := &config.Network{Layers: []config.Layer{{L: 0, Name: "fc1"}}}
	spines := func(row, col int) []entry.Entry {
		return []entry.Entry{{TS: 1, NeuronID: 0}}
	}
	weights := func(tile, rowID int) (filterbuffer.Row, bool) {
		var row filterbuffer.Row
		row[0] = 127
		return row, true
	}
	layer := model.NewFCLayer(0, "fc1", 2, 2, 1, spines, weights, nil)

	acc, outputs, err := RunNetwork(net, []*model.Layer{layer.Layer}, settings.Default())
	require.NoError(t, err)
	require.Len(t, acc.Layers, 1)
	assert.Equal(t, "fc1", acc.Layers[0].LayerName)
	require.Len(t, outputs, 1)
}
