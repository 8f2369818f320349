package stats

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	acc := &Accumulator{}
	acc.Add(LayerCycleStats{LayerID: 0, LayerName: "conv1", TotalCycles: 100, Sites: 4, OutputSpikes: 12, DramBytesIn: 256, DramBytesOut: 64})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, acc))

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"0", "conv1", "100", "4", "12", "256", "64"}, rows[1])
}

func TestStageStats_Utilization(t *testing.T) {
	s := StageStats{ActiveTicks: 3, IdleTicks: 1}
	assert.InDelta(t, 0.75, s.Utilization(), 0.0001)

	var empty StageStats
	assert.Equal(t, float64(0), empty.Utilization())
}
