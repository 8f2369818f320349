package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Header is the exact column order every per-layer CSV row follows.
var Header = []string{
	"layer_id",
	"layer_name",
	"total_cycles",
	"sites",
	"output_spikes",
	"dram_bytes_in",
	"dram_bytes_out",
}

// WriteCSV writes acc's layers to w, one row per layer, preceded by Header.
func WriteCSV(w io.Writer, acc *Accumulator) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, l := range acc.Layers {
		row := []string{
			strconv.Itoa(l.LayerID),
			l.LayerName,
			strconv.FormatInt(l.TotalCycles, 10),
			strconv.FormatInt(l.Sites, 10),
			strconv.FormatInt(l.OutputSpikes, 10),
			strconv.FormatInt(l.DramBytesIn, 10),
			strconv.FormatInt(l.DramBytesOut, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
