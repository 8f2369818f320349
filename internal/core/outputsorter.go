package core

import "github.com/hyperifyio/snnsim/internal/entry"

// OutputSorter drains a TiledOutputBuffer into ts order before entries are
// handed to the OutputSpine. The reference hardware implements this as a
// small sorting network per tile plus a final merge stage; MergeTiles is
// the merge stage, implemented directly since Go has no equivalent of a
// fixed sorting-network primitive to adapt.
type OutputSorter struct{}

// NewOutputSorter returns a ready-to-use sorter.
func NewOutputSorter() *OutputSorter { return &OutputSorter{} }

// MergeTiles repeatedly picks the smallest head across tob's TileCount tile
// buffers and appends it to the drained output, until every tile is empty.
// This is the k-way merge that keeps the overall output monotone when two
// or more tiles are ready the same tick, rather than draining one tile at
// a time and concatenating.
func (s *OutputSorter) MergeTiles(tob *TiledOutputBuffer) []entry.Entry {
	var out []entry.Entry
	for {
		bestTile := -1
		var best entry.Entry
		for t := 0; t < TileCount; t++ {
			cand, _, ok := tob.PeekTileHead(t)
			if !ok {
				continue
			}
			if bestTile == -1 || cand.Less(best) {
				best = cand
				bestTile = t
			}
		}
		if bestTile == -1 {
			return out
		}
		e, _ := tob.PopTileHead(bestTile)
		out = append(out, e)
	}
}
