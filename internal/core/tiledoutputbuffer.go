// Package core implements the canonical per-site pipeline controller: the
// same lower stages as package pipeline, drained through a
// TiledOutputBuffer/OutputSorter/OutputSpine chain instead of a
// SmallestTsPicker/OutputQueue pair. This is the assembly the runner
// actually drives per layer.
package core

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/simerr"
)

// TileCount is the number of output-tile groups a site's PEs are split
// across.
const TileCount = 8

// PEMiniFIFODepth is the depth of each per-PE mini-FIFO feeding its tile.
const PEMiniFIFODepth = 4

// tileSlot is one per-PE mini-FIFO within a tile buffer.
type tileSlot struct {
	buf   [PEMiniFIFODepth]entry.Entry
	head  int
	count int
}

func (s *tileSlot) push(e entry.Entry) error {
	if s.count == PEMiniFIFODepth {
		return simerr.ErrCapacityExceeded
	}
	tail := (s.head + s.count) % PEMiniFIFODepth
	s.buf[tail] = e
	s.count++
	return nil
}

func (s *tileSlot) pop() (entry.Entry, bool) {
	if s.count == 0 {
		return entry.Entry{}, false
	}
	e := s.buf[s.head]
	s.head = (s.head + 1) % PEMiniFIFODepth
	s.count--
	return e, true
}

func (s *tileSlot) empty() bool { return s.count == 0 }

// TiledOutputBuffer holds one mini-FIFO per PE, grouped into TileCount
// tiles, which the OutputSorter merges across by tile head.
type TiledOutputBuffer struct {
	tiles [TileCount][]tileSlot
}

// NewTiledOutputBuffer allocates peesPerTile PE slots in each of the
// TileCount tiles.
func NewTiledOutputBuffer(peesPerTile int) *TiledOutputBuffer {
	tob := &TiledOutputBuffer{}
	for t := range tob.tiles {
		tob.tiles[t] = make([]tileSlot, peesPerTile)
	}
	return tob
}

// Offer enqueues e into the mini-FIFO for peIdx within tile.
func (tob *TiledOutputBuffer) Offer(tile, peIdx int, e entry.Entry) error {
	if tile < 0 || tile >= TileCount || peIdx < 0 || peIdx >= len(tob.tiles[tile]) {
		return simerr.ErrOutOfRange
	}
	return tob.tiles[tile][peIdx].push(e)
}

// DrainTile removes and returns every pending entry from tile, PE order,
// oldest-first within each PE.
func (tob *TiledOutputBuffer) DrainTile(tile int) []entry.Entry {
	if tile < 0 || tile >= TileCount {
		return nil
	}
	var out []entry.Entry
	for i := range tob.tiles[tile] {
		for {
			e, ok := tob.tiles[tile][i].pop()
			if !ok {
				break
			}
			out = append(out, e)
		}
	}
	return out
}

// PeekTileHead returns the smallest pending entry across every PE slot in
// tile without removing it, ties broken by lower PE index. ok is false if
// the tile is empty.
func (tob *TiledOutputBuffer) PeekTileHead(tile int) (e entry.Entry, peIdx int, ok bool) {
	if tile < 0 || tile >= TileCount {
		return entry.Entry{}, -1, false
	}
	best := -1
	var bestEntry entry.Entry
	for i := range tob.tiles[tile] {
		s := &tob.tiles[tile][i]
		if s.empty() {
			continue
		}
		cand := s.buf[s.head]
		if best == -1 || cand.Less(bestEntry) {
			bestEntry = cand
			best = i
		}
	}
	if best == -1 {
		return entry.Entry{}, -1, false
	}
	return bestEntry, best, true
}

// PopTileHead removes and returns the entry PeekTileHead last identified
// for tile.
func (tob *TiledOutputBuffer) PopTileHead(tile int) (entry.Entry, bool) {
	_, peIdx, ok := tob.PeekTileHead(tile)
	if !ok {
		return entry.Entry{}, false
	}
	return tob.tiles[tile][peIdx].pop()
}

// TileEmpty reports whether every PE slot in tile is empty.
func (tob *TiledOutputBuffer) TileEmpty(tile int) bool {
	if tile < 0 || tile >= TileCount {
		return true
	}
	for i := range tob.tiles[tile] {
		if !tob.tiles[tile][i].empty() {
			return false
		}
	}
	return true
}

// Empty reports whether every tile is empty.
func (tob *TiledOutputBuffer) Empty() bool {
	for t := range tob.tiles {
		if !tob.TileEmpty(t) {
			return false
		}
	}
	return true
}
