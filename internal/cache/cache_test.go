package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSim_RepeatedAccessHits(t *testing.T) {
	s := New(Config{Sets: 4, Ways: 2, Policy: LRU})
	assert.False(t, s.Access(0), "first access to a line is always a miss")
	assert.True(t, s.Access(10), "same line (offset 10 is still line 0)")
	assert.Equal(t, int64(1), s.Stats().Hits)
	assert.Equal(t, int64(1), s.Stats().Misses)
}

func TestSim_LRUEvictsOldest(t *testing.T) {
	s := New(Config{Sets: 1, Ways: 2, Policy: LRU})
	s.Access(0 * LineBytes)   // fills way 0
	s.Access(1 * LineBytes)   // fills way 1
	s.Access(0 * LineBytes)   // touches way 0, way 1 now LRU
	hit := s.Access(2 * LineBytes) // evicts way 1 (line 1)
	assert.False(t, hit)

	assert.True(t, s.Access(0*LineBytes), "line 0 should still be resident")
	assert.False(t, s.Access(1*LineBytes), "line 1 should have been evicted")
}

func TestStats_MissRate(t *testing.T) {
	s := Stats{Hits: 3, Misses: 1}
	assert.InDelta(t, 0.25, s.MissRate(), 0.0001)

	var empty Stats
	assert.Equal(t, float64(0), empty.MissRate())
}
