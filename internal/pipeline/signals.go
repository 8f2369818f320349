// Package pipeline implements the general six-stage ClockCore assembly:
// MinFinderBatch -> IntermediateFIFO x4 -> GlobalMerger/InputWeightProvider
// -> PEArray -> SmallestTsPicker -> OutputQueue, tied together by a shared
// signals bus instead of the back-pointers the reference hardware model
// uses between stages.
package pipeline

// Signals is the bus struct SmallestTsPicker and PEArray share instead of
// holding a pointer back to their owning core. It carries st1_st2_valid,
// the single bit of backpressure between Stage 1 (SmallestTsPicker) and
// Stage 2 (PEArray): S1 closes it while its pool is non-empty and reopens
// it once the pool drains; S2's write into the pool succeeds only while
// it reads true.
//
// Unlike the per-tick wires MinFinderBatch/GlobalMerger/PEArray pass as
// plain return values, St1St2Valid is per-site sticky state: it survives
// across ticks and is only (re)initialized to true when a tile's compute
// loop starts.
type Signals struct {
	St1St2Valid bool
}

// NewSignals returns a Signals bus with the handshake open, matching the
// reset-at-tile-start state (§4.J: "reset st1_st2_valid = true").
func NewSignals() *Signals {
	return &Signals{St1St2Valid: true}
}
