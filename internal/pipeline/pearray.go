package pipeline

import (
	"github.com/hyperifyio/snnsim/internal/entry"
	"github.com/hyperifyio/snnsim/internal/pe"
)

// LaneCount is the number of PEs the array replicates, one per output
// channel of a PE-array tile (not one per physical spine lane; the ISB has
// isb.LaneCount of those).
const LaneCount = 128

// PEArray holds one PE per lane and latches the merged entry/weight pair
// broadcast to it each tick.
type PEArray struct {
	lanes     [LaneCount]*pe.PE
	threshold int8
}

// NewPEArray returns a PEArray with every lane freshly reset.
func NewPEArray(threshold int8) *PEArray {
	a := &PEArray{threshold: threshold}
	for i := range a.lanes {
		a.lanes[i] = pe.New()
	}
	return a
}

// Process broadcasts e/weight to the PE at peIdx (an output-channel slot,
// not the spine lane the entry arrived on) and returns the fired output
// timestamp, or -1 if that PE did not fire.
func (a *PEArray) Process(peIdx int, e entry.Entry, weight int8) int8 {
	ts := int8(e.TS)
	return a.lanes[peIdx].Process(ts, weight, a.threshold)
}

// OutNeuronID returns the neuron id the PE at peIdx will report when it
// fires, as last set by SetOutNeuronIDs.
func (a *PEArray) OutNeuronID(peIdx int) uint32 {
	return a.lanes[peIdx].OutNeuronID()
}

// SetOutNeuronIDs assigns every lane's out_neuron_id for one output tile
// at site (h, w): PE i in tile gets id (h*wOut+w)*cOut + tile*LaneCount + i,
// per the PEArray output-collection rule.
func (a *PEArray) SetOutNeuronIDs(h, w, wOut, cOut, tile int) {
	base := uint32((h*wOut+w)*cOut + tile*LaneCount)
	for i, p := range a.lanes {
		p.SetOutNeuronID(base + uint32(i))
	}
}

// SetResetVmem configures the membrane-potential reset value applied to
// every lane on spike and on Reset.
func (a *PEArray) SetResetVmem(v int8) {
	for _, p := range a.lanes {
		p.SetResetVmem(v)
	}
}

// Reset clears every lane's membrane potential, as happens between sites.
func (a *PEArray) Reset() {
	for _, p := range a.lanes {
		p.Reset()
	}
}
