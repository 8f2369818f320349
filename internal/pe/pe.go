// Package pe implements the integrate-fire-reset processing element: the
// saturating-arithmetic neuron core that the PE array replicates 128-wide.
package pe

import "math"

const (
	minInt8 = math.MinInt8
	maxInt8 = math.MaxInt8
)

// PE holds one neuron's membrane potential, its configured reset value,
// and the output-channel neuron id it is currently assigned to emit on
// firing, across the life of a site.
type PE struct {
	potential   int8
	resetV      int8
	outNeuronID uint32
}

// New returns a PE with a zeroed membrane potential and the default
// reset value of 0.
func New() *PE {
	return &PE{}
}

// SetResetVmem configures the membrane potential the neuron is set to on
// spike, and by Reset. Defaults to 0.
func (p *PE) SetResetVmem(v int8) {
	p.resetV = v
}

// SetOutNeuronID assigns the neuron id this PE reports in the Entry it
// produces when it fires. The controller sets this once per output tile,
// computed from the tile's (site, tile index, PE lane).
func (p *PE) SetOutNeuronID(id uint32) {
	p.outNeuronID = id
}

// OutNeuronID returns the neuron id most recently assigned by
// SetOutNeuronID.
func (p *PE) OutNeuronID() uint32 {
	return p.outNeuronID
}

// Reset sets the membrane potential to the configured reset value, as
// happens at the start of every site.
func (p *PE) Reset() {
	p.potential = p.resetV
}

// Potential returns the current membrane potential.
func (p *PE) Potential() int8 {
	return p.potential
}

// Process integrates one weighted spike and fires if the updated potential
// meets or exceeds threshold. It returns the output timestamp (ts) if the
// neuron fired this cycle, or -1 if it did not. On firing the potential is
// set to the configured reset value (integrate-fire-reset, 0 unless changed
// by SetResetVmem), matching the saturating int8
// arithmetic of the reference hardware: the running sum never wraps, it
// clamps at [-128, 127].
func (p *PE) Process(ts int8, weight int8, threshold int8) int8 {
	sum := int32(p.potential) + int32(weight)
	switch {
	case sum > maxInt8:
		sum = maxInt8
	case sum < minInt8:
		sum = minInt8
	}
	p.potential = int8(sum)

	if p.potential >= threshold {
		p.potential = p.resetV
		return ts
	}
	return -1
}
