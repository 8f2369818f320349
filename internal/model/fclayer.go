package model

import (
	"github.com/hyperifyio/snnsim/internal/batch"
	"github.com/hyperifyio/snnsim/internal/core"
)

// FCLayer drives a fully-connected layer: a single output site whose
// kernel spans the entire input, equivalent to a conv layer with a
// kernel the size of the whole feature map and no striding.
type FCLayer struct {
	*Layer
}

// NewFCLayer wires an FCLayer's driver. inChannels is the flattened input
// width; outChannels is the number of output neurons.
func NewFCLayer(layerID int, name string, inChannels, outChannels int, threshold int8, spines SpineSource, weights WeightSource, ledger *core.CostLedger) *FCLayer {
	window := batch.Window{KernelH: 1, KernelW: inChannels, Stride: 1, Padding: 0, InputH: 1, InputW: inChannels}
	geo := Geometry{
		LayerID:     layerID,
		Name:        name,
		Window:      window,
		InChannels:  inChannels,
		OutChannels: outChannels,
		Threshold:   threshold,
		// The FC input is one flattened vector, not a multi-channel
		// feature map: compute_row_id decodes it as a single channel of
		// width inChannels rather than dividing by InChannels.
		DecodeCIn: 1,
	}
	return &FCLayer{Layer: NewLayer(geo, spines, weights, ledger)}
}
