package model

import (
	"github.com/hyperifyio/snnsim/internal/batch"
	"github.com/hyperifyio/snnsim/internal/core"
)

// ConvLayer drives a convolutional layer: its output geometry comes from
// sliding the kernel window over the input feature map.
type ConvLayer struct {
	*Layer
}

// NewConvLayer derives a ConvLayer's site geometry from the kernel/stride/
// padding parameters and wires its driver.
func NewConvLayer(layerID int, name string, kh, kw, stride, padding, inH, inW, inChannels, outChannels int, threshold int8, spines SpineSource, weights WeightSource, ledger *core.CostLedger) *ConvLayer {
	window := batch.Window{KernelH: kh, KernelW: kw, Stride: stride, Padding: padding, InputH: inH, InputW: inW}
	geo := Geometry{
		LayerID:     layerID,
		Name:        name,
		Window:      window,
		InChannels:  inChannels,
		OutChannels: outChannels,
		Threshold:   threshold,
		DecodeCIn:   inChannels,
	}
	return &ConvLayer{Layer: NewLayer(geo, spines, weights, ledger)}
}
