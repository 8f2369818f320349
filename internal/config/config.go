// Package config parses the per-layer network description driving a
// simulator run.
package config

import (
	"encoding/json"
	"io"

	"github.com/hyperifyio/snnsim/internal/simerr"
)

// Dims describes one tensor's shape as it crosses a layer boundary.
type Dims struct {
	Cin      int `json:"cin,omitempty"`
	Cout     int `json:"cout,omitempty"`
	H        int `json:"h,omitempty"`
	W        int `json:"w,omitempty"`
	Kh       int `json:"kh,omitempty"`
	Kw       int `json:"kw,omitempty"`
	Stride   int `json:"stride,omitempty"`
	Padding  int `json:"padding,omitempty"`
	Dilation int `json:"dilation,omitempty"`
}

// Layer is one network layer's description.
type Layer struct {
	L            int    `json:"L"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	ParamsIn     Dims   `json:"params_in"`
	ParamsWeight Dims   `json:"params_weight"`
	ParamsOut    Dims   `json:"params_out"`
}

// Network is the top-level parsed config: an ordered list of layers.
type Network struct {
	Layers []Layer `json:"layers"`
}

// ParseConfig reads and validates a network description from r.
//
// Validation enforces: the layer list is non-empty, each layer's
// params_in.Cin matches the previous layer's params_out.Cout (the first
// layer is taken on faith, it has no predecessor), params_weight.Cout is
// positive, and dilation is 1 wherever it is specified.
func ParseConfig(r io.Reader) (*Network, error) {
	var net Network
	dec := json.NewDecoder(r)
	if err := dec.Decode(&net); err != nil {
		return nil, err
	}
	if len(net.Layers) == 0 {
		return nil, simerr.ErrEmptyLayerList
	}
	for i, layer := range net.Layers {
		if err := validateLayer(i, layer); err != nil {
			return nil, &simerr.ConfigError{Layer: layer.L, Err: err}
		}
		if i > 0 {
			prev := net.Layers[i-1]
			if layer.ParamsIn.Cin != prev.ParamsOut.Cout {
				return nil, &simerr.ConfigError{Layer: layer.L, Err: simerr.ErrChannelMismatch}
			}
		}
	}
	return &net, nil
}

func validateLayer(_ int, layer Layer) error {
	if layer.ParamsWeight.Cout <= 0 {
		return simerr.ErrNonPositiveCout
	}
	if layer.ParamsWeight.Dilation != 0 && layer.ParamsWeight.Dilation != 1 {
		return simerr.ErrUnsupportedDilat
	}
	return nil
}
