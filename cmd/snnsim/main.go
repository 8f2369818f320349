// Command snnsim runs the cycle-accurate accelerator simulator against a
// DRAM image and a layer config, writing per-layer statistics to stdout
// as CSV.
package main

import (
	"fmt"
	"os"

	"github.com/hyperifyio/snnsim/internal/config"
	"github.com/hyperifyio/snnsim/internal/dram"
	"github.com/hyperifyio/snnsim/internal/filterbuffer"
	"github.com/hyperifyio/snnsim/internal/model"
	"github.com/hyperifyio/snnsim/internal/runner"
	"github.com/hyperifyio/snnsim/internal/settings"
	"github.com/hyperifyio/snnsim/internal/stats"
	"github.com/hyperifyio/snnsim/pkg/log"
)

// Exit codes per the CLI contract: 0 success, 1 configuration/usage error,
// 2 simulation failure (invariant violation or quiescence failure).
const (
	exitOK          = 0
	exitUsageError  = 1
	exitSimFailure  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: snnsim <dram_image.bin> <config.json> [-settings settings.yaml]")
		return exitUsageError
	}
	imagePath, configPath := args[0], args[1]
	var settingsPath string
	for i := 2; i+1 < len(args); i++ {
		if args[i] == "-settings" {
			settingsPath = args[i+1]
		}
	}

	cfg := settings.Default()
	if settingsPath != "" {
		f, err := os.Open(settingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snnsim: opening settings: %v\n", err)
			return exitUsageError
		}
		defer f.Close()
		cfg, err = settings.Load(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snnsim: parsing settings: %v\n", err)
			return exitUsageError
		}
	}

	configFile, err := os.Open(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: opening config: %v\n", err)
		return exitUsageError
	}
	defer configFile.Close()

	net, err := config.ParseConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: parsing config: %v\n", err)
		return exitUsageError
	}

	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: reading dram image: %v\n", err)
		return exitUsageError
	}
	img := dram.NewImage(imageBytes)

	log.Printf(log.Info, "loaded dram image: %d bytes, %d layers", img.Len(), len(net.Layers))

	layers, err := buildLayers(net, img, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: building layers: %v\n", err)
		return exitUsageError
	}

	acc, _, err := runner.RunNetwork(net, layers, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: simulation failed: %v\n", err)
		return exitSimFailure
	}

	if err := stats.WriteCSV(os.Stdout, acc); err != nil {
		fmt.Fprintf(os.Stderr, "snnsim: writing csv: %v\n", err)
		return exitSimFailure
	}
	return exitOK
}

// buildLayers constructs one model.Layer per config.Layer entry. Real
// deployments vary the DRAM layout scheme per network; this wiring uses
// the straightforward row*width+col spine addressing BuildSpineSource
// implements.
func buildLayers(net *config.Network, img *dram.Image, cfg settings.Settings) ([]*model.Layer, error) {
	layers := make([]*model.Layer, 0, len(net.Layers))
	for _, l := range net.Layers {
		width := l.ParamsIn.W
		if width == 0 {
			width = l.ParamsIn.Cin
		}
		region := dram.Range{Offset: 0, Length: img.Len()}
		spines, err := runner.BuildSpineSource(img, region, dram.Packed{}, width)
		if err != nil {
			return nil, err
		}
		weights := func(tile, rowID int) (filterbuffer.Row, bool) {
			return filterbuffer.Row{}, false
		}
		conv := model.NewConvLayer(
			l.L, l.Name,
			l.ParamsWeight.Kh, l.ParamsWeight.Kw,
			l.ParamsWeight.Stride, l.ParamsWeight.Padding,
			l.ParamsIn.H, l.ParamsIn.W,
			l.ParamsIn.Cin, l.ParamsWeight.Cout,
			1, spines, weights, nil,
		)
		layers = append(layers, conv.Layer)
	}
	return layers, nil
}
