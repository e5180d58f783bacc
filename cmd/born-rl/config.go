package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/born-rl/encoder"
	"github.com/born-ml/born-rl/nn"
)

// encoderFlags are the command line knobs shared by describe and forward.
type encoderFlags struct {
	inputDims   []int
	hidden      []int
	output      int
	activation  string
	layerNorm   bool
	noBias      bool
	lstmLayers  int
	timeMajor   bool
	actorCritic bool
	shared      bool
	parallel    bool
}

func (f *encoderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntSliceVar(&f.inputDims, "input-dims", nil, "observation dims: [features] or [width,height,channels] for cnn")
	fs.IntSliceVar(&f.hidden, "hidden", nil, "hidden layer sizes (mlp) or hidden size (lstm)")
	fs.IntVar(&f.output, "output", 16, "encoder output features")
	fs.StringVar(&f.activation, "activation", "relu", "hidden activation: linear, relu, tanh, sigmoid, silu, elu")
	fs.BoolVar(&f.layerNorm, "layernorm", false, "add layer norm after hidden layers")
	fs.BoolVar(&f.noBias, "no-bias", false, "disable bias terms")
	fs.IntVar(&f.lstmLayers, "lstm-layers", 1, "number of stacked lstm layers")
	fs.BoolVar(&f.timeMajor, "time-major", false, "lstm observations are (time, batch, features)")
	fs.BoolVar(&f.actorCritic, "actor-critic", false, "wrap the encoder in an actor-critic pair")
	fs.BoolVar(&f.shared, "shared", false, "actor and critic share one encoder")
	fs.BoolVar(&f.parallel, "parallel", false, "run actor and critic concurrently")
}

// config turns the flags into an encoder config of the given kind.
func (f *encoderFlags) config(kind string) (encoder.Config, error) {
	act, err := nn.ParseActivation(f.activation)
	if err != nil {
		return nil, err
	}

	var cfg encoder.Config
	switch kind {
	case "mlp":
		c := encoder.DefaultMLPConfig(firstOr(f.inputDims, 8), f.output)
		if len(f.hidden) > 0 {
			c.HiddenLayerDims = f.hidden
		}
		c.HiddenLayerActivation = act
		c.HiddenLayerUseLayerNorm = f.layerNorm
		c.UseBias = !f.noBias
		cfg = c
	case "cnn":
		dims := f.inputDims
		if len(dims) == 0 {
			dims = []int{84, 84, 3}
		}
		if len(dims) != 3 {
			return nil, errors.Errorf("cnn needs --input-dims width,height,channels, got %v", dims)
		}
		c := encoder.DefaultCNNConfig(dims[0], dims[1], dims[2], f.output)
		c.CNNActivation = act
		c.CNNUseLayerNorm = f.layerNorm
		c.UseBias = !f.noBias
		cfg = c
	case "lstm":
		c := encoder.DefaultLSTMConfig(firstOr(f.inputDims, 8), f.output)
		c.HiddenDim = firstOr(f.hidden, c.HiddenDim)
		c.NumLSTMLayers = f.lstmLayers
		c.BatchMajor = !f.timeMajor
		c.UseBias = !f.noBias
		cfg = c
	default:
		return nil, errors.Errorf("unknown encoder kind %q (want mlp, cnn or lstm)", kind)
	}

	if f.actorCritic {
		cfg = encoder.ActorCriticConfig{Actor: cfg, Shared: f.shared, Parallel: f.parallel}
	}
	return cfg, cfg.Validate()
}

func firstOr(values []int, fallback int) int {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}
