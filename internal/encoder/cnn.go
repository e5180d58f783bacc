package encoder

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// CNNEncoder encodes (batch, width, height, channels) images with a stack of
// convolutions, a flatten and one dense projection.
//
// It keeps no memory: state_in, when given, is passed through to state_out
// unchanged. seq_lens is accepted and ignored.
type CNNEncoder[B tensor.Backend] struct {
	contract
	config  CNNConfig
	net     *nn.Sequential[B]
	backend B
}

// NewCNNEncoder validates cfg and builds a CNN encoder on backend.
func NewCNNEncoder[B tensor.Backend](cfg CNNConfig, backend B) (*CNNEncoder[B], error) {
	return newCNNEncoder(cfg, backend, cfg.Kind())
}

func newCNNEncoder[B tensor.Backend](cfg CNNConfig, backend B, name string) (*CNNEncoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s config", cfg.Kind())
	}

	net := newCNNNet(cfg, backend)
	obs := spec.MustParse("b, w, h, c",
		spec.Bind("w", cfg.InputDims[0]),
		spec.Bind("h", cfg.InputDims[1]),
		spec.Bind("c", cfg.InputDims[2]))
	e := &CNNEncoder[B]{
		contract: contract{
			name: name,
			inputs: spec.NewDict().
				Set(KeyObs, spec.Required(obs)).
				Set(KeyStateIn, spec.Optional()).
				Set(KeySeqLens, spec.Optional()),
			outputs: spec.NewDict().
				Set(KeyEncoderOut, spec.Required(featureSpec(cfg.OutputDims[0]))).
				Set(KeyStateOut, spec.AnyShape()),
		},
		config:  cfg,
		net:     net,
		backend: backend,
	}
	klog.V(2).InfoS("Built encoder", "encoder", name, "kind", cfg.Kind(),
		"filters", len(cfg.FilterSpecifiers), "parameters", e.NumParameters())
	return e, nil
}

// newCNNNet builds conv -> [channel layer norm] -> activation per filter,
// then flatten, dense and the output activation. Input is NCHW.
func newCNNNet[B tensor.Backend](cfg CNNConfig, backend B) *nn.Sequential[B] {
	var layers []nn.Module[B]
	in := cfg.InputDims[2]
	for _, f := range cfg.FilterSpecifiers {
		layers = append(layers, nn.NewConv2D(in, f.OutChannels, f.Kernel[0], f.Kernel[1], f.Stride, f.Padding, cfg.UseBias, backend))
		if cfg.CNNUseLayerNorm {
			layers = append(layers, nn.NewChannelLayerNorm(f.OutChannels, layerNormEpsilon, backend))
		}
		layers = append(layers, nn.NewActivation[B](cfg.CNNActivation))
		in = f.OutChannels
	}

	// Validate has already checked the geometry.
	channels, height, width, _ := cfg.featureMapSize()
	layers = append(layers,
		nn.NewFlatten[B](),
		nn.NewLinear(channels*height*width, cfg.OutputDims[0], cfg.UseBias, backend),
		nn.NewActivation[B](cfg.OutputActivation),
	)
	return nn.NewSequential(layers...)
}

// Config returns the encoder's configuration.
func (e *CNNEncoder[B]) Config() CNNConfig {
	return e.config
}

// InitialState returns an empty dict.
func (e *CNNEncoder[B]) InitialState(int) *nested.Dict {
	return nested.New()
}

// Forward encodes inputs[obs] into encoder_out and passes state_in through.
func (e *CNNEncoder[B]) Forward(inputs *nested.Dict) (*nested.Dict, error) {
	return e.forward(inputs, func(in *nested.Dict) (*nested.Dict, error) {
		obs, _ := in.Get(KeyObs)
		// (b, w, h, c) -> (b, c, h, w)
		x := tensor.CastRaw[float32](obs, e.backend).Transpose(0, 3, 2, 1)

		out := nested.New().Set(KeyEncoderOut, e.net.Forward(x).Raw())
		state, _ := in.Lookup(KeyStateIn)
		return out.SetValue(KeyStateOut, state), nil
	})
}

// Parameters returns the convolution, layer norm and dense parameters.
func (e *CNNEncoder[B]) Parameters() []*nn.Parameter[B] {
	return e.net.Parameters()
}

// NumParameters returns the number of scalar parameters.
func (e *CNNEncoder[B]) NumParameters() int {
	return nn.CountParameters(e.Parameters())
}
