package encoder

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// layerNormEpsilon matches the Keras LayerNormalization default.
const layerNormEpsilon = 1e-3

// MLPEncoder encodes (batch, features) observations with a stack of dense
// layers. It is stateless: state_out is always empty, whatever the caller
// passes as state_in.
type MLPEncoder[B tensor.Backend] struct {
	contract
	config  MLPConfig
	net     *nn.Sequential[B]
	backend B
}

// NewMLPEncoder validates cfg and builds an MLP encoder on backend.
func NewMLPEncoder[B tensor.Backend](cfg MLPConfig, backend B) (*MLPEncoder[B], error) {
	return newMLPEncoder(cfg, backend, cfg.Kind())
}

func newMLPEncoder[B tensor.Backend](cfg MLPConfig, backend B, name string) (*MLPEncoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s config", cfg.Kind())
	}

	net := newMLPNet(cfg, backend)
	e := &MLPEncoder[B]{
		contract: contract{
			name: name,
			inputs: spec.NewDict().
				Set(KeyObs, spec.Required(featureSpec(cfg.InputDims[0]))),
			outputs: spec.NewDict().
				Set(KeyEncoderOut, spec.Required(featureSpec(cfg.OutputDims[0]))).
				Set(KeyStateOut, spec.AnyShape()),
		},
		config:  cfg,
		net:     net,
		backend: backend,
	}
	klog.V(2).InfoS("Built encoder", "encoder", name, "kind", cfg.Kind(),
		"hidden", cfg.HiddenLayerDims, "parameters", e.NumParameters())
	return e, nil
}

// newMLPNet builds dense -> [layer norm] -> activation for every hidden layer,
// then the output dense layer and its activation.
func newMLPNet[B tensor.Backend](cfg MLPConfig, backend B) *nn.Sequential[B] {
	var layers []nn.Module[B]
	in := cfg.InputDims[0]
	for _, dim := range cfg.HiddenLayerDims {
		layers = append(layers, nn.NewLinear(in, dim, cfg.UseBias, backend))
		if cfg.HiddenLayerUseLayerNorm {
			layers = append(layers, nn.NewLayerNorm(dim, layerNormEpsilon, backend))
		}
		layers = append(layers, nn.NewActivation[B](cfg.HiddenLayerActivation))
		in = dim
	}
	layers = append(layers,
		nn.NewLinear(in, cfg.OutputDims[0], cfg.UseBias, backend),
		nn.NewActivation[B](cfg.OutputActivation),
	)
	return nn.NewSequential(layers...)
}

// Config returns the encoder's configuration.
func (e *MLPEncoder[B]) Config() MLPConfig {
	return e.config
}

// InitialState returns an empty dict.
func (e *MLPEncoder[B]) InitialState(int) *nested.Dict {
	return nested.New()
}

// Forward encodes inputs[obs] into encoder_out.
func (e *MLPEncoder[B]) Forward(inputs *nested.Dict) (*nested.Dict, error) {
	return e.forward(inputs, func(in *nested.Dict) (*nested.Dict, error) {
		obs, _ := in.Get(KeyObs)
		x := tensor.CastRaw[float32](obs, e.backend)
		return nested.New().
			Set(KeyEncoderOut, e.net.Forward(x).Raw()).
			SetEmpty(KeyStateOut), nil
	})
}

// Parameters returns the dense and layer norm parameters.
func (e *MLPEncoder[B]) Parameters() []*nn.Parameter[B] {
	return e.net.Parameters()
}

// NumParameters returns the number of scalar parameters.
func (e *MLPEncoder[B]) NumParameters() int {
	return nn.CountParameters(e.Parameters())
}
