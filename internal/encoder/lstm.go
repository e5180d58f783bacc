package encoder

import (
	"strconv"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// LSTMEncoder encodes observation sequences with stacked LSTM layers and a
// per-step dense projection.
//
// Recurrent state crosses the encoder boundary batch first as
// state_in.h / state_in.c of shape (batch, layers, hidden) and comes back in
// the same layout under state_out. Inside, it is handled layers first.
type LSTMEncoder[B tensor.Backend] struct {
	contract
	config  LSTMConfig
	layers  []*nn.LSTM[B] // layer 0 consumes the observations
	linear  *nn.Linear[B]
	backend B
}

// NewLSTMEncoder validates cfg and builds an LSTM encoder on backend.
func NewLSTMEncoder[B tensor.Backend](cfg LSTMConfig, backend B) (*LSTMEncoder[B], error) {
	return newLSTMEncoder(cfg, backend, cfg.Kind())
}

func newLSTMEncoder[B tensor.Backend](cfg LSTMConfig, backend B, name string) (*LSTMEncoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s config", cfg.Kind())
	}

	layers := make([]*nn.LSTM[B], cfg.NumLSTMLayers)
	in := cfg.InputDims[0]
	for i := range layers {
		layers[i] = nn.NewLSTM(in, cfg.HiddenDim, cfg.UseBias, backend)
		in = cfg.HiddenDim
	}
	linear := nn.NewLinear(cfg.HiddenDim, cfg.OutputDims[0], cfg.UseBias, backend)

	seqDims := "b, t, d"
	if !cfg.BatchMajor {
		seqDims = "t, b, d"
	}
	state := stateSpec(cfg.NumLSTMLayers, cfg.HiddenDim)
	stateOut := stateSpec(cfg.NumLSTMLayers, cfg.HiddenDim, spec.WithDType(tensor.Float32))

	e := &LSTMEncoder[B]{
		contract: contract{
			name: name,
			inputs: spec.NewDict().
				Set(KeyObs, spec.Required(spec.MustParse(seqDims, spec.Bind("d", cfg.InputDims[0])))).
				Set(nested.JoinPath(KeyStateIn, KeyHidden), spec.Required(state)).
				Set(nested.JoinPath(KeyStateIn, KeyCell), spec.Required(state)).
				Set(KeySeqLens, spec.Optional()),
			outputs: spec.NewDict().
				Set(KeyEncoderOut, spec.Required(spec.MustParse(seqDims, spec.Bind("d", cfg.OutputDims[0])))).
				Set(nested.JoinPath(KeyStateOut, KeyHidden), spec.Required(stateOut)).
				Set(nested.JoinPath(KeyStateOut, KeyCell), spec.Required(stateOut)),
		},
		config:  cfg,
		layers:  layers,
		linear:  linear,
		backend: backend,
	}
	e.relate = e.checkBatch
	klog.V(2).InfoS("Built encoder", "encoder", name, "kind", cfg.Kind(),
		"layers", cfg.NumLSTMLayers, "hidden", cfg.HiddenDim, "batchMajor", cfg.BatchMajor,
		"parameters", e.NumParameters())
	return e, nil
}

// Config returns the encoder's configuration.
func (e *LSTMEncoder[B]) Config() LSTMConfig {
	return e.config
}

// InitialState returns zero h and c of shape (batchSize, layers, hidden).
func (e *LSTMEncoder[B]) InitialState(batchSize int) *nested.Dict {
	shape := tensor.Shape{batchSize, e.config.NumLSTMLayers, e.config.HiddenDim}
	return nested.New().
		Set(KeyHidden, tensor.MustRaw(shape, tensor.Float32, e.backend.Device())).
		Set(KeyCell, tensor.MustRaw(shape, tensor.Float32, e.backend.Device()))
}

// Forward runs the observation sequence through every layer, starting from
// state_in, and projects the last layer's outputs.
func (e *LSTMEncoder[B]) Forward(inputs *nested.Dict) (*nested.Dict, error) {
	return e.forward(inputs, e.run)
}

// checkBatch reports a state tensor whose batch differs from obs's. The specs
// leave "b" unbound, so each input passes on its own.
func (e *LSTMEncoder[B]) checkBatch(in *nested.Dict) *spec.Violation {
	obs, _ := in.Get(KeyObs)
	batch := obs.Shape()[1]
	if e.config.BatchMajor {
		batch = obs.Shape()[0]
	}
	for _, key := range []string{KeyHidden, KeyCell} {
		path := nested.JoinPath(KeyStateIn, key)
		state, _ := in.Get(path)
		if got := state.Shape()[0]; got != batch {
			entry, _ := e.inputs.Get(path)
			return &spec.Violation{
				Path:     path,
				Reason:   spec.DimMismatch,
				Dim:      "b",
				Expected: batch,
				Actual:   got,
				Spec:     entry.TensorSpec(),
				Shape:    state.Shape(),
			}
		}
	}
	return nil
}

func (e *LSTMEncoder[B]) run(in *nested.Dict) (*nested.Dict, error) {
	obs, _ := in.Get(KeyObs)
	hIn, _ := in.Get(nested.JoinPath(KeyStateIn, KeyHidden))
	cIn, _ := in.Get(nested.JoinPath(KeyStateIn, KeyCell))

	x := tensor.CastRaw[float32](obs, e.backend)
	if e.config.BatchMajor {
		x = x.Transpose(1, 0, 2) // (b, t, d) -> (t, b, d)
	}

	// (b, l, h) -> (l, b, h), then one (b, h) slice per layer.
	hs := tensor.CastRaw[float32](hIn, e.backend).Transpose(1, 0, 2).Unstack(0)
	cs := tensor.CastRaw[float32](cIn, e.backend).Transpose(1, 0, 2).Unstack(0)

	hOut := make([]*tensor.Tensor[float32, B], len(e.layers))
	cOut := make([]*tensor.Tensor[float32, B], len(e.layers))
	for i, layer := range e.layers {
		x, hOut[i], cOut[i] = layer.Forward(x, hs[i], cs[i])
	}

	// Project every time step: (t, b, h) -> (t*b, h) -> (t*b, d) -> (t, b, d).
	shape := x.Shape()
	steps, batch := shape[0], shape[1]
	y := e.linear.Forward(x.Reshape(steps*batch, e.config.HiddenDim)).
		Reshape(steps, batch, e.config.OutputDims[0])
	if e.config.BatchMajor {
		y = y.Transpose(1, 0, 2)
	}

	return nested.New().
		Set(KeyEncoderOut, y.Raw()).
		Set(nested.JoinPath(KeyStateOut, KeyHidden), tensor.Stack(hOut, 1).Raw()).
		Set(nested.JoinPath(KeyStateOut, KeyCell), tensor.Stack(cOut, 1).Raw()), nil
}

// Parameters returns the parameters of every LSTM layer followed by the
// output projection.
func (e *LSTMEncoder[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for i, layer := range e.layers {
		params = append(params, nn.Prefixed("lstm."+strconv.Itoa(i), layer.Parameters())...)
	}
	return append(params, nn.Prefixed("linear", e.linear.Parameters())...)
}

// NumParameters returns the number of scalar parameters.
func (e *LSTMEncoder[B]) NumParameters() int {
	return nn.CountParameters(e.Parameters())
}
