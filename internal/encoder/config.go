package encoder

import (
	"github.com/pkg/errors"

	"github.com/born-ml/born-rl/internal/nn"
)

// Config selects and parameterises an encoder variant. Configs are plain
// values; an encoder copies its config at construction.
type Config interface {
	// Kind names the variant: "mlp", "cnn", "lstm" or "actor_critic".
	Kind() string
	// Validate reports the first invalid field.
	Validate() error
}

// MLPConfig configures an MLP encoder.
type MLPConfig struct {
	InputDims               []int // [features]
	HiddenLayerDims         []int
	HiddenLayerActivation   nn.Activation
	HiddenLayerUseLayerNorm bool
	OutputDims              []int // [features]
	OutputActivation        nn.Activation
	UseBias                 bool
}

// DefaultMLPConfig returns two hidden layers of 256 ReLU units with bias.
func DefaultMLPConfig(inputDim, outputDim int) MLPConfig {
	return MLPConfig{
		InputDims:             []int{inputDim},
		HiddenLayerDims:       []int{256, 256},
		HiddenLayerActivation: nn.ActivationReLU,
		OutputDims:            []int{outputDim},
		OutputActivation:      nn.ActivationLinear,
		UseBias:               true,
	}
}

// Kind returns "mlp".
func (c MLPConfig) Kind() string { return "mlp" }

// Validate checks dimensions and activations.
func (c MLPConfig) Validate() error {
	if err := checkDims("input_dims", c.InputDims, 1); err != nil {
		return err
	}
	if err := checkDims("output_dims", c.OutputDims, 1); err != nil {
		return err
	}
	for i, d := range c.HiddenLayerDims {
		if d <= 0 {
			return errors.Errorf("hidden_layer_dims[%d] must be positive, got %d", i, d)
		}
	}
	return checkActivations(c.HiddenLayerActivation, c.OutputActivation)
}

// FilterSpec describes one convolution of a CNN encoder.
type FilterSpec struct {
	OutChannels int
	Kernel      [2]int // [height, width]
	Stride      int
	Padding     int
}

// CNNConfig configures a CNN encoder.
type CNNConfig struct {
	InputDims        []int // [width, height, channels]
	FilterSpecifiers []FilterSpec
	CNNActivation    nn.Activation
	CNNUseLayerNorm  bool
	OutputDims       []int // [features]
	OutputActivation nn.Activation
	UseBias          bool
}

// DefaultCNNConfig returns two stride-2 4x4 ReLU convolutions with bias.
func DefaultCNNConfig(width, height, channels, outputDim int) CNNConfig {
	return CNNConfig{
		InputDims: []int{width, height, channels},
		FilterSpecifiers: []FilterSpec{
			{OutChannels: 16, Kernel: [2]int{4, 4}, Stride: 2, Padding: 1},
			{OutChannels: 32, Kernel: [2]int{4, 4}, Stride: 2, Padding: 1},
		},
		CNNActivation:    nn.ActivationReLU,
		OutputDims:       []int{outputDim},
		OutputActivation: nn.ActivationLinear,
		UseBias:          true,
	}
}

// Kind returns "cnn".
func (c CNNConfig) Kind() string { return "cnn" }

// Validate checks dimensions, filters and that every convolution leaves a
// non-empty feature map.
func (c CNNConfig) Validate() error {
	if err := checkDims("input_dims", c.InputDims, 3); err != nil {
		return err
	}
	if err := checkDims("output_dims", c.OutputDims, 1); err != nil {
		return err
	}
	if len(c.FilterSpecifiers) == 0 {
		return errors.New("filter_specifiers must not be empty")
	}
	_, _, _, err := c.featureMapSize()
	if err != nil {
		return err
	}
	return checkActivations(c.CNNActivation, c.OutputActivation)
}

// featureMapSize returns the (channels, height, width) after the conv stack.
func (c CNNConfig) featureMapSize() (channels, height, width int, err error) {
	width, height, channels = c.InputDims[0], c.InputDims[1], c.InputDims[2]
	for i, f := range c.FilterSpecifiers {
		if f.OutChannels <= 0 || f.Kernel[0] <= 0 || f.Kernel[1] <= 0 || f.Stride <= 0 || f.Padding < 0 {
			return 0, 0, 0, errors.Errorf("filter_specifiers[%d] is invalid: %+v", i, f)
		}
		height = (height+2*f.Padding-f.Kernel[0])/f.Stride + 1
		width = (width+2*f.Padding-f.Kernel[1])/f.Stride + 1
		if height <= 0 || width <= 0 {
			return 0, 0, 0, errors.Errorf("filter_specifiers[%d] leaves an empty %dx%d feature map", i, height, width)
		}
		channels = f.OutChannels
	}
	return channels, height, width, nil
}

// LSTMConfig configures an LSTM encoder.
//
// BatchMajor selects the observation layout: (batch, time, features) when
// true, (time, batch, features) when false. State is always batch first.
type LSTMConfig struct {
	InputDims     []int // [features]
	HiddenDim     int
	NumLSTMLayers int
	BatchMajor    bool
	OutputDims    []int // [features]
	UseBias       bool
}

// DefaultLSTMConfig returns one batch-major layer of 256 units with bias.
func DefaultLSTMConfig(inputDim, outputDim int) LSTMConfig {
	return LSTMConfig{
		InputDims:     []int{inputDim},
		HiddenDim:     256,
		NumLSTMLayers: 1,
		BatchMajor:    true,
		OutputDims:    []int{outputDim},
		UseBias:       true,
	}
}

// Kind returns "lstm".
func (c LSTMConfig) Kind() string { return "lstm" }

// Validate checks dimensions and layer counts.
func (c LSTMConfig) Validate() error {
	if err := checkDims("input_dims", c.InputDims, 1); err != nil {
		return err
	}
	if err := checkDims("output_dims", c.OutputDims, 1); err != nil {
		return err
	}
	if c.HiddenDim <= 0 {
		return errors.Errorf("hidden_dim must be positive, got %d", c.HiddenDim)
	}
	if c.NumLSTMLayers <= 0 {
		return errors.Errorf("num_lstm_layers must be positive, got %d", c.NumLSTMLayers)
	}
	return nil
}

// ActorCriticConfig configures an actor-critic encoder.
//
// With Shared, one encoder built from Actor serves both paths and Critic must
// be nil. Otherwise a nil Critic means "same configuration as Actor, separate
// weights". Parallel runs the two paths concurrently.
type ActorCriticConfig struct {
	Actor    Config
	Critic   Config
	Shared   bool
	Parallel bool
}

// Kind returns "actor_critic".
func (c ActorCriticConfig) Kind() string { return "actor_critic" }

// Validate checks both sub-configs.
func (c ActorCriticConfig) Validate() error {
	if c.Actor == nil {
		return errors.New("actor config is required")
	}
	if c.Shared && c.Critic != nil {
		return errors.New("critic config must be nil for a shared encoder")
	}
	for _, sub := range []struct {
		key string
		cfg Config
	}{{KeyActor, c.Actor}, {KeyCritic, c.Critic}} {
		if sub.cfg == nil {
			continue
		}
		if sub.cfg.Kind() == c.Kind() {
			return errors.Errorf("%s config cannot be an actor-critic config", sub.key)
		}
		if err := sub.cfg.Validate(); err != nil {
			return errors.Wrapf(err, "%s", sub.key)
		}
	}
	return nil
}

func checkDims(field string, dims []int, n int) error {
	if len(dims) != n {
		return errors.Errorf("%s must have %d entries, got %v", field, n, dims)
	}
	for i, d := range dims {
		if d <= 0 {
			return errors.Errorf("%s[%d] must be positive, got %d", field, i, d)
		}
	}
	return nil
}

func checkActivations(acts ...nn.Activation) error {
	for _, a := range acts {
		if !a.Valid() {
			return errors.Errorf("unsupported activation %v", a)
		}
	}
	return nil
}
