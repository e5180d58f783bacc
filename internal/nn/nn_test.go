package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-rl/internal/backend/cpu"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/tensor"
)

type cpuTensor = tensor.Tensor[float32, *cpu.CPUBackend]

func fromSlice(t *testing.T, data []float32, shape tensor.Shape, backend *cpu.CPUBackend) *cpuTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, backend)
	require.NoError(t, err)
	return x
}

// TestParameter tests Parameter accessors and prefixing.
func TestParameter(t *testing.T) {
	backend := cpu.New()
	data := fromSlice(t, []float32{1, 2, 3}, tensor.Shape{3}, backend)
	param := nn.NewParameter("weight", data)

	assert.Equal(t, "weight", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Equal(t, tensor.Shape{3}, param.Shape())
	assert.Equal(t, 3, param.NumElements())

	renamed := nn.Prefixed("layer", []*nn.Parameter[*cpu.CPUBackend]{param})
	assert.Equal(t, "layer.weight", renamed[0].Name())
	assert.Equal(t, "weight", param.Name(), "original name must be unchanged")
	assert.Same(t, data, renamed[0].Tensor())
}

// TestLinear tests Linear shapes and the affine transform.
func TestLinear(t *testing.T) {
	backend := cpu.New()

	t.Run("Shapes", func(t *testing.T) {
		layer := nn.NewLinear(10, 5, true, backend)
		assert.Equal(t, 10, layer.InFeatures())
		assert.Equal(t, 5, layer.OutFeatures())
		assert.Equal(t, tensor.Shape{5, 10}, layer.Weight().Shape())
		assert.Equal(t, tensor.Shape{5}, layer.Bias().Shape())
		assert.Len(t, layer.Parameters(), 2)

		out := layer.Forward(tensor.Randn(tensor.Shape{4, 10}, backend))
		assert.Equal(t, tensor.Shape{4, 5}, out.Shape())
	})

	t.Run("NoBias", func(t *testing.T) {
		layer := nn.NewLinear(3, 2, false, backend)
		assert.Nil(t, layer.Bias())
		assert.Len(t, layer.Parameters(), 1)
	})

	t.Run("KnownWeights", func(t *testing.T) {
		layer := nn.NewLinear(2, 3, true, backend)
		copy(layer.Weight().Tensor().Data(), []float32{1, 2, 3, 4, 5, 6})
		copy(layer.Bias().Tensor().Data(), []float32{1, 1, 1})

		out := layer.Forward(fromSlice(t, []float32{1, 1}, tensor.Shape{1, 2}, backend))
		assert.Equal(t, []float32{4, 8, 12}, out.Data())
	})

	t.Run("WrongFeatures", func(t *testing.T) {
		layer := nn.NewLinear(3, 2, true, backend)
		assert.Panics(t, func() { layer.Forward(tensor.Zeros[float32](tensor.Shape{1, 4}, backend)) })
	})
}

// TestConv2D tests the convolution layer with bias.
func TestConv2D(t *testing.T) {
	backend := cpu.New()
	conv := nn.NewConv2D(1, 1, 2, 2, 1, 0, true, backend)
	copy(conv.Weight().Tensor().Data(), []float32{1, 0, 0, 1})
	conv.Bias().Tensor().Data()[0] = 1

	input := tensor.Arange(1, tensor.Shape{1, 1, 3, 3}, backend)
	out := conv.Forward(input)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float32{7, 9, 13, 15}, out.Data())

	outH, outW := conv.OutputSize(3, 3)
	assert.Equal(t, []int{2, 2}, []int{outH, outW})

	strided := nn.NewConv2D(3, 4, 4, 4, 2, 1, false, backend)
	h, w := strided.OutputSize(84, 84)
	assert.Equal(t, []int{42, 42}, []int{h, w})
	assert.Len(t, strided.Parameters(), 1)
}

// TestLayerNorm tests normalization over the last dimension.
func TestLayerNorm(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewLayerNorm(3, 1e-5, backend)

	out := norm.Forward(fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend))
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.InDeltaSlice(t, []float32{-1.2247, 0, 1.2247, -1.2247, 0, 1.2247}, out.Data(), 1e-3)
	assert.Len(t, norm.Parameters(), 2)
}

// TestChannelLayerNorm tests normalization over channels of an NCHW map.
func TestChannelLayerNorm(t *testing.T) {
	backend := cpu.New()
	norm := nn.NewChannelLayerNorm(2, 1e-5, backend)

	// Channel 0 holds [1, 3], channel 1 holds [3, 1] across two positions.
	input := fromSlice(t, []float32{1, 3, 3, 1}, tensor.Shape{1, 2, 1, 2}, backend)
	out := norm.Forward(input)
	assert.Equal(t, tensor.Shape{1, 2, 1, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{-1, 1, 1, -1}, out.Data(), 1e-4)
}

// TestActivation tests parsing and module resolution.
func TestActivation(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name string
		want nn.Activation
	}{
		{"", nn.ActivationLinear},
		{"linear", nn.ActivationLinear},
		{"ReLU", nn.ActivationReLU},
		{"tanh", nn.ActivationTanh},
		{"sigmoid", nn.ActivationSigmoid},
		{"swish", nn.ActivationSiLU},
		{"elu", nn.ActivationELU},
	}
	for _, tt := range tests {
		got, err := nn.ParseActivation(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := nn.ParseActivation("gelu-ish")
	assert.Error(t, err)
	assert.Equal(t, "relu", nn.ActivationReLU.String())
	assert.False(t, nn.Activation(42).Valid())

	x := fromSlice(t, []float32{-1, 0, 2}, tensor.Shape{3}, backend)
	assert.Same(t, x, nn.NewActivation[*cpu.CPUBackend](nn.ActivationLinear).Forward(x))
	assert.Equal(t, []float32{0, 0, 2}, nn.NewActivation[*cpu.CPUBackend](nn.ActivationReLU).Forward(x).Data())
	assert.InDeltaSlice(t, []float32{-0.7615942, 0, 0.9640276},
		nn.NewActivation[*cpu.CPUBackend](nn.ActivationTanh).Forward(x).Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{-0.63212056, 0, 2},
		nn.NewActivation[*cpu.CPUBackend](nn.ActivationELU).Forward(x).Data(), 1e-6)
	assert.Panics(t, func() { nn.NewActivation[*cpu.CPUBackend](nn.Activation(42)) })
}

// TestSequential tests chaining and parameter naming.
func TestSequential(t *testing.T) {
	backend := cpu.New()
	model := nn.NewSequential[*cpu.CPUBackend](
		nn.NewFlatten[*cpu.CPUBackend](),
		nn.NewLinear(6, 4, true, backend),
		nn.NewActivation[*cpu.CPUBackend](nn.ActivationReLU),
		nn.NewLinear(4, 2, false, backend),
	)

	out := model.Forward(tensor.Randn(tensor.Shape{5, 2, 3}, backend))
	assert.Equal(t, tensor.Shape{5, 2}, out.Shape())
	assert.Equal(t, 4, model.Len())

	names := make([]string, 0)
	for _, p := range model.Parameters() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"1.weight", "1.bias", "3.weight"}, names)
	assert.Equal(t, 6*4+4+4*2, nn.CountParameters(model.Parameters()))
	assert.Panics(t, func() { model.Module(4) })
}

// TestLSTM tests the recurrence against a hand-computed sequence.
func TestLSTM(t *testing.T) {
	backend := cpu.New()

	t.Run("ForgetBias", func(t *testing.T) {
		lstm := nn.NewLSTM(2, 3, true, backend)
		params := lstm.Parameters()
		require.Len(t, params, 3)
		assert.Equal(t, tensor.Shape{12, 2}, params[0].Shape())
		assert.Equal(t, tensor.Shape{12, 3}, params[1].Shape())
		assert.Equal(t, []float32{0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0}, params[2].Tensor().Data())
	})

	t.Run("ZeroWeights", func(t *testing.T) {
		lstm := nn.NewLSTM(2, 1, true, backend)
		for _, p := range lstm.Parameters()[:2] {
			clear(p.Tensor().Data())
		}

		// With zero weights every gate sees only the bias: i=o=0.5, f=sigmoid(1), g=0.
		x := tensor.Randn(tensor.Shape{2, 1, 2}, backend)
		h0 := tensor.Zeros[float32](tensor.Shape{1, 1}, backend)
		c0 := tensor.Ones[float32](tensor.Shape{1, 1}, backend)

		seq, h, c := lstm.Forward(x, h0, c0)
		assert.Equal(t, tensor.Shape{2, 1, 1}, seq.Shape())
		assert.InDeltaSlice(t, []float32{0.31185627, 0.24438639}, seq.Data(), 1e-6)
		assert.InDelta(t, 0.24438639, h.Data()[0], 1e-6)
		assert.InDelta(t, 0.53444665, c.Data()[0], 1e-6)
	})

	t.Run("Shapes", func(t *testing.T) {
		lstm := nn.NewLSTM(4, 3, false, backend)
		assert.Len(t, lstm.Parameters(), 2)

		x := tensor.Randn(tensor.Shape{5, 2, 4}, backend)
		state := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
		seq, h, c := lstm.Forward(x, state, state)
		assert.Equal(t, tensor.Shape{5, 2, 3}, seq.Shape())
		assert.Equal(t, tensor.Shape{2, 3}, h.Shape())
		assert.Equal(t, tensor.Shape{2, 3}, c.Shape())

		last := seq.Unstack(0)[4]
		assert.Equal(t, h.Data(), last.Data())

		assert.Panics(t, func() { lstm.Forward(x, tensor.Zeros[float32](tensor.Shape{3, 3}, backend), state) })
	})
}
