package nn

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/tensor"
)

// LSTM is a single long short-term memory layer over a time-major sequence.
//
// For every time step t:
//
//	z   = x_t @ W_x.T + h_{t-1} @ W_h.T + b      [batch, 4*hidden]
//	i, f, g, o = chunk(z, 4)                     (input, forget, cell, output)
//	c_t = sigmoid(f) * c_{t-1} + sigmoid(i) * tanh(g)
//	h_t = sigmoid(o) * tanh(c_t)
//
// The gate order matches Keras. The forget slice of the bias starts at 1 so a
// fresh layer keeps its cell state by default.
//
// Example:
//
//	lstm := nn.NewLSTM(16, 32, true, backend)
//	seq, h, c := lstm.Forward(x, h0, c0) // x: [T, B, 16], h0/c0: [B, 32]
type LSTM[B tensor.Backend] struct {
	inputSize  int
	hiddenSize int

	inputWeight     *Parameter[B] // [4*hidden, input]
	recurrentWeight *Parameter[B] // [4*hidden, hidden]
	bias            *Parameter[B] // [4*hidden] or nil

	sigmoid *Sigmoid[B]
	tanh    *Tanh[B]
}

// NewLSTM creates an LSTM layer with Xavier-initialized weights.
// Panics if either size is not positive.
func NewLSTM[B tensor.Backend](inputSize, hiddenSize int, useBias bool, backend B) *LSTM[B] {
	if inputSize <= 0 || hiddenSize <= 0 {
		panic(fmt.Sprintf("lstm: invalid sizes input=%d, hidden=%d", inputSize, hiddenSize))
	}

	gates := 4 * hiddenSize
	l := &LSTM[B]{
		inputSize:       inputSize,
		hiddenSize:      hiddenSize,
		inputWeight:     NewParameter("input_weight", Xavier(inputSize, gates, tensor.Shape{gates, inputSize}, backend)),
		recurrentWeight: NewParameter("recurrent_weight", Xavier(hiddenSize, gates, tensor.Shape{gates, hiddenSize}, backend)),
		sigmoid:         NewSigmoid[B](),
		tanh:            NewTanh[B](),
	}
	if useBias {
		bias := Zeros(tensor.Shape{gates}, backend)
		forget := bias.Data()[hiddenSize : 2*hiddenSize]
		for i := range forget {
			forget[i] = 1
		}
		l.bias = NewParameter("bias", bias)
	}
	return l
}

// Forward runs the layer over a time-major sequence.
//
// Shapes:
//   - x: [time, batch, input]
//   - h0, c0: [batch, hidden]
//   - seq: [time, batch, hidden], the hidden state after every step
//   - h, c: [batch, hidden], the state after the last step
func (l *LSTM[B]) Forward(x, h0, c0 *tensor.Tensor[float32, B]) (seq, h, c *tensor.Tensor[float32, B]) {
	xShape := x.Shape()
	if len(xShape) != 3 || xShape[2] != l.inputSize {
		panic(fmt.Sprintf("lstm: expected input [time, batch, %d], got %v", l.inputSize, xShape))
	}
	stateShape := tensor.Shape{xShape[1], l.hiddenSize}
	if !h0.Shape().Equal(stateShape) || !c0.Shape().Equal(stateShape) {
		panic(fmt.Sprintf("lstm: expected state %v, got h %v and c %v", stateShape, h0.Shape(), c0.Shape()))
	}

	wx := l.inputWeight.Tensor().T()     // [input, 4*hidden]
	wh := l.recurrentWeight.Tensor().T() // [hidden, 4*hidden]

	h, c = h0, c0
	steps := x.Unstack(0)
	outputs := make([]*tensor.Tensor[float32, B], len(steps))
	for t, xt := range steps {
		z := xt.MatMul(wx).Add(h.MatMul(wh))
		if l.bias != nil {
			z = z.Add(l.bias.Tensor())
		}
		gates := z.Chunk(4, 1)
		i := l.sigmoid.Forward(gates[0])
		f := l.sigmoid.Forward(gates[1])
		g := l.tanh.Forward(gates[2])
		o := l.sigmoid.Forward(gates[3])

		c = f.Mul(c).Add(i.Mul(g))
		h = o.Mul(l.tanh.Forward(c))
		outputs[t] = h
	}

	return tensor.Stack(outputs, 0), h, c
}

// Parameters returns the input weight, recurrent weight and, if present, bias.
func (l *LSTM[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{l.inputWeight, l.recurrentWeight}
	if l.bias != nil {
		params = append(params, l.bias)
	}
	return params
}

// InputSize returns the number of input features per step.
func (l *LSTM[B]) InputSize() int {
	return l.inputSize
}

// HiddenSize returns the size of the hidden and cell states.
func (l *LSTM[B]) HiddenSize() int {
	return l.hiddenSize
}
