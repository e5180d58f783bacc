// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/tensor"
)

// Module is the interface of every layer: Forward and Parameters.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a named trainable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// CountParameters returns the total number of scalars in params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	return nn.CountParameters(params)
}

// Prefixed returns copies of params named "prefix.<name>".
func Prefixed[B tensor.Backend](prefix string, params []*Parameter[B]) []*Parameter[B] {
	return nn.Prefixed(prefix, params)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(784, 128, true, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, useBias bool, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, useBias, backend)
}

// Conv2D represents a 2D convolutional layer over NCHW input.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	conv := nn.NewConv2D(1, 32, 3, 3, 1, 1, true, backend)  // in=1, out=32, 3x3, stride=1, padding=1
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend)
}

// LSTM is a single recurrent layer over (time, batch, features) input.
type LSTM[B tensor.Backend] = nn.LSTM[B]

// NewLSTM creates an LSTM layer with Keras gate order and forget bias 1.
func NewLSTM[B tensor.Backend](inputSize, hiddenSize int, useBias bool, backend B) *LSTM[B] {
	return nn.NewLSTM(inputSize, hiddenSize, useBias, backend)
}

// LayerNorm normalizes over the last dimension.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// NewLayerNorm creates a layer norm over normalizedShape features.
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm(normalizedShape, epsilon, backend)
}

// ChannelLayerNorm normalizes NCHW input over its channels.
type ChannelLayerNorm[B tensor.Backend] = nn.ChannelLayerNorm[B]

// NewChannelLayerNorm creates a channel layer norm.
func NewChannelLayerNorm[B tensor.Backend](channels int, epsilon float32, backend B) *ChannelLayerNorm[B] {
	return nn.NewChannelLayerNorm(channels, epsilon, backend)
}

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Flatten reshapes (batch, ...) to (batch, features).
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Activations

// Activation names an activation function in encoder configs.
type Activation = nn.Activation

// Activation constants.
const (
	ActivationLinear  = nn.ActivationLinear
	ActivationReLU    = nn.ActivationReLU
	ActivationTanh    = nn.ActivationTanh
	ActivationSigmoid = nn.ActivationSigmoid
	ActivationSiLU    = nn.ActivationSiLU
	ActivationELU     = nn.ActivationELU
)

// ParseActivation maps a name such as "relu" or "swish" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// NewActivation returns the module computing a.
func NewActivation[B tensor.Backend](a Activation) Module[B] {
	return nn.NewActivation[B](a)
}

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Tanh represents the hyperbolic tangent activation function.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation layer.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Sigmoid represents the logistic activation function.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}
