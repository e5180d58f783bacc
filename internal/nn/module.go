// Package nn implements the neural network layers used by the Born RL encoders.
//
// This package provides building blocks for constructing encoder pipelines:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named parameter tensors
//   - Linear, Conv2D: Dense and convolutional layers
//   - LayerNorm, ChannelLayerNorm: Normalization over features or channels
//   - LSTM: A recurrent layer over time-major sequences
//   - Activations: an enum resolved once to a Module
//   - Sequential, Flatten: Containers and shape adapters
//
// Layers are inference-only: parameters are read, never written, during Forward,
// so one layer may serve concurrent callers.
package nn

import (
	"github.com/born-ml/born-rl/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(784, 128, true, backend),
//	    nn.NewActivation[B](nn.ActivationReLU),
//	    nn.NewLinear(128, 10, true, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, Linear expects [batch_size, in_features].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all parameters of this module, including those
	// of nested modules. Activation functions return nil.
	Parameters() []*Parameter[B]
}

// CountParameters returns the total number of scalar parameters in params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	total := 0
	for _, p := range params {
		total += p.NumElements()
	}
	return total
}
