package nn

import (
	"github.com/born-ml/born-rl/internal/tensor"
)

// LayerNorm applies Layer Normalization over an input tensor along the last dimension.
//
// Formula: Y = gamma * (X - mean(X)) / sqrt(var(X) + eps) + beta
//
// Where:
//   - gamma is the learnable scale parameter [features]
//   - beta is the learnable shift parameter [features]
//   - mean and variance are computed along the last dimension
//   - eps is a small value to avoid division by zero
//
// Example:
//
//	layernorm := nn.NewLayerNorm(256, 1e-5, backend)
//	output := layernorm.Forward(hidden)  // [..., 256] -> [..., 256]
type LayerNorm[B tensor.Backend] struct {
	Gamma   *Parameter[B] // scale [features]
	Beta    *Parameter[B] // shift [features]
	Epsilon float32       // numerical stability constant
	backend B
}

// NewLayerNorm creates a new LayerNorm layer.
//
// The gamma parameter is initialized to ones, beta to zeros.
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	return &LayerNorm[B]{
		Gamma:   NewParameter("gamma", Ones(tensor.Shape{normalizedShape}, backend)),
		Beta:    NewParameter("beta", Zeros(tensor.Shape{normalizedShape}, backend)),
		Epsilon: epsilon,
		backend: backend,
	}
}

// Forward applies LayerNorm to the input tensor.
//
// Algorithm:
//  1. mean = mean(x) along last dimension (keepdim=true)
//  2. variance = mean((x - mean)^2) along last dimension
//  3. x_norm = (x - mean) * rsqrt(variance + epsilon)
//  4. output = gamma * x_norm + beta
func (l *LayerNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	mean := x.MeanDim(-1, true)
	xCentered := x.Sub(mean)
	variance := xCentered.Mul(xCentered).MeanDim(-1, true)

	eps := tensor.Full[float32](tensor.Shape{1}, l.Epsilon, l.backend)
	xNorm := xCentered.Mul(variance.Add(eps).Rsqrt())

	// [features] broadcasts against [..., features].
	return xNorm.Mul(l.Gamma.Tensor()).Add(l.Beta.Tensor())
}

// Parameters returns the learnable parameters (gamma and beta).
func (l *LayerNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.Gamma, l.Beta}
}

// ChannelLayerNorm normalizes a [N, C, H, W] feature map over its channels
// at every spatial position.
type ChannelLayerNorm[B tensor.Backend] struct {
	norm *LayerNorm[B]
}

// NewChannelLayerNorm creates a layer norm over channels channels.
func NewChannelLayerNorm[B tensor.Backend](channels int, epsilon float32, backend B) *ChannelLayerNorm[B] {
	return &ChannelLayerNorm[B]{norm: NewLayerNorm(channels, epsilon, backend)}
}

// Forward moves channels last, normalizes, and restores NCHW.
func (c *ChannelLayerNorm[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	nhwc := x.Transpose(0, 2, 3, 1)
	return c.norm.Forward(nhwc).Transpose(0, 3, 1, 2)
}

// Parameters returns gamma and beta.
func (c *ChannelLayerNorm[B]) Parameters() []*Parameter[B] {
	return c.norm.Parameters()
}
