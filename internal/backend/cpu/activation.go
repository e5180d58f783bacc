package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/born-rl/internal/tensor"
)

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, sigmoid)
}

// Tanh computes the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x, math.Tanh)
}

// SiLU computes x * sigmoid(x) element-wise.
func (cpu *CPUBackend) SiLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("silu", x, func(v float64) float64 { return v * sigmoid(v) })
}

// ELU computes x for x > 0 and alpha * (exp(x) - 1) otherwise.
func (cpu *CPUBackend) ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor {
	if alpha < 0 {
		panic(fmt.Sprintf("elu: alpha must be non-negative, got %g", alpha))
	}
	return cpu.unary("elu", x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return alpha * math.Expm1(v)
	})
}

// sigmoid is split by sign so neither branch overflows.
func sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}
