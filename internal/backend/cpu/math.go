package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math.Exp)
}

// Rsqrt computes 1/sqrt(x) element-wise.
func (cpu *CPUBackend) Rsqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("rsqrt", x, func(v float64) float64 { return 1 / math.Sqrt(v) })
}

// unary applies f to every element of a float32 or float64 tensor.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(f(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = f(v)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, x.DType()))
	}
	return result
}

// MeanDim averages x along dim.
// With keepDim the reduced dimension stays with size 1.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	dim = tensor.NormalizeDim(dim, len(shape))

	outShape := shape.Clone()
	outShape[dim] = 1
	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mean: %v", err))
	}

	outer, inner := splitAround(shape, dim)
	switch x.DType() {
	case tensor.Float32:
		meanOf(result.AsFloat32(), x.AsFloat32(), outer, shape[dim], inner)
	case tensor.Float64:
		meanOf(result.AsFloat64(), x.AsFloat64(), outer, shape[dim], inner)
	default:
		panic(fmt.Sprintf("mean: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	if keepDim {
		return result
	}
	return cpu.Squeeze(result, dim)
}

func meanOf[E float32 | float64](dst, src []E, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var sum E
			base := o*size*inner + i
			for s := 0; s < size; s++ {
				sum += src[base+s*inner]
			}
			dst[o*inner+i] = sum / E(size)
		}
	}
}
