// Package cpu implements the CPU backend with BLAS-backed matrix kernels.
package cpu

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/parallel"
	"github.com/born-ml/born-rl/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
//
// It holds no mutable state after construction, so one backend may be shared
// by any number of goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend that parallelises batch loops over GOMAXPROCS.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// NewSequential creates a CPU backend that never spawns goroutines.
func NewSequential() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.Sequential(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

func (cpu *CPUBackend) binary(
	op string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	var aIdx, bIdx []int
	if needsBroadcast {
		aIdx = broadcastIndex(a.Shape(), outShape)
		bIdx = broadcastIndex(b.Shape(), outShape)
	}

	switch a.DType() {
	case tensor.Float32:
		applyBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), aIdx, bIdx, f32)
	case tensor.Float64:
		applyBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), aIdx, bIdx, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

// applyBinary writes op(a, b) into dst. Nil index slices mean the operand has
// the output's shape; otherwise they map output positions to operand positions.
func applyBinary[E float32 | float64](dst, a, b []E, aIdx, bIdx []int, op func(x, y E) E) {
	if aIdx == nil {
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		return
	}
	for i := range dst {
		dst[i] = op(a[aIdx[i]], b[bIdx[i]])
	}
}

// broadcastIndex maps every flat position of out to the flat position of src
// it reads under NumPy broadcasting.
func broadcastIndex(src, out tensor.Shape) []int {
	offset := len(out) - len(src)
	srcStrides := src.ComputeStrides()
	effective := make([]int, len(out))
	for d := range src {
		if src[d] != 1 {
			effective[d+offset] = srcStrides[d]
		}
	}

	outStrides := out.ComputeStrides()
	index := make([]int, out.NumElements())
	for i := range index {
		rem, pos := i, 0
		for d := range out {
			pos += (rem / outStrides[d]) * effective[d]
			rem %= outStrides[d]
		}
		index[i] = pos
	}
	return index
}
