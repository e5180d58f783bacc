package cpu

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Reshape returns a tensor with the same data and a new shape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

// Transpose permutes the dimensions of t.
// With no axes it reverses them; for 2D tensors that is the matrix transpose.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	rank := len(shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(fmt.Sprintf("transpose: got %d axes for rank %d tensor", len(axes), rank))
	}

	seen := make([]bool, rank)
	perm := make([]int, rank)
	for i, a := range axes {
		a = tensor.NormalizeDim(a, rank)
		if seen[a] {
			panic(fmt.Sprintf("transpose: axis %d repeated in %v", a, axes))
		}
		seen[a] = true
		perm[i] = a
	}

	outShape := make(tensor.Shape, rank)
	for i, a := range perm {
		outShape[i] = shape[a]
	}

	result, err := tensor.NewRaw(outShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	index := make([]int, outShape.NumElements())
	for i := range index {
		rem, pos := i, 0
		for d := 0; d < rank; d++ {
			pos += (rem / outStrides[d]) * inStrides[perm[d]]
			rem %= outStrides[d]
		}
		index[i] = pos
	}

	gather(result, t, index)
	return result
}

// gather sets dst[i] = src[index[i]] for every element of dst.
func gather(dst, src *tensor.RawTensor, index []int) {
	switch src.DType() {
	case tensor.Float32:
		gatherOf(dst.AsFloat32(), src.AsFloat32(), index)
	case tensor.Float64:
		gatherOf(dst.AsFloat64(), src.AsFloat64(), index)
	case tensor.Float16:
		gatherOf(dst.AsFloat16(), src.AsFloat16(), index)
	case tensor.Int32:
		gatherOf(dst.AsInt32(), src.AsInt32(), index)
	case tensor.Int64:
		gatherOf(dst.AsInt64(), src.AsInt64(), index)
	case tensor.Uint8:
		gatherOf(dst.AsUint8(), src.AsUint8(), index)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", src.DType()))
	}
}

func gatherOf[E tensor.DType](dst, src []E, index []int) {
	for i, j := range index {
		dst[i] = src[j]
	}
}
