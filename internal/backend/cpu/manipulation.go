package cpu

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along dim and the same dtype.
//
// Example:
//
//	a := [2, 3], b := [2, 5]
//	Cat([a, b], dim=1) -> [2, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: no tensors provided")
	}
	first := tensors[0]
	rank := len(first.Shape())
	dim = tensor.NormalizeDim(dim, rank)

	outShape := first.Shape().Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != rank {
			panic(fmt.Sprintf("cat: tensor %d has rank %d, expected %d", i, len(s), rank))
		}
		if t.DType() != first.DType() {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), first.DType()))
		}
		for d := range s {
			if d != dim && s[d] != first.Shape()[d] {
				panic(fmt.Sprintf("cat: tensor %d shape %v incompatible with %v at dim %d", i, s, first.Shape(), d))
			}
		}
		outShape[dim] += s[dim]
	}

	result, err := tensor.NewRaw(outShape, first.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outer, inner := splitAround(outShape, dim)
	dstStride := outShape[dim] * inner
	offset := 0
	for _, t := range tensors {
		block := t.Shape()[dim] * inner
		copyBlocks(result, t, outer, block, dstStride, offset, block, 0)
		offset += block
	}
	return result
}

// Chunk splits x into n equal parts along dim.
// The size of dim must be divisible by n.
func (cpu *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	dim = tensor.NormalizeDim(dim, len(shape))
	if n <= 0 {
		panic(fmt.Sprintf("chunk: n must be positive, got %d", n))
	}
	if shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: dimension %d of size %d is not divisible by %d", dim, shape[dim], n))
	}

	partShape := shape.Clone()
	partShape[dim] = shape[dim] / n
	outer, inner := splitAround(shape, dim)
	block := partShape[dim] * inner
	srcStride := shape[dim] * inner

	parts := make([]*tensor.RawTensor, n)
	for i := range parts {
		part, err := tensor.NewRaw(partShape, x.DType(), cpu.device)
		if err != nil {
			panic(fmt.Sprintf("chunk: %v", err))
		}
		copyBlocks(part, x, outer, block, block, 0, srcStride, i*block)
		parts[i] = part
	}
	return parts
}

// Unsqueeze inserts a dimension of size 1 at dim. dim may equal the rank.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = tensor.NormalizeDim(dim, len(shape)+1)

	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return cpu.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1 at dim.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	dim = tensor.NormalizeDim(dim, len(shape))
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, expected 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)
	return cpu.Reshape(x, newShape)
}

// splitAround returns the element counts before and after dim.
func splitAround(shape tensor.Shape, dim int) (outer, inner int) {
	outer, inner = 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}
	return outer, inner
}

// copyBlocks copies outer blocks of block elements from src to dst.
// Block o starts at dstOff+o*dstStride in dst and srcOff+o*srcStride in src.
func copyBlocks(dst, src *tensor.RawTensor, outer, block, dstStride, dstOff, srcStride, srcOff int) {
	switch src.DType() {
	case tensor.Float32:
		copyBlocksOf(dst.AsFloat32(), src.AsFloat32(), outer, block, dstStride, dstOff, srcStride, srcOff)
	case tensor.Float64:
		copyBlocksOf(dst.AsFloat64(), src.AsFloat64(), outer, block, dstStride, dstOff, srcStride, srcOff)
	case tensor.Float16:
		copyBlocksOf(dst.AsFloat16(), src.AsFloat16(), outer, block, dstStride, dstOff, srcStride, srcOff)
	case tensor.Int32:
		copyBlocksOf(dst.AsInt32(), src.AsInt32(), outer, block, dstStride, dstOff, srcStride, srcOff)
	case tensor.Int64:
		copyBlocksOf(dst.AsInt64(), src.AsInt64(), outer, block, dstStride, dstOff, srcStride, srcOff)
	case tensor.Uint8:
		copyBlocksOf(dst.AsUint8(), src.AsUint8(), outer, block, dstStride, dstOff, srcStride, srcOff)
	default:
		panic(fmt.Sprintf("copy: unsupported dtype %s", src.DType()))
	}
}

func copyBlocksOf[E tensor.DType](dst, src []E, outer, block, dstStride, dstOff, srcStride, srcOff int) {
	for o := 0; o < outer; o++ {
		d := dstOff + o*dstStride
		s := srcOff + o*srcStride
		copy(dst[d:d+block], src[s:s+block])
	}
}
