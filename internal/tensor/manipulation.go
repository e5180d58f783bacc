package tensor

import "fmt"

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a := tensor.Zeros[float32](Shape{2, 3}, backend)
//	b := tensor.Zeros[float32](Shape{2, 5}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // Shape: [2, 8]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}
	if len(tensors) == 1 {
		return tensors[0].Clone()
	}

	rawTensors := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}
	backend := tensors[0].backend
	return New[T, B](backend.Cat(rawTensors, dim), backend)
}

// Stack joins tensors of identical shape along a new dimension dim.
//
// Stacking n tensors of shape (a, b) along dim 1 gives shape (a, n, b), and
// element [i, k, j] of the result is element [i, j] of tensors[k].
//
// Example:
//
//	h0 := tensor.Zeros[float32](Shape{2, 3}, backend)
//	h1 := tensor.Zeros[float32](Shape{2, 3}, backend)
//	h := tensor.Stack([]*Tensor[float32, B]{h0, h1}, 1) // Shape: [2, 2, 3]
func Stack[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("stack: at least one tensor required")
	}
	first := tensors[0].Shape()
	dim = NormalizeDim(dim, len(first)+1)

	expanded := make([]*Tensor[T, B], len(tensors))
	for i, t := range tensors {
		if !t.Shape().Equal(first) {
			panic(fmt.Sprintf("stack: tensor %d has shape %v, want %v", i, t.Shape(), first))
		}
		expanded[i] = t.Unsqueeze(dim)
	}
	return Cat(expanded, dim)
}

// Unstack splits a tensor along dim into Shape()[dim] tensors with that
// dimension removed. It is the inverse of Stack.
func (t *Tensor[T, B]) Unstack(dim int) []*Tensor[T, B] {
	dim = NormalizeDim(dim, len(t.Shape()))
	parts := t.Chunk(t.Shape()[dim], dim)
	for i, p := range parts {
		parts[i] = p.Squeeze(dim)
	}
	return parts
}

// Chunk splits the tensor into n equal parts along the specified dimension.
//
// The dimension size must be divisible by n.
// Supports negative dim indexing (-1 = last dimension).
func (t *Tensor[T, B]) Chunk(n, dim int) []*Tensor[T, B] {
	rawParts := t.backend.Chunk(t.raw, n, dim)
	parts := make([]*Tensor[T, B], len(rawParts))
	for i, raw := range rawParts {
		parts[i] = New[T, B](raw, t.backend)
	}
	return parts
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Supports negative dim indexing.
func (t *Tensor[T, B]) Unsqueeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Unsqueeze(t.raw, dim), t.backend)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1.
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Squeeze(t.raw, dim), t.backend)
}
