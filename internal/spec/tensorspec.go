// Package spec declares and checks the shapes and dtypes of nested tensor
// dictionaries.
//
// A TensorSpec names the dimensions of one tensor and optionally binds some
// of them to sizes. A Dict maps keys to entries that say whether a key is
// required, what it must hold, and whether it may be left out.
package spec

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Dim is one named dimension. Size 0 leaves the dimension unconstrained.
type Dim struct {
	Name string
	Size int
}

// TensorSpec describes the expected rank, bound dimension sizes and,
// optionally, dtype of a tensor.
type TensorSpec struct {
	dims     []Dim
	dtype    tensor.DataType
	hasDType bool
}

// Option refines a TensorSpec at parse time.
type Option func(*TensorSpec) error

// Bind fixes the size of the named dimension.
func Bind(name string, size int) Option {
	return func(s *TensorSpec) error {
		if size <= 0 {
			return errors.Errorf("dimension %q: size must be positive, got %d", name, size)
		}
		for i := range s.dims {
			if s.dims[i].Name == name {
				s.dims[i].Size = size
				return nil
			}
		}
		return errors.Errorf("dimension %q not in spec %s", name, s)
	}
}

// WithDType requires the tensor to have the given dtype.
func WithDType(dt tensor.DataType) Option {
	return func(s *TensorSpec) error {
		s.dtype = dt
		s.hasDType = true
		return nil
	}
}

// Parse builds a TensorSpec from a comma separated list of dimension names
// such as "b, w, h, c", then applies opts.
//
// Example:
//
//	obs, err := spec.Parse("b, w, h, c", spec.Bind("w", 84), spec.Bind("h", 84), spec.Bind("c", 3))
func Parse(shape string, opts ...Option) (TensorSpec, error) {
	var s TensorSpec
	seen := make(map[string]bool)
	for _, field := range strings.Split(shape, ",") {
		name := strings.TrimSpace(field)
		if name == "" {
			return TensorSpec{}, errors.Errorf("empty dimension name in %q", shape)
		}
		if seen[name] {
			return TensorSpec{}, errors.Errorf("dimension %q repeated in %q", name, shape)
		}
		seen[name] = true
		s.dims = append(s.dims, Dim{Name: name})
	}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return TensorSpec{}, errors.Wrapf(err, "parse %q", shape)
		}
	}
	return s, nil
}

// MustParse is Parse for specs fixed at compile time. It panics on error.
func MustParse(shape string, opts ...Option) TensorSpec {
	s, err := Parse(shape, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Rank returns the number of dimensions.
func (s TensorSpec) Rank() int {
	return len(s.dims)
}

// Dims returns a copy of the dimensions.
func (s TensorSpec) Dims() []Dim {
	return append([]Dim(nil), s.dims...)
}

// DType returns the required dtype, if any.
func (s TensorSpec) DType() (tensor.DataType, bool) {
	return s.dtype, s.hasDType
}

// Size returns the bound size of the named dimension, or 0 if it is unbound
// or absent.
func (s TensorSpec) Size(name string) int {
	for _, d := range s.dims {
		if d.Name == name {
			return d.Size
		}
	}
	return 0
}

// String renders the spec as "(b, w=4, h=4, c=3)" with a dtype suffix when
// one is required.
func (s TensorSpec) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range s.dims {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.Name)
		if d.Size > 0 {
			sb.WriteByte('=')
			sb.WriteString(itoa(d.Size))
		}
	}
	sb.WriteByte(')')
	if s.hasDType {
		sb.WriteByte(' ')
		sb.WriteString(s.dtype.String())
	}
	return sb.String()
}

// Check validates t against s. The returned violation has an empty Path.
func (s TensorSpec) Check(t *tensor.RawTensor) *Violation {
	shape := t.Shape()
	if len(shape) != len(s.dims) {
		return &Violation{
			Reason:   RankMismatch,
			Expected: len(s.dims),
			Actual:   len(shape),
			Spec:     s,
			Shape:    shape,
		}
	}
	for i, d := range s.dims {
		if d.Size > 0 && shape[i] != d.Size {
			return &Violation{
				Reason:   DimMismatch,
				Dim:      d.Name,
				Expected: d.Size,
				Actual:   shape[i],
				Spec:     s,
				Shape:    shape,
			}
		}
	}
	if s.hasDType && t.DType() != s.dtype {
		return &Violation{
			Reason:        DTypeMismatch,
			ExpectedDType: s.dtype,
			ActualDType:   t.DType(),
			Spec:          s,
			Shape:         shape,
		}
	}
	return nil
}
