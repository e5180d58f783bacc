package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/born-rl/internal/tensor"
)

// ReLUBackend is an interface for backends that support ReLU activation.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is an interface for backends that support Sigmoid activation.
type SigmoidBackend interface {
	Sigmoid(*tensor.RawTensor) *tensor.RawTensor
}

// TanhBackend is an interface for backends that support Tanh activation.
type TanhBackend interface {
	Tanh(*tensor.RawTensor) *tensor.RawTensor
}

// SiLUBackend is an interface for backends that support SiLU (swish) activation.
type SiLUBackend interface {
	SiLU(*tensor.RawTensor) *tensor.RawTensor
}

// ELUBackend is an interface for backends that support ELU activation.
type ELUBackend interface {
	ELU(x *tensor.RawTensor, alpha float64) *tensor.RawTensor
}

// Activation selects an element-wise nonlinearity.
// The zero value is ActivationLinear (identity).
type Activation int

// Supported activations.
const (
	ActivationLinear Activation = iota
	ActivationReLU
	ActivationTanh
	ActivationSigmoid
	ActivationSiLU
	ActivationELU
)

var activationNames = map[Activation]string{
	ActivationLinear:  "linear",
	ActivationReLU:    "relu",
	ActivationTanh:    "tanh",
	ActivationSigmoid: "sigmoid",
	ActivationSiLU:    "silu",
	ActivationELU:     "elu",
}

// String returns the lower-case activation name.
func (a Activation) String() string {
	if name, ok := activationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Activation(%d)", int(a))
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	_, ok := activationNames[a]
	return ok
}

// ParseActivation maps a case-insensitive name to an Activation.
// The empty string and "none" mean linear; "swish" is an alias for silu.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "linear":
		return ActivationLinear, nil
	case "relu":
		return ActivationReLU, nil
	case "tanh":
		return ActivationTanh, nil
	case "sigmoid":
		return ActivationSigmoid, nil
	case "silu", "swish":
		return ActivationSiLU, nil
	case "elu":
		return ActivationELU, nil
	}
	return ActivationLinear, errors.Errorf("unknown activation %q", name)
}

// NewActivation returns the module implementing a.
// Panics if a is not a supported activation.
func NewActivation[B tensor.Backend](a Activation) Module[B] {
	switch a {
	case ActivationLinear:
		return NewIdentity[B]()
	case ActivationReLU:
		return NewReLU[B]()
	case ActivationTanh:
		return NewTanh[B]()
	case ActivationSigmoid:
		return NewSigmoid[B]()
	case ActivationSiLU:
		return NewSiLU[B]()
	case ActivationELU:
		return NewELU[B](1.0)
	}
	panic(fmt.Sprintf("activation: unsupported %v", a))
}

// Identity returns its input unchanged.
type Identity[B tensor.Backend] struct{}

// NewIdentity creates a new Identity module.
func NewIdentity[B tensor.Backend]() *Identity[B] {
	return &Identity[B]{}
}

// Forward returns input.
func (i *Identity[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input
}

// Parameters returns nil.
func (i *Identity[B]) Parameters() []*Parameter[B] {
	return nil
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	if reluBackend, ok := any(backend).(ReLUBackend); ok {
		return tensor.New[float32, B](reluBackend.ReLU(input.Raw()), backend)
	}
	panic("ReLU: backend must implement ReLU operation")
}

// Parameters returns nil (ReLU has no parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
// It is also the gate nonlinearity of the LSTM layer.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	if sigmoidBackend, ok := any(backend).(SigmoidBackend); ok {
		return tensor.New[float32, B](sigmoidBackend.Sigmoid(input.Raw()), backend)
	}
	panic("Sigmoid: backend must implement Sigmoid operation")
}

// Parameters returns nil (Sigmoid has no parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh is a hyperbolic tangent activation module.
//
// Squashes values to the range (-1, 1).
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	if tanhBackend, ok := any(backend).(TanhBackend); ok {
		return tensor.New[float32, B](tanhBackend.Tanh(input.Raw()), backend)
	}
	panic("Tanh: backend must implement Tanh operation")
}

// Parameters returns nil (Tanh has no parameters).
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// SiLU applies x * sigmoid(x).
type SiLU[B tensor.Backend] struct{}

// NewSiLU creates a new SiLU activation module.
func NewSiLU[B tensor.Backend]() *SiLU[B] {
	return &SiLU[B]{}
}

// Forward applies SiLU activation.
func (s *SiLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	if siluBackend, ok := any(backend).(SiLUBackend); ok {
		return tensor.New[float32, B](siluBackend.SiLU(input.Raw()), backend)
	}
	panic("SiLU: backend must implement SiLU operation")
}

// Parameters returns nil.
func (s *SiLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// ELU applies x for x > 0 and alpha * (exp(x) - 1) otherwise.
type ELU[B tensor.Backend] struct {
	alpha float64
}

// NewELU creates a new ELU activation module.
func NewELU[B tensor.Backend](alpha float64) *ELU[B] {
	return &ELU[B]{alpha: alpha}
}

// Forward applies ELU activation.
func (e *ELU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	if eluBackend, ok := any(backend).(ELUBackend); ok {
		return tensor.New[float32, B](eluBackend.ELU(input.Raw(), e.alpha), backend)
	}
	panic("ELU: backend must implement ELU operation")
}

// Parameters returns nil.
func (e *ELU[B]) Parameters() []*Parameter[B] {
	return nil
}
