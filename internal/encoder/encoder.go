// Package encoder implements the RL encoders: CNN, MLP and LSTM variants that
// turn observations into latent tensors, and the actor-critic composite that
// routes one input through a policy and a value path.
//
// Every encoder declares its input and output specs. Forward validates the
// inputs, runs the layer pipeline, validates the result and returns it.
// Encoders hold no state between calls: recurrent state travels through the
// state_in and state_out keys and threading it is the caller's job.
package encoder

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// Encoder is the contract shared by all encoder variants.
type Encoder interface {
	// Name identifies the encoder in errors and logs.
	Name() string

	// InputSpecs declares the minimum structure Forward requires.
	InputSpecs() *spec.Dict

	// OutputSpecs declares the structure Forward guarantees.
	OutputSpecs() *spec.Dict

	// InitialState returns zero recurrent state for batchSize sequences.
	// Stateless encoders return an empty dict.
	InitialState(batchSize int) *nested.Dict

	// Forward validates inputs, runs the encoder and validates the result.
	// Spec failures are *InputSpecViolation or *OutputSpecViolation.
	Forward(inputs *nested.Dict) (*nested.Dict, error)

	// NumParameters returns the number of scalar parameters.
	NumParameters() int
}

// Model is an Encoder whose parameters live on backend B.
type Model[B tensor.Backend] interface {
	Encoder
	Parameters() []*nn.Parameter[B]
}

// contract holds the specs of one encoder and runs the checked forward.
type contract struct {
	name    string
	inputs  *spec.Dict
	outputs *spec.Dict

	// relate, when set, checks inputs that already passed c.inputs against
	// each other, e.g. that two keys agree on their batch size.
	relate func(*nested.Dict) *spec.Violation
}

func (c *contract) Name() string           { return c.name }
func (c *contract) InputSpecs() *spec.Dict  { return c.inputs }
func (c *contract) OutputSpecs() *spec.Dict { return c.outputs }

// forward validates inputs against c.inputs, runs pipeline and validates its
// result against c.outputs.
func (c *contract) forward(inputs *nested.Dict, pipeline func(*nested.Dict) (*nested.Dict, error)) (*nested.Dict, error) {
	if err := c.checkInputs(inputs); err != nil {
		return nil, err
	}
	out, err := pipeline(inputs)
	if err != nil {
		return nil, err
	}
	if err := c.checkOutputs(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contract) checkInputs(inputs *nested.Dict) error {
	var v *spec.Violation
	if err := c.inputs.Validate(inputs); err != nil {
		v = asViolation(err)
	} else if c.relate != nil {
		v = c.relate(inputs)
	}
	if v == nil {
		return nil
	}
	klog.V(1).InfoS("Input spec violation", "encoder", c.name, "path", v.Path, "reason", v.Reason.String())
	return &InputSpecViolation{Encoder: c.name, Violation: v}
}

func (c *contract) checkOutputs(out *nested.Dict) error {
	err := c.outputs.Validate(out)
	if err == nil {
		return nil
	}
	v := asViolation(err)
	klog.V(1).InfoS("Output spec violation", "encoder", c.name, "path", v.Path, "reason", v.Reason.String())
	return &OutputSpecViolation{Encoder: c.name, Violation: v}
}

func asViolation(err error) *spec.Violation {
	var v *spec.Violation
	if !errors.As(err, &v) {
		// spec.Dict.Validate returns nothing else.
		panic(errors.Wrap(err, "unexpected validation error"))
	}
	return v
}

// stateSpec is the (batch, layers, hidden) spec of one LSTM state tensor.
func stateSpec(layers, hidden int, opts ...spec.Option) spec.TensorSpec {
	opts = append([]spec.Option{spec.Bind("l", layers), spec.Bind("h", hidden)}, opts...)
	return spec.MustParse("b, l, h", opts...)
}

// featureSpec is the spec of a (batch, features) tensor with bound features.
func featureSpec(features int) spec.TensorSpec {
	return spec.MustParse("b, d", spec.Bind("d", features))
}
