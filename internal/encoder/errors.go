package encoder

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/spec"
)

// InputSpecViolation is returned by Forward when the inputs do not satisfy
// the encoder's input specs.
type InputSpecViolation struct {
	Encoder   string
	Violation *spec.Violation
}

func (e *InputSpecViolation) Error() string {
	return fmt.Sprintf("encoder %s: input spec violation at %s", e.Encoder, e.Violation)
}

// Unwrap returns the underlying *spec.Violation.
func (e *InputSpecViolation) Unwrap() error {
	return e.Violation
}

// OutputSpecViolation is returned by Forward when the pipeline produced an
// output that does not satisfy the encoder's output specs.
type OutputSpecViolation struct {
	Encoder   string
	Violation *spec.Violation
}

func (e *OutputSpecViolation) Error() string {
	return fmt.Sprintf("encoder %s: output spec violation at %s", e.Encoder, e.Violation)
}

// Unwrap returns the underlying *spec.Violation.
func (e *OutputSpecViolation) Unwrap() error {
	return e.Violation
}
