package spec

import (
	"fmt"
	"strconv"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Reason classifies a Violation.
type Reason int

// Violation reasons.
const (
	MissingKey Reason = iota
	NotTensor
	NotDict
	RankMismatch
	DimMismatch
	DTypeMismatch
)

func (r Reason) String() string {
	switch r {
	case MissingKey:
		return "missing key"
	case NotTensor:
		return "not a tensor"
	case NotDict:
		return "not a dict"
	case RankMismatch:
		return "rank mismatch"
	case DimMismatch:
		return "dimension mismatch"
	case DTypeMismatch:
		return "dtype mismatch"
	}
	return "Reason(" + strconv.Itoa(int(r)) + ")"
}

// Violation reports the first place where data failed a spec.
//
// Path is the dotted key of the offending entry. For RankMismatch, Expected
// and Actual are ranks; for DimMismatch they are sizes of dimension Dim.
type Violation struct {
	Path          string
	Reason        Reason
	Dim           string
	Expected      int
	Actual        int
	ExpectedDType tensor.DataType
	ActualDType   tensor.DataType
	Spec          TensorSpec   // the spec checked, for tensor reasons
	Shape         tensor.Shape // the actual shape, for tensor reasons
}

// Error implements error.
func (v *Violation) Error() string {
	switch v.Reason {
	case RankMismatch:
		return fmt.Sprintf("%q: rank mismatch: expected %d dims %s, got shape %v", v.Path, v.Expected, v.Spec, v.Shape)
	case DimMismatch:
		return fmt.Sprintf("%q: dimension %q expected size %d, got %d (spec %s, shape %v)",
			v.Path, v.Dim, v.Expected, v.Actual, v.Spec, v.Shape)
	case DTypeMismatch:
		return fmt.Sprintf("%q: dtype mismatch: expected %s, got %s", v.Path, v.ExpectedDType, v.ActualDType)
	default:
		return fmt.Sprintf("%q: %s", v.Path, v.Reason)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
