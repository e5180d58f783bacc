// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package spec describes and checks the shapes of tensors and nested dicts.
//
// A TensorSpec names every dimension and binds some of them to sizes:
//
//	s := spec.MustParse("b, w, h, c", spec.Bind("w", 84), spec.Bind("h", 84), spec.Bind("c", 3))
//
// A Dict maps dotted keys to entries and validates a nested.Dict, reporting
// the first mismatch as a *Violation.
package spec

import (
	"github.com/born-ml/born-rl/internal/spec"
)

// TensorSpec is an ordered list of named dimensions and an optional dtype.
type TensorSpec = spec.TensorSpec

// Dim is one named dimension; Size 0 means any size.
type Dim = spec.Dim

// Option configures a TensorSpec.
type Option = spec.Option

// Dict is an ordered spec for a nested.Dict.
type Dict = spec.Dict

// Entry is one value of a Dict.
type Entry = spec.Entry

// Kind classifies an Entry.
type Kind = spec.Kind

// Entry kinds.
const (
	KindRequired = spec.KindRequired
	KindAnyShape = spec.KindAnyShape
	KindOptional = spec.KindOptional
	KindNested   = spec.KindNested
)

// Violation reports where and how data failed a spec.
type Violation = spec.Violation

// Reason classifies a Violation.
type Reason = spec.Reason

// Violation reasons.
const (
	MissingKey    = spec.MissingKey
	NotTensor     = spec.NotTensor
	NotDict       = spec.NotDict
	RankMismatch  = spec.RankMismatch
	DimMismatch   = spec.DimMismatch
	DTypeMismatch = spec.DTypeMismatch
)

// Parse builds a TensorSpec from comma separated dimension names.
func Parse(shape string, opts ...Option) (TensorSpec, error) {
	return spec.Parse(shape, opts...)
}

// MustParse is Parse that panics on error.
func MustParse(shape string, opts ...Option) TensorSpec {
	return spec.MustParse(shape, opts...)
}

// Bind fixes the size of dimension name.
var Bind = spec.Bind

// WithDType requires a dtype.
var WithDType = spec.WithDType

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return spec.NewDict()
}

// Required is an entry that must be a tensor matching ts.
func Required(ts TensorSpec) Entry { return spec.Required(ts) }

// AnyShape is an entry that must be present with any value.
func AnyShape() Entry { return spec.AnyShape() }

// Optional is an entry that may be absent.
func Optional() Entry { return spec.Optional() }

// Nested is an entry that must be a dict matching d.
func Nested(d *Dict) Entry { return spec.Nested(d) }
