// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nested provides the ordered, string-keyed tree of tensors that
// encoders consume and produce.
//
// Keys may be dotted paths: d.Set("state_in.h", h) creates the inner dict.
//
//	inputs := nested.New().
//	    Set("obs", obs).
//	    SetDict("state_in", enc.InitialState(batch))
package nested

import (
	"github.com/born-ml/born-rl/internal/nested"
)

// Dict is an insertion-ordered tree whose leaves are raw tensors or empty.
type Dict = nested.Dict

// Value is one entry of a Dict: a tensor, a dict or empty.
type Value = nested.Value

// Leaf is a tensor leaf and its dotted path.
type Leaf = nested.Leaf

// Kind tells which of tensor, dict or empty a Value holds.
type Kind = nested.Kind

// Value kinds.
const (
	KindEmpty  = nested.KindEmpty
	KindTensor = nested.KindTensor
	KindDict   = nested.KindDict
)

// New returns an empty Dict.
func New() *Dict {
	return nested.New()
}

// Merge returns the entries of a followed by the entries of b that a lacks.
func Merge(a, b *Dict) *Dict {
	return nested.Merge(a, b)
}

// JoinPath joins a prefix and a key with the path separator.
func JoinPath(prefix, key string) string {
	return nested.JoinPath(prefix, key)
}
