// Package nested implements the ordered, path-addressable tensor dictionary
// that flows between encoders.
//
// A Dict maps string keys to values that are either a tensor leaf, a sub-dict,
// or empty. Keys keep insertion order. Methods taking a path accept dotted
// keys ("state_in.h") and walk through sub-dicts.
//
// Dicts are treated as immutable once handed to another component: encoders
// read their inputs and build fresh output dicts. Tensors inside are shared,
// never copied.
package nested

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Separator joins the keys of a path.
const Separator = "."

// Kind tells which variant a Value holds.
type Kind int

// Value kinds.
const (
	KindEmpty Kind = iota
	KindTensor
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindTensor:
		return "tensor"
	case KindDict:
		return "dict"
	default:
		return "empty"
	}
}

// Value is a tagged union of tensor, sub-dict, or empty.
// The zero Value is empty.
type Value struct {
	kind   Kind
	tensor *tensor.RawTensor
	dict   *Dict
}

// TensorValue wraps a tensor leaf. A nil tensor gives an empty value.
func TensorValue(t *tensor.RawTensor) Value {
	if t == nil {
		return Value{}
	}
	return Value{kind: KindTensor, tensor: t}
}

// DictValue wraps a sub-dict. A nil dict gives an empty value.
func DictValue(d *Dict) Value {
	if d == nil {
		return Value{}
	}
	return Value{kind: KindDict, dict: d}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v holds nothing.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Tensor returns the tensor leaf, or nil if v is not a tensor.
func (v Value) Tensor() *tensor.RawTensor { return v.tensor }

// Dict returns the sub-dict, or nil if v is not a dict.
func (v Value) Dict() *Dict { return v.dict }

// Dict is an ordered mapping from keys to Values.
// The zero value is not usable; create dicts with New.
type Dict struct {
	om *orderedmap.OrderedMap[string, Value]
}

// New creates an empty Dict.
func New() *Dict {
	return &Dict{om: orderedmap.New[string, Value]()}
}

// SplitPath splits a dotted path into its keys.
func SplitPath(path string) []string {
	return strings.Split(path, Separator)
}

// JoinPath joins keys into a dotted path, skipping empty prefixes.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// SetValue stores v at path, creating intermediate dicts as needed.
// An intermediate key that holds a tensor or nothing is replaced by a dict.
// It returns d so calls can be chained.
func (d *Dict) SetValue(path string, v Value) *Dict {
	keys := SplitPath(path)
	cur := d
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur.om.Get(k)
		if !ok || next.kind != KindDict {
			next = DictValue(New())
			cur.om.Set(k, next)
		}
		cur = next.dict
	}
	cur.om.Set(keys[len(keys)-1], v)
	return d
}

// Set stores a tensor leaf at path.
func (d *Dict) Set(path string, t *tensor.RawTensor) *Dict {
	return d.SetValue(path, TensorValue(t))
}

// SetDict stores a sub-dict at path.
func (d *Dict) SetDict(path string, sub *Dict) *Dict {
	return d.SetValue(path, DictValue(sub))
}

// SetEmpty marks path as present but holding nothing.
func (d *Dict) SetEmpty(path string) *Dict {
	return d.SetValue(path, Value{})
}

// Lookup returns the value at path and whether the path exists.
func (d *Dict) Lookup(path string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	keys := SplitPath(path)
	cur := d
	for i, k := range keys {
		v, ok := cur.om.Get(k)
		if !ok {
			return Value{}, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		if v.kind != KindDict {
			return Value{}, false
		}
		cur = v.dict
	}
	return Value{}, false
}

// Get returns the tensor at path. ok is false if the path is missing or
// does not hold a tensor.
func (d *Dict) Get(path string) (t *tensor.RawTensor, ok bool) {
	v, found := d.Lookup(path)
	if !found || v.kind != KindTensor {
		return nil, false
	}
	return v.tensor, true
}

// GetDict returns the sub-dict at path. ok is false if the path is missing or
// does not hold a dict.
func (d *Dict) GetDict(path string) (sub *Dict, ok bool) {
	v, found := d.Lookup(path)
	if !found || v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}

// Has reports whether path exists, whatever it holds.
func (d *Dict) Has(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// Len returns the number of top-level keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.om.Len()
}

// Keys returns the top-level keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, d.om.Len())
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every top-level entry in insertion order.
// Iteration stops at the first error, which is returned.
func (d *Dict) Each(fn func(key string, v Value) error) error {
	if d == nil {
		return nil
	}
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
