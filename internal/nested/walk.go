package nested

import (
	"fmt"
	"strings"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Leaf is a tensor together with its full dotted path.
type Leaf struct {
	Path   string
	Tensor *tensor.RawTensor
}

// Walk calls fn for every tensor leaf, depth first in insertion order.
// Empty values are skipped. Iteration stops at the first error.
func (d *Dict) Walk(fn func(path string, t *tensor.RawTensor) error) error {
	return d.walk("", fn)
}

func (d *Dict) walk(prefix string, fn func(path string, t *tensor.RawTensor) error) error {
	return d.Each(func(key string, v Value) error {
		path := JoinPath(prefix, key)
		switch v.kind {
		case KindTensor:
			return fn(path, v.tensor)
		case KindDict:
			return v.dict.walk(path, fn)
		}
		return nil
	})
}

// Flatten returns every tensor leaf in Walk order.
func (d *Dict) Flatten() []Leaf {
	var leaves []Leaf
	_ = d.Walk(func(path string, t *tensor.RawTensor) error {
		leaves = append(leaves, Leaf{Path: path, Tensor: t})
		return nil
	})
	return leaves
}

// MapLeaves returns a new Dict with the same structure as d where every
// tensor leaf is replaced by fn(path, leaf). Empty values stay empty.
// d is not modified.
func (d *Dict) MapLeaves(fn func(path string, t *tensor.RawTensor) *tensor.RawTensor) *Dict {
	return d.mapLeaves("", fn)
}

func (d *Dict) mapLeaves(prefix string, fn func(path string, t *tensor.RawTensor) *tensor.RawTensor) *Dict {
	out := New()
	if d == nil {
		return out
	}
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		path := JoinPath(prefix, pair.Key)
		v := pair.Value
		switch v.kind {
		case KindTensor:
			out.om.Set(pair.Key, TensorValue(fn(path, v.tensor)))
		case KindDict:
			out.om.Set(pair.Key, DictValue(v.dict.mapLeaves(path, fn)))
		default:
			out.om.Set(pair.Key, Value{})
		}
	}
	return out
}

// Clone copies the structure of d. Tensor leaves are shared.
func (d *Dict) Clone() *Dict {
	return d.MapLeaves(func(_ string, t *tensor.RawTensor) *tensor.RawTensor { return t })
}

// String renders d as {key: dtype(shape), sub: {...}, none: <empty>}.
func (d *Dict) String() string {
	var sb strings.Builder
	d.format(&sb)
	return sb.String()
}

func (d *Dict) format(sb *strings.Builder) {
	sb.WriteByte('{')
	first := true
	_ = d.Each(func(key string, v Value) error {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(key)
		sb.WriteString(": ")
		switch v.kind {
		case KindTensor:
			fmt.Fprintf(sb, "%s%v", v.tensor.DType(), v.tensor.Shape())
		case KindDict:
			v.dict.format(sb)
		default:
			sb.WriteString("<empty>")
		}
		return nil
	})
	sb.WriteByte('}')
}

// Merge returns a new Dict with the entries of a followed by the entries of b
// that a lacks. Keys holding dicts in both are merged recursively; otherwise
// a wins. Tensor leaves are shared.
func Merge(a, b *Dict) *Dict {
	out := a.Clone()
	_ = b.Each(func(key string, v Value) error {
		existing, ok := out.om.Get(key)
		switch {
		case !ok:
			if v.kind == KindDict {
				v = DictValue(v.dict.Clone())
			}
			out.om.Set(key, v)
		case existing.kind == KindDict && v.kind == KindDict:
			out.om.Set(key, DictValue(Merge(existing.dict, v.dict)))
		}
		return nil
	})
	return out
}
