package spec

import (
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/born-rl/internal/nested"
)

// Kind says what an Entry demands of its key.
type Kind int

// Entry kinds.
const (
	// KindRequired: the key must hold a tensor matching the TensorSpec.
	KindRequired Kind = iota
	// KindAnyShape: the key must be present and may hold anything, including nothing.
	KindAnyShape
	// KindOptional: the key may be absent; if present it may hold anything.
	KindOptional
	// KindNested: the key must hold a dict that validates against the nested Dict.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindAnyShape:
		return "any"
	case KindOptional:
		return "optional"
	case KindNested:
		return "nested"
	}
	return "Kind(" + itoa(int(k)) + ")"
}

// Entry is one key's requirement in a Dict.
type Entry struct {
	kind   Kind
	tensor TensorSpec
	nested *Dict
}

// Required demands a tensor matching ts.
func Required(ts TensorSpec) Entry {
	return Entry{kind: KindRequired, tensor: ts}
}

// AnyShape demands presence only.
func AnyShape() Entry {
	return Entry{kind: KindAnyShape}
}

// Optional accepts anything, including absence.
func Optional() Entry {
	return Entry{kind: KindOptional}
}

// Nested demands a sub-dict validating against d.
func Nested(d *Dict) Entry {
	return Entry{kind: KindNested, nested: d}
}

// Kind returns the entry kind.
func (e Entry) Kind() Kind { return e.kind }

// TensorSpec returns the tensor spec of a KindRequired entry.
func (e Entry) TensorSpec() TensorSpec { return e.tensor }

// Dict returns the sub-spec of a KindNested entry.
func (e Entry) Dict() *Dict { return e.nested }

func (e Entry) String() string {
	switch e.kind {
	case KindRequired:
		return e.tensor.String()
	case KindNested:
		return e.nested.String()
	}
	return "<" + e.kind.String() + ">"
}

// Dict is an ordered set of key requirements. Keys of data not named in the
// Dict are ignored.
type Dict struct {
	om *orderedmap.OrderedMap[string, Entry]
}

// NewDict creates an empty Dict.
func NewDict() *Dict {
	return &Dict{om: orderedmap.New[string, Entry]()}
}

// Set stores e at path, creating nested dicts for dotted paths.
// It returns d so calls can be chained.
//
// Example:
//
//	d := spec.NewDict().
//	    Set("obs", spec.Required(spec.MustParse("b, d", spec.Bind("d", 8)))).
//	    Set("state_in.h", spec.Required(spec.MustParse("b, l, h")))
func (d *Dict) Set(path string, e Entry) *Dict {
	keys := nested.SplitPath(path)
	cur := d
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur.om.Get(k)
		if !ok || next.kind != KindNested {
			next = Nested(NewDict())
			cur.om.Set(k, next)
		}
		cur = next.nested
	}
	cur.om.Set(keys[len(keys)-1], e)
	return d
}

// Get returns the entry at path.
func (d *Dict) Get(path string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	keys := nested.SplitPath(path)
	cur := d
	for i, k := range keys {
		e, ok := cur.om.Get(k)
		if !ok {
			return Entry{}, false
		}
		if i == len(keys)-1 {
			return e, true
		}
		if e.kind != KindNested {
			return Entry{}, false
		}
		cur = e.nested
	}
	return Entry{}, false
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

// Len returns the number of top-level keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.om.Len()
}

// Validate checks data against d in insertion order and returns the first
// *Violation found, or nil. A nil Dict accepts anything.
func (d *Dict) Validate(data *nested.Dict) error {
	if v := d.validate("", data); v != nil {
		return v
	}
	return nil
}

func (d *Dict) validate(prefix string, data *nested.Dict) *Violation {
	if d == nil {
		return nil
	}
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		path := nested.JoinPath(prefix, pair.Key)
		e := pair.Value
		value, present := data.Lookup(pair.Key)

		if !present {
			if e.kind == KindOptional {
				continue
			}
			return &Violation{Path: path, Reason: MissingKey}
		}

		switch e.kind {
		case KindRequired:
			if value.Kind() != nested.KindTensor {
				return &Violation{Path: path, Reason: NotTensor}
			}
			if v := e.tensor.Check(value.Tensor()); v != nil {
				v.Path = path
				return v
			}
		case KindNested:
			if value.Kind() != nested.KindDict {
				return &Violation{Path: path, Reason: NotDict}
			}
			if v := e.nested.validate(path, value.Dict()); v != nil {
				return v
			}
		}
	}
	return nil
}

// Merge returns a Dict that data satisfies only if it satisfies both a and
// b: the keys of a followed by the keys of b that a lacks. Where both name a
// key the stricter entry is kept (Required and Nested over AnyShape over
// Optional), nested dicts merge recursively and tensor specs combine their
// bound sizes. Entries no single value can satisfy, such as tensor specs of
// different rank or bound size, are an error naming the key.
func Merge(a, b *Dict) (*Dict, error) {
	return merge("", a, b)
}

func merge(prefix string, a, b *Dict) (*Dict, error) {
	out := NewDict()
	for _, src := range []*Dict{a, b} {
		if src == nil {
			continue
		}
		for pair := src.om.Oldest(); pair != nil; pair = pair.Next() {
			existing, ok := out.om.Get(pair.Key)
			if !ok {
				out.om.Set(pair.Key, pair.Value)
				continue
			}
			e, err := mergeEntry(nested.JoinPath(prefix, pair.Key), existing, pair.Value)
			if err != nil {
				return nil, err
			}
			out.om.Set(pair.Key, e)
		}
	}
	return out, nil
}

func mergeEntry(path string, a, b Entry) (Entry, error) {
	switch {
	case a.kind == KindOptional:
		return b, nil
	case b.kind == KindOptional || b.kind == KindAnyShape:
		return a, nil
	case a.kind == KindAnyShape:
		return b, nil
	case a.kind == KindNested && b.kind == KindNested:
		d, err := merge(path, a.nested, b.nested)
		if err != nil {
			return Entry{}, err
		}
		return Nested(d), nil
	case a.kind == KindRequired && b.kind == KindRequired:
		ts, err := mergeTensorSpecs(a.tensor, b.tensor)
		if err != nil {
			return Entry{}, errors.Wrapf(err, "%q", path)
		}
		return Required(ts), nil
	}
	return Entry{}, errors.Errorf("%q: cannot merge %s entry %s with %s entry %s", path, a.kind, a, b.kind, b)
}

// mergeTensorSpecs combines two specs of equal rank. Dimension names come
// from a; a size bound in either is bound in the result.
func mergeTensorSpecs(a, b TensorSpec) (TensorSpec, error) {
	if len(a.dims) != len(b.dims) {
		return TensorSpec{}, errors.Errorf("rank %d spec %s conflicts with rank %d spec %s", len(a.dims), a, len(b.dims), b)
	}
	out := TensorSpec{dims: append([]Dim(nil), a.dims...), dtype: a.dtype, hasDType: a.hasDType}
	for i, d := range b.dims {
		switch {
		case d.Size == 0:
		case out.dims[i].Size == 0:
			out.dims[i].Size = d.Size
		case out.dims[i].Size != d.Size:
			return TensorSpec{}, errors.Errorf("dimension %d is %d in %s but %d in %s", i, out.dims[i].Size, a, d.Size, b)
		}
	}
	if b.hasDType {
		if out.hasDType && out.dtype != b.dtype {
			return TensorSpec{}, errors.Errorf("dtype %s conflicts with %s", out.dtype, b.dtype)
		}
		out.dtype, out.hasDType = b.dtype, true
	}
	return out, nil
}

// String renders d as {key: (b, d=8), state: {h: (b, l, h)}, seq_lens: <optional>}.
func (d *Dict) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range d.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		e, _ := d.om.Get(key)
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(e.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Walk calls fn for every entry that is not KindNested, with its full dotted
// path, depth first in insertion order.
func (d *Dict) Walk(fn func(path string, e Entry)) {
	d.walk("", fn)
}

func (d *Dict) walk(prefix string, fn func(path string, e Entry)) {
	if d == nil {
		return
	}
	for pair := d.om.Oldest(); pair != nil; pair = pair.Next() {
		path := nested.JoinPath(prefix, pair.Key)
		if pair.Value.kind == KindNested {
			pair.Value.nested.walk(path, fn)
			continue
		}
		fn(path, pair.Value)
	}
}
