package nested_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/tensor"
)

func raw(shape ...int) *tensor.RawTensor {
	return tensor.MustRaw(tensor.Shape(shape), tensor.Float32, tensor.CPU)
}

// TestDict_DottedPaths tests that dotted paths read and write through nesting.
func TestDict_DottedPaths(t *testing.T) {
	h, c := raw(2, 1, 3), raw(2, 1, 3)
	d := nested.New().
		Set("obs", raw(2, 4)).
		Set("state_in.h", h).
		Set("state_in.c", c)

	got, ok := d.Get("state_in.h")
	require.True(t, ok)
	assert.Same(t, h, got)

	sub, ok := d.GetDict("state_in")
	require.True(t, ok)
	assert.Equal(t, []string{"h", "c"}, sub.Keys())

	assert.True(t, d.Has("state_in.c"))
	assert.False(t, d.Has("state_in.x"))
	assert.False(t, d.Has("obs.x"), "paths do not descend into tensors")

	_, ok = d.Get("state_in")
	assert.False(t, ok, "a dict is not a tensor")
	_, ok = d.GetDict("obs")
	assert.False(t, ok, "a tensor is not a dict")
}

// TestDict_Empty tests that empty values are present but hold nothing.
func TestDict_Empty(t *testing.T) {
	d := nested.New().SetEmpty("state_out")

	v, ok := d.Lookup("state_out")
	require.True(t, ok)
	assert.True(t, v.IsEmpty())
	assert.Equal(t, nested.KindEmpty, v.Kind())
	assert.True(t, d.Has("state_out"))

	assert.True(t, nested.TensorValue(nil).IsEmpty())
	assert.True(t, nested.DictValue(nil).IsEmpty())
}

// TestDict_Order tests that keys keep insertion order and overwrites keep position.
func TestDict_Order(t *testing.T) {
	d := nested.New().
		Set("z", raw(1)).
		Set("a", raw(1)).
		Set("m", raw(1)).
		Set("z", raw(2))

	if diff := cmp.Diff([]string{"z", "a", "m"}, d.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, d.Len())

	z, _ := d.Get("z")
	assert.Equal(t, tensor.Shape{2}, z.Shape())
}

// TestDict_WalkFlatten tests deterministic leaf traversal.
func TestDict_WalkFlatten(t *testing.T) {
	d := nested.New().
		Set("obs", raw(2, 4)).
		SetEmpty("seq_lens").
		Set("state_in.h", raw(2, 1, 3)).
		Set("state_in.c", raw(2, 1, 3))

	var paths []string
	for _, leaf := range d.Flatten() {
		paths = append(paths, leaf.Path)
	}
	if diff := cmp.Diff([]string{"obs", "state_in.h", "state_in.c"}, paths); diff != "" {
		t.Errorf("Flatten() paths mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	visited := 0
	err := d.Walk(func(string, *tensor.RawTensor) error {
		visited++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

// TestDict_MapLeaves tests structure-preserving transforms.
func TestDict_MapLeaves(t *testing.T) {
	d := nested.New().
		Set("a", raw(2)).
		SetEmpty("b").
		Set("c.d", raw(3))

	mapped := d.MapLeaves(func(_ string, r *tensor.RawTensor) *tensor.RawTensor {
		return tensor.MustRaw(r.Shape(), tensor.Float64, tensor.CPU)
	})

	assert.Equal(t, []string{"a", "b", "c"}, mapped.Keys())
	a, _ := mapped.Get("a")
	assert.Equal(t, tensor.Float64, a.DType())
	assert.True(t, mapped.Has("b"))
	cd, ok := mapped.Get("c.d")
	require.True(t, ok)
	assert.Equal(t, tensor.Float64, cd.DType())

	orig, _ := d.Get("a")
	assert.Equal(t, tensor.Float32, orig.DType(), "source dict is unchanged")
}

// TestDict_Clone tests that clones share tensors but not structure.
func TestDict_Clone(t *testing.T) {
	leaf := raw(2)
	d := nested.New().Set("x.y", leaf)

	c := d.Clone()
	c.Set("x.z", raw(1))

	got, _ := c.Get("x.y")
	assert.Same(t, leaf, got)
	assert.False(t, d.Has("x.z"))
}

// TestDict_SetReplacesLeafWithDict tests writing below an existing tensor key.
func TestDict_SetReplacesLeafWithDict(t *testing.T) {
	d := nested.New().Set("state", raw(1)).Set("state.h", raw(2))

	_, ok := d.GetDict("state")
	assert.True(t, ok)
	assert.True(t, d.Has("state.h"))
}

// TestDict_String tests the human-readable rendering.
func TestDict_String(t *testing.T) {
	d := nested.New().
		Set("encoder_out", raw(2, 8)).
		SetEmpty("state_out").
		Set("state_in.h", raw(2, 1, 3))

	assert.Equal(t, "{encoder_out: float32(2, 8), state_out: <empty>, state_in: {h: float32(2, 1, 3)}}", d.String())
	assert.Equal(t, "{}", nested.New().String())
}

// TestDict_NilSafe tests read methods on a nil Dict.
func TestDict_NilSafe(t *testing.T) {
	var d *nested.Dict
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Keys())
	assert.False(t, d.Has("x"))
	assert.NoError(t, d.Walk(func(string, *tensor.RawTensor) error { return nil }))
}

// TestMerge tests that the first dict wins and sub-dicts are unioned.
func TestMerge(t *testing.T) {
	ah := raw(1)
	a := nested.New().Set("h", ah).Set("sub.x", raw(1))
	b := nested.New().Set("h", raw(2)).Set("c", raw(3)).Set("sub.y", raw(1))

	m := nested.Merge(a, b)
	assert.Equal(t, []string{"h", "sub", "c"}, m.Keys())
	h, _ := m.Get("h")
	assert.Same(t, ah, h)
	sub, _ := m.GetDict("sub")
	assert.Equal(t, []string{"x", "y"}, sub.Keys())
	assert.False(t, a.Has("c"), "inputs are unchanged")

	assert.Equal(t, 0, nested.Merge(nil, nil).Len())
}
