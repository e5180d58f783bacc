package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-rl/internal/tensor"
)

// TestConv2D_BasicForward tests a single-channel convolution without padding.
func TestConv2D_BasicForward(t *testing.T) {
	backend := New()

	// Input: 1x1x3x3 with values 1..9.
	input := rawFloat32(t, tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	// Kernel: diagonal 2x2.
	kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, 1, 0, 0, 1)

	output := backend.Conv2D(input, kernel, 1, 0)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{6, 8, 12, 14}, output.AsFloat32())
}

// TestConv2D_WithPadding tests zero padding keeps spatial size for a 3x3 kernel.
func TestConv2D_WithPadding(t *testing.T) {
	backend := New()

	input := rawFloat32(t, tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	kernel := rawFloat32(t, tensor.Shape{1, 1, 3, 3}, 1, 1, 1, 1, 1, 1, 1, 1, 1)

	output := backend.Conv2D(input, kernel, 1, 1)
	require.Equal(t, tensor.Shape{1, 1, 3, 3}, output.Shape())
	out := output.AsFloat32()
	assert.Equal(t, float32(12), out[0]) // 1+2+4+5
	assert.Equal(t, float32(45), out[4]) // sum of all
	assert.Equal(t, float32(28), out[8]) // 5+6+8+9
}

// TestConv2D_WithStride tests stride 2 on a 4x4 input.
func TestConv2D_WithStride(t *testing.T) {
	backend := New()

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input := rawFloat32(t, tensor.Shape{1, 1, 4, 4}, data...)
	kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, 1, 1, 1, 1)

	output := backend.Conv2D(input, kernel, 2, 0)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{14, 22, 46, 54}, output.AsFloat32())
}

// TestConv2D_MultiChannel tests channel summation and multiple output channels.
func TestConv2D_MultiChannel(t *testing.T) {
	backend := New()

	// Two 2x2 input channels.
	input := rawFloat32(t, tensor.Shape{1, 2, 2, 2}, 1, 2, 3, 4, 10, 20, 30, 40)
	// Out channel 0 sums both inputs, out channel 1 takes input 1 only.
	kernel := rawFloat32(t, tensor.Shape{2, 2, 1, 1}, 1, 1, 0, 1)

	output := backend.Conv2D(input, kernel, 1, 0)
	assert.Equal(t, tensor.Shape{1, 2, 2, 2}, output.Shape())
	assert.Equal(t, []float32{11, 22, 33, 44, 10, 20, 30, 40}, output.AsFloat32())
}

// TestConv2D_Batch tests that samples in a batch are convolved independently.
func TestConv2D_Batch(t *testing.T) {
	for name, backend := range map[string]*CPUBackend{"Parallel": New(), "Sequential": NewSequential()} {
		t.Run(name, func(t *testing.T) {
			input := rawFloat32(t, tensor.Shape{3, 1, 2, 2},
				1, 2, 3, 4,
				2, 4, 6, 8,
				0, 0, 0, 1)
			kernel := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, 1, 1, 1, 1)

			output := backend.Conv2D(input, kernel, 1, 0)
			assert.Equal(t, tensor.Shape{3, 1, 1, 1}, output.Shape())
			assert.Equal(t, []float32{10, 20, 1}, output.AsFloat32())
		})
	}
}

// TestConv2D_InvalidInput tests geometry errors panic.
func TestConv2D_InvalidInput(t *testing.T) {
	backend := New()
	input := rawFloat32(t, tensor.Shape{1, 1, 2, 2}, 1, 2, 3, 4)

	assert.Panics(t, func() {
		backend.Conv2D(input, rawFloat32(t, tensor.Shape{1, 2, 1, 1}, 1, 1), 1, 0)
	}, "channel mismatch")
	assert.Panics(t, func() {
		backend.Conv2D(input, rawFloat32(t, tensor.Shape{1, 1, 3, 3}, make([]float32, 9)...), 1, 0)
	}, "kernel larger than input")
}
