package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Born RL "+version+"\n", out)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "mlp", "--input-dims", "4", "--hidden", "8", "--output", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Encoder: mlp")
	assert.Contains(t, out, "0.weight")
	assert.Contains(t, out, "(b, d=4)")
	assert.Contains(t, out, "Total: 58 parameters (232 B as float32)")
}

func TestDescribe_ActorCritic(t *testing.T) {
	out, err := run(t, "describe", "lstm", "--input-dims", "3", "--hidden", "4", "--actor-critic", "--shared")
	require.NoError(t, err)
	assert.Contains(t, out, "Encoder: actor_critic")
	assert.Contains(t, out, "shared.lstm.0.input_weight")
	assert.Contains(t, out, "critic.state_out.h")
}

func TestForward(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"forward", "mlp", "--input-dims", "4", "--hidden", "8", "--output", "2", "--batch", "3"}, "encoder_out: float32(3, 2)"},
		{[]string{"forward", "cnn", "--input-dims", "8,8,1", "--output", "5", "--batch", "2"}, "encoder_out: float32(2, 5)"},
		{[]string{"forward", "lstm", "--input-dims", "3", "--hidden", "4", "--output", "2", "--batch", "2", "--steps", "5"}, "h: float32(2, 1, 4)"},
		{[]string{"forward", "lstm", "--input-dims", "3", "--hidden", "4", "--time-major", "--batch", "2", "--steps", "5", "--output", "2"}, "encoder_out: float32(5, 2, 2)"},
		{[]string{"forward", "mlp", "--input-dims", "4", "--actor-critic", "--parallel"}, "critic.encoder_out"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, "%v", tt.args)
		assert.Contains(t, out, tt.want, "%v", tt.args)
	}
}

func TestInvalidInvocations(t *testing.T) {
	for _, args := range [][]string{
		{"describe", "gru"},
		{"describe", "mlp", "--activation", "gelu"},
		{"describe", "cnn", "--input-dims", "8,8"},
		{"describe", "lstm", "--lstm-layers", "0"},
		{"forward", "mlp", "--batch", "0"},
		{"describe"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, "%v", args)
	}
}
