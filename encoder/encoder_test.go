// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package encoder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-rl/backend/cpu"
	"github.com/born-ml/born-rl/encoder"
	"github.com/born-ml/born-rl/nested"
	"github.com/born-ml/born-rl/spec"
	"github.com/born-ml/born-rl/tensor"
)

// TestPublicAPI drives an encoder through the public packages only.
func TestPublicAPI(t *testing.T) {
	backend := cpu.New()
	cfg := encoder.DefaultLSTMConfig(4, 2)
	cfg.HiddenDim = 8

	enc, err := encoder.Build(cfg, backend)
	require.NoError(t, err)

	obs := tensor.Randn(tensor.Shape{3, 5, 4}, backend)
	out, err := enc.Forward(nested.New().
		Set(encoder.KeyObs, obs.Raw()).
		SetDict(encoder.KeyStateIn, enc.InitialState(3)))
	require.NoError(t, err)

	y, ok := out.Get(encoder.KeyEncoderOut)
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{3, 5, 2}, y.Shape())

	_, err = enc.Forward(nested.New().Set(encoder.KeyObs, obs.Raw()))
	var v *spec.Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, spec.MissingKey, v.Reason)
	assert.Equal(t, encoder.KeyStateIn, v.Path)
}
