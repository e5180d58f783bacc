// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package encoder provides the RL encoders of Born RL.
//
// # Overview
//
// An encoder turns observations into a latent tensor. Available variants:
//   - MLP: (batch, features) observations
//   - CNN: (batch, width, height, channels) images
//   - LSTM: observation sequences with explicit recurrent state
//   - ActorCritic: one input routed through a policy and a value encoder
//
// Every encoder declares the structure it accepts and produces. Forward
// rejects inputs that do not match with an *InputSpecViolation naming the
// offending key and dimension.
//
// # Basic Usage
//
//	backend := cpu.New()
//	enc, err := encoder.Build(encoder.DefaultLSTMConfig(8, 16), backend)
//	if err != nil {
//	    return err
//	}
//
//	out, err := enc.Forward(nested.New().
//	    Set(encoder.KeyObs, obs).
//	    SetDict(encoder.KeyStateIn, enc.InitialState(batch)))
//	latent, _ := out.Get(encoder.KeyEncoderOut)
//	next, _ := out.GetDict(encoder.KeyStateOut)
//
// # Recurrent State
//
// Encoders keep nothing between calls. Pass state_out of one call as
// state_in of the next.
package encoder
