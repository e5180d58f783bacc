// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package encoder

import (
	"github.com/born-ml/born-rl/internal/encoder"
	"github.com/born-ml/born-rl/internal/tensor"
)

// Encoder is the contract shared by all encoder variants.
type Encoder = encoder.Encoder

// Model is an Encoder that also exposes its parameters.
type Model[B tensor.Backend] = encoder.Model[B]

// Config selects and parameterises an encoder variant.
type Config = encoder.Config

// Variant configs.
type (
	MLPConfig         = encoder.MLPConfig
	CNNConfig         = encoder.CNNConfig
	FilterSpec        = encoder.FilterSpec
	LSTMConfig        = encoder.LSTMConfig
	ActorCriticConfig = encoder.ActorCriticConfig
)

// Encoder types.
type (
	MLPEncoder[B tensor.Backend]         = encoder.MLPEncoder[B]
	CNNEncoder[B tensor.Backend]         = encoder.CNNEncoder[B]
	LSTMEncoder[B tensor.Backend]        = encoder.LSTMEncoder[B]
	ActorCriticEncoder[B tensor.Backend] = encoder.ActorCriticEncoder[B]
)

// Spec violation errors returned by Forward.
type (
	InputSpecViolation  = encoder.InputSpecViolation
	OutputSpecViolation = encoder.OutputSpecViolation
)

// Well-known keys of encoder inputs and outputs.
const (
	KeyObs        = encoder.KeyObs
	KeySeqLens    = encoder.KeySeqLens
	KeyStateIn    = encoder.KeyStateIn
	KeyStateOut   = encoder.KeyStateOut
	KeyEncoderOut = encoder.KeyEncoderOut
	KeyHidden     = encoder.KeyHidden
	KeyCell       = encoder.KeyCell
	KeyActor      = encoder.KeyActor
	KeyCritic     = encoder.KeyCritic
)

// Build validates cfg and constructs the matching encoder on backend.
//
// Example:
//
//	enc, err := encoder.Build(encoder.DefaultCNNConfig(84, 84, 3, 256), cpu.New())
func Build[B tensor.Backend](cfg Config, backend B) (Model[B], error) {
	return encoder.Build(cfg, backend)
}

// DefaultMLPConfig returns two hidden layers of 256 ReLU units.
func DefaultMLPConfig(inputDim, outputDim int) MLPConfig {
	return encoder.DefaultMLPConfig(inputDim, outputDim)
}

// DefaultCNNConfig returns two stride-2 4x4 ReLU convolutions.
func DefaultCNNConfig(width, height, channels, outputDim int) CNNConfig {
	return encoder.DefaultCNNConfig(width, height, channels, outputDim)
}

// DefaultLSTMConfig returns one batch-major layer of 256 units.
func DefaultLSTMConfig(inputDim, outputDim int) LSTMConfig {
	return encoder.DefaultLSTMConfig(inputDim, outputDim)
}

// NewMLPEncoder builds an MLP encoder.
func NewMLPEncoder[B tensor.Backend](cfg MLPConfig, backend B) (*MLPEncoder[B], error) {
	return encoder.NewMLPEncoder(cfg, backend)
}

// NewCNNEncoder builds a CNN encoder.
func NewCNNEncoder[B tensor.Backend](cfg CNNConfig, backend B) (*CNNEncoder[B], error) {
	return encoder.NewCNNEncoder(cfg, backend)
}

// NewLSTMEncoder builds an LSTM encoder.
func NewLSTMEncoder[B tensor.Backend](cfg LSTMConfig, backend B) (*LSTMEncoder[B], error) {
	return encoder.NewLSTMEncoder(cfg, backend)
}

// NewActorCriticEncoder builds an actor-critic encoder from cfg.
func NewActorCriticEncoder[B tensor.Backend](cfg ActorCriticConfig, backend B) (*ActorCriticEncoder[B], error) {
	return encoder.NewActorCriticEncoder(cfg, backend)
}

// NewActorCriticFrom wraps two built encoders. Pass the same encoder twice
// to share it. It fails when the two input specs conflict.
func NewActorCriticFrom[B tensor.Backend](name string, actor, critic Model[B], parallel bool) (*ActorCriticEncoder[B], error) {
	return encoder.NewActorCriticFrom(name, actor, critic, parallel)
}
