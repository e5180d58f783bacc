// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network layers encoders are built from.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, LSTM
//   - Normalization: LayerNorm, ChannelLayerNorm
//   - Activations: Identity, ReLU, Sigmoid, Tanh, SiLU, ELU
//   - Utilities: Sequential, Flatten, Module interface, Parameter
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/born-rl/backend/cpu"
//	    "github.com/born-ml/born-rl/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    model := nn.NewSequential[*cpu.Backend](
//	        nn.NewLinear(8, 64, true, backend),
//	        nn.NewActivation[*cpu.Backend](nn.ActivationTanh),
//	        nn.NewLinear(64, 4, true, backend),
//	    )
//	    y := model.Forward(x)
//	}
//
// # Parameter Names
//
// Sequential prefixes the parameters of its i-th module with "i.", so the
// model above reports 0.weight, 0.bias, 2.weight and 2.bias.
package nn
