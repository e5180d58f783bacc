// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for Born RL.
//
// # Overview
//
// Tensors are the values that flow through encoders. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - Dtype-erased RawTensor values, used as leaves of nested dicts
//   - NumPy-style broadcasting for element-wise operations
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/born-rl/backend/cpu"
//	    "github.com/born-ml/born-rl/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//
//	    // Observations enter encoders as raw tensors.
//	    obs := z.Raw()
//	}
//
// # Data Types
//
// Float32 is the compute type of every encoder. Float64, Float16, Int32, Int64
// and Uint8 observations are accepted and cast on entry.
//
// # Thread Safety
//
// Operations never write into their operands, so a tensor can be read from
// several goroutines. Set and writes through Data are not synchronized.
package tensor
