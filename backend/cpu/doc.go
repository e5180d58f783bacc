// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Gonum BLAS matrix multiplication
//   - Im2col convolutions, parallel over the batch
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/born-rl/backend/cpu"
//	    "github.com/born-ml/born-rl/encoder"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    enc, err := encoder.Build(encoder.DefaultMLPConfig(8, 16), backend)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
