package cpu

import (
	"fmt"

	"github.com/born-ml/born-rl/internal/parallel"
	"github.com/born-ml/born-rl/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Each sample's receptive fields are unrolled into a [out_h*out_w, C_in*K_h*K_w]
// matrix and multiplied against the flattened kernel with a single GEMM.
// Samples are processed in parallel.
//
// Reference: "High Performance Convolutional Neural Networks for Document Processing"
// (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv2d: only float32 supported, got %s and %s", input.DType(), kernel.DType()))
	}
	if stride < 1 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d or padding %d", stride, padding))
	}

	n, cIn, h, w := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	cOut, kCIn, kH, kW := kernelShape[0], kernelShape[1], kernelShape[2], kernelShape[3]
	if cIn != kCIn {
		panic(fmt.Sprintf("conv2d: channel mismatch: input has %d channels, kernel expects %d", cIn, kCIn))
	}

	outH := (h+2*padding-kH)/stride + 1
	outW := (w+2*padding-kW)/stride + 1
	if outH <= 0 || outW <= 0 {
		panic(fmt.Sprintf("conv2d: kernel %dx%d too large for input %dx%d with padding %d", kH, kW, h, w, padding))
	}

	result, err := tensor.NewRaw(tensor.Shape{n, cOut, outH, outW}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create result tensor: %v", err))
	}

	g := convGeometry{
		cIn: cIn, h: h, w: w,
		kH: kH, kW: kW,
		outH: outH, outW: outW,
		stride: stride, padding: padding,
	}
	in := input.AsFloat32()
	k := kernel.AsFloat32()
	out := result.AsFloat32()
	sampleIn := cIn * h * w
	sampleOut := cOut * outH * outW
	patch := cIn * kH * kW

	parallel.For(n, func(b int) {
		cols := make([]float32, outH*outW*patch)
		g.im2col(cols, in[b*sampleIn:(b+1)*sampleIn])
		// [C_out, patch] @ [outH*outW, patch]^T -> [C_out, outH*outW]
		gemm32(out[b*sampleOut:(b+1)*sampleOut], k, cols, cOut, patch, outH*outW, true)
	}, cpu.parallel)

	return result
}

type convGeometry struct {
	cIn, h, w       int
	kH, kW          int
	outH, outW      int
	stride, padding int
}

// im2col unrolls one [C, H, W] sample into rows of receptive fields.
// Padded positions read as zero.
func (g convGeometry) im2col(cols, sample []float32) {
	patch := g.cIn * g.kH * g.kW
	for oh := 0; oh < g.outH; oh++ {
		for ow := 0; ow < g.outW; ow++ {
			row := cols[(oh*g.outW+ow)*patch:]
			col := 0
			for c := 0; c < g.cIn; c++ {
				for kh := 0; kh < g.kH; kh++ {
					ih := oh*g.stride + kh - g.padding
					for kw := 0; kw < g.kW; kw++ {
						iw := ow*g.stride + kw - g.padding
						if ih >= 0 && ih < g.h && iw >= 0 && iw < g.w {
							row[col] = sample[(c*g.h+ih)*g.w+iw]
						} else {
							row[col] = 0
						}
						col++
					}
				}
			}
		}
	}
}
