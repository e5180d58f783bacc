package cpu

import (
	"fmt"

	"github.com/x448/float16"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Cast converts the tensor to a different data type.
// Returns x itself when it already has dtype.
//
// Float-to-integer conversion truncates toward zero. Float16 goes through
// float32 using IEEE 754 round-to-nearest-even.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFrom(result, x.AsFloat32())
	case tensor.Float64:
		castFrom(result, x.AsFloat64())
	case tensor.Float16:
		src := x.AsFloat16()
		wide := make([]float32, len(src))
		for i, v := range src {
			wide[i] = v.Float32()
		}
		castFrom(result, wide)
	case tensor.Int32:
		castFrom(result, x.AsInt32())
	case tensor.Int64:
		castFrom(result, x.AsInt64())
	case tensor.Uint8:
		castFrom(result, x.AsUint8())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
	return result
}

type realNumber interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

func castFrom[S realNumber](dst *tensor.RawTensor, src []S) {
	switch dst.DType() {
	case tensor.Float32:
		convert(dst.AsFloat32(), src)
	case tensor.Float64:
		convert(dst.AsFloat64(), src)
	case tensor.Int32:
		convert(dst.AsInt32(), src)
	case tensor.Int64:
		convert(dst.AsInt64(), src)
	case tensor.Uint8:
		convert(dst.AsUint8(), src)
	case tensor.Float16:
		out := dst.AsFloat16()
		for i, v := range src {
			out[i] = float16.Fromfloat32(float32(v))
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dst.DType()))
	}
}

func convert[D, S realNumber](dst []D, src []S) {
	for i, v := range src {
		dst[i] = D(v)
	}
}
