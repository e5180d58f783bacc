package encoder

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/backend/cpu"
	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// wideOutput is an MLP encoder whose encoder_out is wider than it declares.
type wideOutput struct {
	*MLPEncoder[*cpu.CPUBackend]
}

func (w wideOutput) Forward(inputs *nested.Dict) (*nested.Dict, error) {
	out, err := w.MLPEncoder.Forward(inputs)
	if err != nil {
		return nil, err
	}
	y, _ := out.Get(KeyEncoderOut)
	wide := tensor.MustRaw(tensor.Shape{y.Shape()[0], 99}, tensor.Float32, w.backend.Device())
	return out.Set(KeyEncoderOut, wide), nil
}

// captureKlog routes klog at verbosity v into a buffer until the test ends.
func captureKlog(t *testing.T, v string) *bytes.Buffer {
	t.Helper()
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	require.NoError(t, fs.Set("v", v))

	var buf bytes.Buffer
	klog.LogToStderr(false)
	klog.SetOutput(&buf)
	t.Cleanup(func() {
		klog.Flush()
		_ = fs.Set("v", "0")
		klog.SetOutput(os.Stderr)
		klog.LogToStderr(true)
	})
	return &buf
}

// TestActorCriticEncoder_OutputViolationLogged tests that the composite's own
// output check reports and logs like any encoder's.
func TestActorCriticEncoder_OutputViolationLogged(t *testing.T) {
	backend := cpu.New()
	actor, err := NewMLPEncoder(DefaultMLPConfig(4, 2), backend)
	require.NoError(t, err)
	inner, err := NewMLPEncoder(DefaultMLPConfig(4, 1), backend)
	require.NoError(t, err)
	enc, err := NewActorCriticFrom[*cpu.CPUBackend]("ac", actor, wideOutput{inner}, false)
	require.NoError(t, err)

	logs := captureKlog(t, "1")
	x := tensor.MustRaw(tensor.Shape{3, 4}, tensor.Float32, backend.Device())
	out, err := enc.Forward(nested.New().Set(KeyObs, x))
	assert.Nil(t, out)

	var ov *OutputSpecViolation
	require.ErrorAs(t, err, &ov)
	assert.Equal(t, "ac", ov.Encoder)
	assert.Equal(t, "critic.encoder_out", ov.Violation.Path)
	assert.Equal(t, spec.DimMismatch, ov.Violation.Reason)
	assert.Equal(t, 99, ov.Violation.Actual)

	klog.Flush()
	assert.Contains(t, logs.String(), "Output spec violation")
	assert.Contains(t, logs.String(), `encoder="ac"`)
	assert.Contains(t, logs.String(), `path="critic.encoder_out"`)
}
