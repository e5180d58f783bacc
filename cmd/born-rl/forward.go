package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/born-rl/backend/cpu"
	"github.com/born-ml/born-rl/encoder"
	"github.com/born-ml/born-rl/nested"
	"github.com/born-ml/born-rl/spec"
	"github.com/born-ml/born-rl/tensor"
)

func newForwardCmd() *cobra.Command {
	var (
		flags encoderFlags
		batch int
		steps int
	)
	cmd := &cobra.Command{
		Use:   "forward mlp|cnn|lstm",
		Short: "Run an encoder once on random observations and print the output shapes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch <= 0 || steps <= 0 {
				return errors.Errorf("--batch and --steps must be positive, got %d and %d", batch, steps)
			}
			cfg, err := flags.config(args[0])
			if err != nil {
				return err
			}
			backend := cpu.New()
			enc, err := encoder.Build(cfg, backend)
			if err != nil {
				return err
			}
			out, err := enc.Forward(sampleInputs(enc, batch, steps, backend))
			if err != nil {
				return err
			}
			writeOutputs(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&batch, "batch", 4, "batch size")
	cmd.Flags().IntVar(&steps, "steps", 8, "sequence length for recurrent encoders")
	return cmd
}

// sampleInputs fills every required tensor of the encoder's input specs with
// N(0, 1) noise and uses the encoder's initial state as state_in.
func sampleInputs(enc encoder.Model[*cpu.Backend], batch, steps int, backend *cpu.Backend) *nested.Dict {
	inputs := nested.New()
	enc.InputSpecs().Walk(func(path string, e spec.Entry) {
		if e.Kind() != spec.KindRequired {
			return
		}
		dims := e.TensorSpec().Dims()
		shape := make(tensor.Shape, len(dims))
		for i, d := range dims {
			switch {
			case d.Size > 0:
				shape[i] = d.Size
			case d.Name == "t":
				shape[i] = steps
			default:
				shape[i] = batch
			}
		}
		inputs.Set(path, tensor.Randn(shape, backend).Raw())
	})

	if state := enc.InitialState(batch); state.Len() > 0 {
		inputs.SetDict(encoder.KeyStateIn, state)
	}
	return inputs
}

func writeOutputs(w io.Writer, out *nested.Dict) {
	var data [][]string
	for _, leaf := range out.Flatten() {
		data = append(data, []string{leaf.Path, leaf.Tensor.Shape().String(), leaf.Tensor.DType().String()})
	}
	newTable(w, []string{"OUTPUT", "SHAPE", "DTYPE"}, data).Render()
	fmt.Fprintf(w, "\n%s\n", out)
}
