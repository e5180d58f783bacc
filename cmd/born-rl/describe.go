package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/born-rl/backend/cpu"
	"github.com/born-ml/born-rl/encoder"
	"github.com/born-ml/born-rl/spec"
)

func newDescribeCmd() *cobra.Command {
	var flags encoderFlags
	cmd := &cobra.Command{
		Use:   "describe mlp|cnn|lstm",
		Short: "Print the specs and parameters of an encoder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(args[0])
			if err != nil {
				return err
			}
			enc, err := encoder.Build(cfg, cpu.New())
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), enc)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func describe(w io.Writer, enc encoder.Model[*cpu.Backend]) {
	fmt.Fprintf(w, "Encoder: %s\n\n", enc.Name())
	writeSpecs(w, "INPUT", enc.InputSpecs())
	fmt.Fprintln(w)
	writeSpecs(w, "OUTPUT", enc.OutputSpecs())
	fmt.Fprintln(w)

	var data [][]string
	for _, p := range enc.Parameters() {
		data = append(data, []string{p.Name(), p.Shape().String(), humanize.Comma(int64(p.NumElements()))})
	}
	newTable(w, []string{"PARAMETER", "SHAPE", "COUNT"}, data).Render()

	n := enc.NumParameters()
	fmt.Fprintf(w, "\nTotal: %s parameters (%s as float32)\n", humanize.Comma(int64(n)), humanize.Bytes(uint64(4*n)))
}

func writeSpecs(w io.Writer, title string, specs *spec.Dict) {
	var data [][]string
	specs.Walk(func(path string, e spec.Entry) {
		data = append(data, []string{path, e.Kind().String(), e.String()})
	})
	newTable(w, []string{title, "KIND", "SPEC"}, data).Render()
}

func newTable(w io.Writer, header []string, data [][]string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	return table
}
