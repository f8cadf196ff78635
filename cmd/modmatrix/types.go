package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-modmatrix/dsp/modmatrix"
	"github.com/cwbudde/algo-modmatrix/internal/patch"
)

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List object types and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := opts.resolve(nil)
			if err != nil {
				return err
			}

			reg := patch.DefaultRegistry()
			st := newStyles(cmd.OutOrStdout(), defaultTheme)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tKIND\tPARAMETERS")

			for _, objectType := range reg.Types() {
				obj, err := reg.Build(ctx, objectType, patch.Params{})
				if err != nil {
					return err
				}

				kind := "processor"
				if _, ok := obj.(modmatrix.SignalSource); ok {
					kind = "source"
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\n", objectType, kind, strings.Join(obj.Parameters(), ", "))
			}

			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), st.Help.Render("Parameters can be set in a script's params or with a set step."))

			return nil
		},
	}
}
