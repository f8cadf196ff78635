package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-modmatrix/internal/patch"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Execute a control script and print its dumps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := patch.LoadScript(args[0])
			if err != nil {
				return err
			}

			return runScript(cmd, opts, script, cmd.OutOrStdout())
		},
	}
}

// runScript executes script in a fresh session and renders every dump step to w.
func runScript(cmd *cobra.Command, opts *options, script *patch.Script, w io.Writer, sessionOpts ...patch.SessionOption) error {
	ctx, err := opts.resolve(script)
	if err != nil {
		return err
	}

	logger := opts.logger(cmd)
	logger.Debug("session", "sample_rate", ctx.SampleRate, "block_size", ctx.BlockSize)

	sess, err := patch.NewSession(ctx, patch.DefaultRegistry(), append(sessionOpts, patch.WithLogger(logger))...)
	if err != nil {
		return err
	}

	if err := sess.Run(cmd.Context(), &patch.Script{Objects: script.Objects}, nil); err != nil {
		return err
	}

	var st styles
	if w != nil {
		st = newStyles(w, defaultTheme)
	}

	for i, step := range script.Steps {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		var dump strings.Builder
		if err := sess.Exec(step, &dump); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}

		if step.Op != patch.OpDump || w == nil {
			continue
		}

		fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("# step %d: dump", i+1)))
		fmt.Fprintln(w, st.renderDump(dump.String()))
	}

	return nil
}
