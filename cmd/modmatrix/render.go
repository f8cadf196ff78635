package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-modmatrix/internal/patch"
	"github.com/cwbudde/algo-modmatrix/internal/probe"
)

type renderOptions struct {
	input string
	freq  float64
	amp   float64
	seed  uint64
	quiet bool
}

func newRenderCmd(opts *options) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <script.yaml>",
		Short: "Execute a script over a test signal and analyze the output",
		Long: `Render feeds every process step of the script with a generated test
signal (sine, noise, dc or silence), collects the processed blocks and
prints their peak and RMS level and dominant frequency.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := patch.LoadScript(args[0])
			if err != nil {
				return err
			}

			ctx, err := opts.resolve(script)
			if err != nil {
				return err
			}

			input, err := ro.generator(ctx.SampleRate)
			if err != nil {
				return err
			}

			var rendered []float64

			collect := func(block []float64) { rendered = append(rendered, block...) }

			dumps := cmd.OutOrStdout()
			if ro.quiet {
				dumps = nil
			}

			if err := runScript(cmd, opts, script, dumps, patch.WithInput(input), patch.WithOutput(collect)); err != nil {
				return err
			}

			return printReport(cmd.OutOrStdout(), rendered, ctx.SampleRate)
		},
	}

	cmd.Flags().StringVar(&ro.input, "input", "sine", "test signal: sine, noise, dc or silence")
	cmd.Flags().Float64Var(&ro.freq, "freq", 220, "sine frequency in Hz")
	cmd.Flags().Float64Var(&ro.amp, "amp", 0.5, "test signal amplitude")
	cmd.Flags().Uint64Var(&ro.seed, "seed", 1, "noise seed")
	cmd.Flags().BoolVarP(&ro.quiet, "quiet", "q", false, "do not print dump steps")

	return cmd
}

// generator returns a block filler for the selected test signal. The sine
// keeps its phase across blocks.
func (ro *renderOptions) generator(sampleRate float64) (func([]float64), error) {
	switch ro.input {
	case "sine":
		if ro.freq <= 0 || ro.freq >= sampleRate/2 {
			return nil, fmt.Errorf("sine frequency must be in (0, %g): %g", sampleRate/2, ro.freq)
		}

		step := 2 * math.Pi * ro.freq / sampleRate
		phase := 0.0

		return func(block []float64) {
			for i := range block {
				block[i] = ro.amp * math.Sin(phase)
				phase = math.Mod(phase+step, 2*math.Pi)
			}
		}, nil
	case "noise":
		rng := rand.New(rand.NewPCG(ro.seed, ro.seed^0x9e3779b97f4a7c15))

		return func(block []float64) {
			for i := range block {
				block[i] = ro.amp * (2*rng.Float64() - 1)
			}
		}, nil
	case "dc":
		return func(block []float64) {
			for i := range block {
				block[i] = ro.amp
			}
		}, nil
	case "silence":
		return func(block []float64) { clear(block) }, nil
	default:
		return nil, fmt.Errorf("unknown input %q", ro.input)
	}
}

func printReport(w io.Writer, rendered []float64, sampleRate float64) error {
	st := newStyles(w, defaultTheme)

	if len(rendered) == 0 {
		fmt.Fprintln(w, st.Warn.Render("no blocks processed"))
		return nil
	}

	r, err := probe.Analyze(rendered, sampleRate)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, st.Title.Render("# render"))
	fmt.Fprintf(w, "%s %d (%.3f s)\n", st.Label.Render("samples: "), r.Samples, float64(r.Samples)/sampleRate)
	fmt.Fprintf(w, "%s %.4f (%.1f dBFS)\n", st.Label.Render("peak:    "), r.Peak, r.PeakDB)
	fmt.Fprintf(w, "%s %.4f (%.1f dBFS)\n", st.Label.Render("rms:     "), r.RMS, r.RMSDB)
	fmt.Fprintf(w, "%s %.1f Hz\n", st.Label.Render("dominant:"), r.DominantHz)

	return nil
}
