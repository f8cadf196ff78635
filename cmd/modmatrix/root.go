package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-modmatrix/internal/patch"
)

const (
	envSampleRate = "MODMATRIX_SAMPLE_RATE"
	envBlockSize  = "MODMATRIX_BLOCK_SIZE"

	defaultSampleRate = 48000.0
	defaultBlockSize  = 64
)

type options struct {
	verbose    bool
	envFile    string
	sampleRate float64
	blockSize  int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "modmatrix",
		Short: "Run modulation matrix control scripts",
		Long: `modmatrix - build modulation patches from YAML control scripts.

A script declares named objects (LFOs, followers, effects, filters) and a
list of steps that link, unlink and retune them, process audio blocks and
dump the matrix.

The sample rate and block size come from, in order of precedence, the
--sample-rate/--block-size flags, the script's sample_rate/block_size,
the MODMATRIX_SAMPLE_RATE/MODMATRIX_BLOCK_SIZE environment variables
(optionally read from a .env file) and finally 48000 Hz / 64 frames.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.loadEnv()
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log matrix edits at debug level")
	root.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().Float64Var(&opts.sampleRate, "sample-rate", 0, "sample rate in Hz (overrides script and environment)")
	root.PersistentFlags().IntVar(&opts.blockSize, "block-size", 0, "block size in frames (overrides script and environment)")

	root.AddCommand(newRunCmd(opts), newRenderCmd(opts), newTypesCmd(opts))

	return root
}

// loadEnv reads the dotenv file. A missing file is not an error.
func (o *options) loadEnv() error {
	if o.envFile == "" {
		return nil
	}

	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", o.envFile, err)
	}

	return nil
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// resolve resolves the processing environment for script.
func (o *options) resolve(script *patch.Script) (patch.Context, error) {
	ctx := patch.Context{SampleRate: defaultSampleRate, BlockSize: defaultBlockSize}

	if v, ok := os.LookupEnv(envSampleRate); ok {
		sr, err := strconv.ParseFloat(v, 64)
		if err != nil || sr <= 0 {
			return patch.Context{}, fmt.Errorf("%s: invalid sample rate %q", envSampleRate, v)
		}

		ctx.SampleRate = sr
	}

	if v, ok := os.LookupEnv(envBlockSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return patch.Context{}, fmt.Errorf("%s: invalid block size %q", envBlockSize, v)
		}

		ctx.BlockSize = n
	}

	if script != nil {
		if script.SampleRate > 0 {
			ctx.SampleRate = script.SampleRate
		}

		if script.BlockSize > 0 {
			ctx.BlockSize = script.BlockSize
		}
	}

	if o.sampleRate > 0 {
		ctx.SampleRate = o.sampleRate
	}

	if o.blockSize > 0 {
		ctx.BlockSize = o.blockSize
	}

	return ctx, nil
}
