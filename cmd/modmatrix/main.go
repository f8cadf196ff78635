// Command modmatrix runs modulation-matrix control scripts.
//
// Usage:
//
//	modmatrix [flags] <command> [args]
//
// Commands:
//
//	run     execute a YAML control script and print its dumps
//	render  execute a script over a test signal and analyze the output
//	types   list the object types a script can create
//
// Examples:
//
//	modmatrix run examples/sweep.yaml
//	modmatrix render --input sine --freq 220 examples/sweep.yaml
//	modmatrix types
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
