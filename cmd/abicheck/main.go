// Command abicheck verifies that compiled extensions export and import what a proxy-wasm
// v0.2.1 host expects.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
	"golang.org/x/sync/errgroup"
)

var strict bool

var rootCmd = &cobra.Command{
	Use:          "abicheck [--strict] FILE.wasm...",
	Short:        "Check proxy-wasm modules against the ABI",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), args, strict)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&strict, "strict", false, "treat unknown env imports as errors")
}

func run(ctx context.Context, out io.Writer, paths []string, strict bool) error {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	reports := make([]*Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			wasm, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			reports[i], err = Check(gctx, rt, path, wasm, strict)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, report := range reports {
		for _, msg := range report.Errors {
			fmt.Fprintf(out, "%s: error: %s\n", report.Path, msg)
		}
		for _, msg := range report.Warnings {
			fmt.Fprintf(out, "%s: warning: %s\n", report.Path, msg)
		}
		if report.Failed() {
			failed++
		} else {
			fmt.Fprintf(out, "%s: ok\n", report.Path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d modules failed", failed, len(paths))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
