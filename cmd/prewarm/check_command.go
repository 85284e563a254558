package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"prewarm/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run environment preflight checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreflightChecks(cmd, ctx)
		},
	}
}

func runPreflightChecks(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	results := preflight.RunAll(cmd.Context(), cfg)

	failed := 0
	for _, result := range results {
		if !result.Passed {
			failed++
		}
		fmt.Fprintln(out, renderCheckLine(result, colorize))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	fmt.Fprintf(out, "\nAll %d checks passed\n", len(results))
	return nil
}

func renderCheckLine(result preflight.Result, colorize bool) string {
	status := "FAIL"
	color := ansiRed
	if result.Passed {
		status = "OK"
		color = ansiGreen
	}
	line := fmt.Sprintf("  %-20s [%s] %s", result.Name+":", status, result.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
