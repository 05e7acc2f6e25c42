package cmd

import (
	"context"
	"fmt"

	"github.com/salmonumbrella/filetree-cli/internal/output"
)

func structuredOutputRequested() bool {
	return output.IsStructured(GetOutputFormat())
}

func printStructured(data interface{}) error {
	ctx := currentContext()
	printer := output.NewPrinter(stdoutFromContext(ctx), GetOutputFormat())
	return printer.Print(ctx, data)
}

// printStatus writes a human status line to stdout unless --quiet is set.
func printStatus(ctx context.Context, format string, args ...interface{}) {
	if ctx == nil {
		ctx = currentContext()
	}
	if output.QuietFromContext(ctx) {
		return
	}
	_, _ = fmt.Fprintf(stdoutFromContext(ctx), format+"\n", args...)
}

func currentContext() context.Context {
	if rootCmd != nil && rootCmd.Context() != nil {
		return rootCmd.Context()
	}
	return context.Background()
}
