package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/salmonumbrella/filetree-cli/internal/config"
)

// runCLI executes the root command with args and returns stdout, stderr and the error.
// The environment and the default config file are stubbed out.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	restore := snapshotCLIState()
	defer restore()

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := bytes.NewBufferString(stdin)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	rootCmd.SetContext(withIO(context.Background(), in, out, errBuf))

	prevEnvGet := envGet
	envGet = func(key string) string { return "" }
	defer func() { envGet = prevEnvGet }()

	prevRead := readDefaultConfig
	readDefaultConfig = func() (*config.Config, error) { return &config.Config{}, nil }
	defer func() { readDefaultConfig = prevRead }()

	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), errBuf.String(), err
}

func snapshotCLIState() func() {
	prevOutputFmt := outputFmt
	prevOutputType := outputType
	prevDebug := debug
	prevConfig := configFile
	prevQueryExpr := queryExpr
	prevQueryFile := queryFile
	prevErrorFmt := errorFmt
	prevQuiet := quietFlag
	prevCfg := cfg

	prevGenerateOutput := generateOutput
	prevGenerateAsString := generateAsString
	prevGenerateExclude := generateExclude
	prevGenerateKeepEmpty := generateKeepEmptyDirs
	prevCreateFrom := createFrom
	prevCreateStrict := createStrict
	prevCreateDryRun := createDryRun
	prevCreateDirPerm := createDirPerm
	prevCreateFilePerm := createFilePerm
	prevFormatFrom := formatFrom
	prevFormatStrict := formatStrict
	prevPathsFrom := pathsFrom
	prevPathsStrict := pathsStrict

	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()
	prevIn := rootCmd.InOrStdin()
	prevCtx := rootCmd.Context()

	return func() {
		outputFmt = prevOutputFmt
		outputType = prevOutputType
		debug = prevDebug
		configFile = prevConfig
		queryExpr = prevQueryExpr
		queryFile = prevQueryFile
		errorFmt = prevErrorFmt
		quietFlag = prevQuiet
		cfg = prevCfg

		generateOutput = prevGenerateOutput
		generateAsString = prevGenerateAsString
		generateExclude = prevGenerateExclude
		generateKeepEmptyDirs = prevGenerateKeepEmpty
		createFrom = prevCreateFrom
		createStrict = prevCreateStrict
		createDryRun = prevCreateDryRun
		createDirPerm = prevCreateDirPerm
		createFilePerm = prevCreateFilePerm
		formatFrom = prevFormatFrom
		formatStrict = prevFormatStrict
		pathsFrom = prevPathsFrom
		pathsStrict = prevPathsStrict

		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetIn(prevIn)
		rootCmd.SetContext(prevCtx)
		rootCmd.SetArgs(nil)
		resetCommandTree(rootCmd)
	}
}

// resetCommandTree clears flag state and stored contexts on every command so
// the next run starts from the root context again.
func resetCommandTree(c *cobra.Command) {
	resetFlagChanges(c)
	for _, sub := range c.Commands() {
		sub.SetContext(nil) //nolint:staticcheck // nil lets cobra hand down the root context
		resetCommandTree(sub)
	}
}

func resetFlagChanges(cmdFlagSet interface {
	Flags() *pflag.FlagSet
	PersistentFlags() *pflag.FlagSet
	InheritedFlags() *pflag.FlagSet
},
) {
	if cmdFlagSet == nil {
		return
	}
	cmdFlagSet.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	cmdFlagSet.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	cmdFlagSet.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}
