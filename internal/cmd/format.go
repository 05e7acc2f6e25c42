package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/filetree-cli/internal/tree"
)

var (
	formatFrom   string
	formatStrict bool
)

var formatCmd = &cobra.Command{
	Use:   "format <input_file>",
	Short: "Print a structure as a canonical tree diagram",
	Long: `Read a structure and print it as a canonical diagram: names sorted,
directories marked with a trailing slash, and connectors redrawn.

With --format json|ndjson|yaml the structure is printed as a document
instead, which converts between diagrams and documents.

Examples:
  filetree format layout.txt
  filetree format structure.json
  filetree format layout.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readStructure(cmd, args[0], formatFrom, formatStrict)
		if err != nil {
			return err
		}

		if structuredOutputRequested() {
			return printStructured(t)
		}
		_, err = fmt.Fprintln(stdoutFromContext(cmd.Context()), tree.FormatString(t))
		return err
	},
}

func init() {
	addSourceFlags(formatCmd, &formatFrom, &formatStrict)

	rootCmd.AddCommand(formatCmd)
}
