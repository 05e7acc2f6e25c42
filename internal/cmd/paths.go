package cmd

import "github.com/spf13/cobra"

var (
	pathsFrom   string
	pathsStrict bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths <input_file>",
	Short: "List the file paths of a structure",
	Long: `Read a structure and print the slash-separated path of every file,
one per line, in sorted depth-first order.

Examples:
  filetree paths layout.txt
  filetree paths structure.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readStructure(cmd, args[0], pathsFrom, pathsStrict)
		if err != nil {
			return err
		}

		paths := t.Paths()
		if paths == nil {
			paths = []string{}
		}
		return printStructured(paths)
	},
}

func init() {
	addSourceFlags(pathsCmd, &pathsFrom, &pathsStrict)

	rootCmd.AddCommand(pathsCmd)
}
