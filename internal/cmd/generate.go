package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/filetree-cli/internal/fsops"
	"github.com/salmonumbrella/filetree-cli/internal/output"
	"github.com/salmonumbrella/filetree-cli/internal/tree"
)

var (
	generateOutput        string
	generateAsString      bool
	generateExclude       []string
	generateKeepEmptyDirs bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <base_dir>",
	Short: "Generate a structure from a directory",
	Long: `Scan a directory and print its structure.

By default the structure is a nested JSON document where directories are
objects and files are empty strings. Use --string for a tree diagram, or
--format yaml for YAML. Empty directories are reported as files unless
--keep-empty-dirs is set. Symlinks are listed as files and never followed.

Examples:
  filetree generate .
  filetree generate ./project --string
  filetree generate ./project -o structure.json --exclude .git --exclude '**/node_modules'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		baseDir := args[0]

		t, err := fsops.Scan(baseDir, fsops.ScanOptions{
			Exclude:       resolveExclude(cmd, generateExclude),
			KeepEmptyDirs: generateKeepEmptyDirs,
			Logger:        loggerFromContext(ctx),
		})
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if generateAsString {
			buf.WriteString(tree.FormatString(t))
			buf.WriteString("\n")
		} else {
			format := GetOutputFormat()
			if format == output.FormatText {
				format = output.FormatJSON
			}
			if err := output.NewPrinter(&buf, format).Print(ctx, t); err != nil {
				return err
			}
		}

		if generateOutput == "" {
			_, err := stdoutFromContext(ctx).Write(buf.Bytes())
			return err
		}

		if err := os.WriteFile(generateOutput, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", generateOutput, err)
		}
		loggerFromContext(ctx).Debug("structure saved", "path", generateOutput, "bytes", buf.Len())

		if structuredOutputRequested() {
			dirs, files := t.Count()
			return printStructured(map[string]interface{}{
				"status":      "saved",
				"output":      generateOutput,
				"directories": dirs,
				"files":       files,
			})
		}
		printStatus(ctx, "File structure saved to: %s", generateOutput)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write the structure to a file instead of stdout")
	generateCmd.Flags().BoolVarP(&generateAsString, "string", "s", false, "Render a tree diagram instead of a document")
	generateCmd.Flags().StringArrayVar(&generateExclude, "exclude", nil, "Skip entries matching a glob (repeatable, supports **)")
	generateCmd.Flags().BoolVar(&generateKeepEmptyDirs, "keep-empty-dirs", false, "Keep empty directories as directories")

	rootCmd.AddCommand(generateCmd)
}
