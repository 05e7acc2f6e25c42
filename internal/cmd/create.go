package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/filetree-cli/internal/fsops"
	"github.com/salmonumbrella/filetree-cli/internal/tree"
)

var (
	createFrom     string
	createStrict   bool
	createDryRun   bool
	createDirPerm  string
	createFilePerm string
)

var createCmd = &cobra.Command{
	Use:   "create <input_file> <base_dir>",
	Short: "Create directories and empty files from a structure",
	Long: `Read a structure and create it under base_dir.

The input can be a JSON or YAML document, or a tree diagram. With
--from auto (the default) a JSON object is read as JSON, a .yaml/.yml
file as YAML and anything else as a diagram. Use - to read from stdin.

Directories are created as needed and existing ones are kept. Files are
created empty; existing files are truncated.

Examples:
  filetree create structure.json ./out
  filetree create layout.txt ./out --dry-run
  pbpaste | filetree create - ./out --strict`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		inputFile, baseDir := args[0], args[1]

		t, err := readStructure(cmd, inputFile, createFrom, createStrict)
		if err != nil {
			return err
		}

		dirPerm, filePerm, err := resolvePerms(cmd, createDirPerm, createFilePerm)
		if err != nil {
			return err
		}

		result, err := fsops.Materialize(t, baseDir, fsops.MaterializeOptions{
			DryRun:   createDryRun,
			DirPerm:  dirPerm,
			FilePerm: filePerm,
			Logger:   loggerFromContext(ctx),
		})
		if err != nil {
			return err
		}

		if structuredOutputRequested() {
			return printStructured(result)
		}
		if createDryRun {
			for _, a := range result.Actions {
				printStatus(ctx, "%-8s %s", a.Op, a.Path)
			}
			printStatus(ctx, "Dry run: %d directories and %d files in: %s", result.Directories, result.Files, baseDir)
			return nil
		}
		printStatus(ctx, "File structure created successfully in: %s", baseDir)
		return nil
	},
}

// readStructure reads and decodes a structure from a file or stdin.
func readStructure(cmd *cobra.Command, source, from string, strict bool) (tree.Tree, error) {
	format, err := tree.ParseSourceFormat(from)
	if err != nil {
		return nil, err
	}
	content, err := readInputSource(source, stdinFromContext(cmd.Context()))
	if err != nil {
		return nil, err
	}

	var opts []tree.ParseOption
	if strict {
		opts = append(opts, tree.WithStrict())
	}
	t, err := tree.Decode(source, []byte(content), format, opts...)
	if err != nil {
		return nil, err
	}
	dirs, files := t.Count()
	loggerFromContext(cmd.Context()).Debug("structure loaded", "source", source, "directories", dirs, "files", files)
	return t, nil
}

func addSourceFlags(cmd *cobra.Command, from *string, strict *bool) {
	cmd.Flags().StringVar(from, "from", "auto", "Input format (auto|json|yaml|diagram)")
	cmd.Flags().BoolVar(strict, "strict", false, "Reject duplicate names and skipped levels in diagrams")
}

func init() {
	addSourceFlags(createCmd, &createFrom, &createStrict)
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Show what would be created without touching the disk")
	createCmd.Flags().StringVar(&createDirPerm, "dir-perm", "", "Permissions for new directories (octal, default 0755)")
	createCmd.Flags().StringVar(&createFilePerm, "file-perm", "", "Permissions for new files (octal, default 0644)")

	rootCmd.AddCommand(createCmd)
}
