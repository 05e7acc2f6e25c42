package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/filetree-cli/internal/config"
	"github.com/salmonumbrella/filetree-cli/internal/fsops"
	"github.com/salmonumbrella/filetree-cli/internal/logging"
	"github.com/salmonumbrella/filetree-cli/internal/output"
)

func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return readDefaultConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// resolveOutputFormat picks the output format with precedence:
// --format > FILETREE_OUTPUT_FORMAT > config > text.
func resolveOutputFormat(cmd *cobra.Command, cfg *config.Config) (output.Format, error) {
	formatStr := outputFmt
	if !flagChanged(cmd, "format") {
		if v := strings.TrimSpace(envGet("FILETREE_OUTPUT_FORMAT")); v != "" {
			formatStr = v
		} else if cfg != nil && strings.TrimSpace(cfg.OutputFormat) != "" {
			formatStr = strings.TrimSpace(cfg.OutputFormat)
		}
	}
	return output.ParseFormat(formatStr)
}

// resolveLogLevel picks the log level with precedence:
// --debug > FILETREE_LOG_LEVEL > config > warn.
func resolveLogLevel(cfg *config.Config) (slog.Level, error) {
	if debug {
		return slog.LevelDebug, nil
	}
	if v := strings.TrimSpace(envGet("FILETREE_LOG_LEVEL")); v != "" {
		return logging.ParseLevel(v)
	}
	if cfg != nil {
		return logging.ParseLevel(cfg.LogLevel)
	}
	return slog.LevelWarn, nil
}

// resolvePerms returns directory and file permissions with precedence:
// flags > config > defaults.
func resolvePerms(cmd *cobra.Command, dirFlag, fileFlag string) (os.FileMode, os.FileMode, error) {
	dirStr, fileStr := "", ""
	if cfg != nil {
		dirStr, fileStr = cfg.DirPerm, cfg.FilePerm
	}
	if flagChanged(cmd, "dir-perm") {
		dirStr = dirFlag
	}
	if flagChanged(cmd, "file-perm") {
		fileStr = fileFlag
	}

	dirPerm, err := config.ParsePerm(dirStr, fsops.DefaultDirPerm)
	if err != nil {
		return 0, 0, fmt.Errorf("dir permissions: %w", err)
	}
	filePerm, err := config.ParsePerm(fileStr, fsops.DefaultFilePerm)
	if err != nil {
		return 0, 0, fmt.Errorf("file permissions: %w", err)
	}
	return dirPerm, filePerm, nil
}

// resolveExclude returns the --exclude patterns, or the configured ones when the flag is unset.
func resolveExclude(cmd *cobra.Command, flagValues []string) []string {
	if flagChanged(cmd, "exclude") {
		return flagValues
	}
	if cfg != nil {
		return cfg.Exclude
	}
	return nil
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
