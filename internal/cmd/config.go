package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/filetree-cli/internal/config"
	"github.com/salmonumbrella/filetree-cli/internal/fsops"
	"github.com/salmonumbrella/filetree-cli/internal/logging"
	"github.com/salmonumbrella/filetree-cli/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/filetree/config.yaml.

You can view, set, or unset config keys such as output_format, log_level,
exclude, dir_perm, and file_perm. exclude takes a comma-separated list of
glob patterns.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		if structuredOutputRequested() {
			return printStructured(configOutput(cfg))
		}

		out := stdoutFromContext(cmd.Context())
		fmt.Fprintln(out, "Config:")
		fmt.Fprintf(out, "  output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "  log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "  exclude: %s\n", strings.Join(cfg.Exclude, ","))
		fmt.Fprintf(out, "  dir_perm: %s\n", cfg.DirPerm)
		fmt.Fprintf(out, "  file_perm: %s\n", cfg.FilePerm)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := supportedConfigKeys()
		sort.Strings(keys)

		if structuredOutputRequested() {
			return printStructured(keys)
		}

		out := stdoutFromContext(cmd.Context())
		fmt.Fprintln(out, "Supported keys:")
		for _, key := range keys {
			fmt.Fprintf(out, "  %s\n", key)
		}
		return nil
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

func supportedConfigKeys() []string {
	return []string{
		"output_format",
		"log_level",
		"exclude",
		"dir_perm",
		"file_perm",
	}
}

// applyConfigValue validates value for key and stores it in cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "output_format":
		f, err := output.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.OutputFormat = string(f)
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		cfg.LogLevel = strings.ToLower(value)
	case "exclude":
		cfg.Exclude = splitList(value)
	case "dir_perm":
		if _, err := config.ParsePerm(value, fsops.DefaultDirPerm); err != nil {
			return err
		}
		cfg.DirPerm = value
	case "file_perm":
		if _, err := config.ParsePerm(value, fsops.DefaultFilePerm); err != nil {
			return err
		}
		cfg.FilePerm = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "output_format":
		cfg.OutputFormat = ""
	case "log_level":
		cfg.LogLevel = ""
	case "exclude":
		cfg.Exclude = nil
	case "dir_perm":
		cfg.DirPerm = ""
	case "file_perm":
		cfg.FilePerm = ""
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}

	printStatus(cmd.Context(), "Updated %s", key)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := clearConfigValue(cfg, key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]string{
			"status": "unset",
			"key":    key,
		})
	}

	printStatus(cmd.Context(), "Unset %s", key)
	return nil
}

func configOutput(cfg *config.Config) map[string]interface{} {
	exclude := cfg.Exclude
	if exclude == nil {
		exclude = []string{}
	}
	return map[string]interface{}{
		"output_format": cfg.OutputFormat,
		"log_level":     cfg.LogLevel,
		"exclude":       exclude,
		"dir_perm":      cfg.DirPerm,
		"file_perm":     cfg.FilePerm,
	}
}
