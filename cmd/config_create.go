package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheetsite/config"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write the example configuration with the built-in pages.",
	Long: `Write the example configuration, which lists the seven built-in catalog pages and
the environment variables that hold their sheet identifiers.

An existing file is left untouched.`,
	Example: `
  # Create $HOME/.sheetsite.yaml
  sheetsite config create

  # Create a project-local config
  sheetsite --configFile ./.sheetsite.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		return createConfigFile(cmd.OutOrStdout(), path)
	},
}

func createConfigFile(w io.Writer, path string) error {
	created, err := writeExampleConfig(path)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(w, "Config file already exists at: %s\n", path)
		return nil
	}

	fmt.Fprintf(w, "New config file created at: %s\n", path)
	fmt.Fprintln(w, "Set these variables in the environment or a .env file:")
	for _, name := range sheetEnvNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

// resolveConfigPath picks the --configFile flag, then the file viper loaded,
// then $HOME/.sheetsite.yaml.
func resolveConfigPath(flagValue, loadedFile string) (string, error) {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path, nil
	}
	if path := strings.TrimSpace(loadedFile); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".sheetsite.yaml"), nil
}

// writeExampleConfig reports whether a new file was written.
func writeExampleConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}
	return true, nil
}

// sheetEnvNames lists the sheet id variables the example config refers to,
// info sheet first.
func sheetEnvNames() []string {
	cfg, err := config.ValidateYAMLContent([]byte(config.ExampleYAML()))
	if err != nil {
		return nil
	}
	names := []string{cfg.Sheets.Info.SheetIDEnv}
	for _, page := range cfg.Pages {
		names = append(names, page.Data.SheetIDEnv)
	}
	return names
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
