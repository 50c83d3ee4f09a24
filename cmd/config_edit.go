package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheetsite/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor and validate the result.",
	Long: `Open the active sheetsite config file in $VISUAL, $EDITOR or vi.

A missing file is created from the example first. After the editor exits the file
is validated, including the page table: known sections, unique section/service_type
pairs, a data sheet per page, and show_prices as a bool or "true"/"false".`,
	Example: `
  # Edit active config
  sheetsite config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		created, err := writeExampleConfig(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(os.LookupEnv, path)
		if err != nil {
			return err
		}
		editor.Stdin, editor.Stdout, editor.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		cfg, err := validateConfigFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved and validated: %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Pages: %s\n", strings.Join(pageKeys(cfg.Pages), ", "))
		return nil
	},
}

// editorCommand builds the editor invocation from $VISUAL or $EDITOR, which
// may carry arguments ("code --wait").
func editorCommand(lookup config.LookupFunc, path string) (*exec.Cmd, error) {
	editor := "vi"
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			editor = value
			break
		}
	}
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
