package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file sheetsite loaded. Afterwards the built-in page
table and defaults are used until a new file is created.`,
	Example: `
  # Delete active config
  sheetsite config delete

  # Delete config at a custom path
  sheetsite --configFile ./custom-sheetsite.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if err := deleteConfigFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file deleted: %s\n", path)
		return nil
	},
}

func deleteConfigFile(path string) error {
	if path == "" {
		return fmt.Errorf("no configuration file found; built-in pages are in use")
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete configuration file: %w", err)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
