package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sheetsite configuration file values.",
	Long: `Create, edit, display, and delete the sheetsite configuration file.

The configuration stores sheet locations, server and log settings, and the page table:
- sheets.base_url / sheets.timeout / sheets.user_agent
- sheets.info.sheet_id+gid or sheet_id_env+gid_env
- server.port, log.level, log.format
- pages[].section / service_type / data / default_info`,
	Example: `
  # Create default config in $HOME/.sheetsite.yaml
  sheetsite config create

  # Show active config and source file
  sheetsite config show

  # Open active config in editor (creates example if missing)
  sheetsite config edit

  # Delete active config file
  sheetsite config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
