package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sheetsite/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Sheet identifiers
read from environment variables are shown with the variable name and whether it is set.`,
	Example: `
  # Show active configuration
  sheetsite config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Fprintln(out, "Config file loaded from:", configPath)
		} else {
			fmt.Fprintln(out, "Config file: none (built-in defaults)")
		}
		writeConfigSummary(out, cfg, os.LookupEnv)
		return nil
	},
}

func writeConfigSummary(w io.Writer, cfg *config.Config, lookup config.LookupFunc) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "sheets.base_url: %s\n", cfg.Sheets.BaseURL)
	fmt.Fprintf(w, "sheets.timeout: %s\n", cfg.Sheets.Timeout)
	fmt.Fprintf(w, "sheets.user_agent: %s\n", cfg.Sheets.UserAgent)
	fmt.Fprintf(w, "sheets.info: %s\n", describeSheetRef(cfg.Sheets.Info, lookup))
	fmt.Fprintf(w, "server.port: %d\n", cfg.Server.Port)
	fmt.Fprintf(w, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "log.format: %s\n", cfg.Log.Format)
	fmt.Fprintf(w, "pages: %d\n", len(cfg.Pages))
	for i, page := range cfg.Pages {
		fmt.Fprintf(w, "pages[%d]: %s\n", i, page.Key())
		fmt.Fprintf(w, "pages[%d].data: %s\n", i, describeSheetRef(page.Data, lookup))
		fmt.Fprintf(w, "pages[%d].default_info.title: %s\n", i, page.DefaultInfo.Title)
		fmt.Fprintf(w, "pages[%d].default_info.show_prices: %v\n", i, page.DefaultInfo.ShowPrices)
	}
}

func describeSheetRef(ref config.SheetRef, lookup config.LookupFunc) string {
	resolved := ref.Resolve(lookup)
	describe := func(direct, envName, value string) string {
		switch {
		case direct != "":
			return direct
		case envName == "":
			return "(none)"
		case value == "":
			return "$" + envName + " (unset)"
		default:
			return "$" + envName + " = " + value
		}
	}
	return fmt.Sprintf("sheet_id=%s gid=%s",
		describe(ref.SheetID, ref.SheetIDEnv, resolved.ID),
		describe(ref.GID, ref.GIDEnv, resolved.GID))
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
