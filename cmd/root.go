/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"sheetsite/config"
	"sheetsite/internal/logging"
)

var (
	cfgFile string
	envFile string
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sheetsite",
	Short: "Serve catalog pages whose content lives in Google Sheets.",
	Long: `
**********************************************
*                SHEETSITE                   *
**********************************************

This CLI serves service and product catalog pages. Every page request fetches the
CSV export of the page's Google Sheet, normalizes the rows, and renders them.

Sheet identifiers come from the config file or from environment variables,
optionally loaded from a .env file.
`,
	Example: `
  # Create configuration file
  sheetsite config create

  # Start the web server
  sheetsite serve --port 8080

  # Print one page as JSON
  sheetsite show --page services/fencing --json

  # Export page items to Excel
  sheetsite export --page products/parts --output ./parts.xlsx

  # Load every configured page and report problems
  sheetsite check
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		built, err := logging.New(viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat))
		if err != nil {
			return err
		}
		logger = built
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := execute(rootCmd)
	if err != nil {
		os.Exit(1)
	}
}

// execute runs root and flushes the logger, also when the command failed.
func execute(root *cobra.Command) error {
	defer func() { _ = logger.Sync() }()
	return root.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.sheetsite.yaml, then ./.sheetsite.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "envFile", ".env", "Environment file with sheet identifiers (skipped when missing)")
}

// initConfig reads in the env file, config file and ENV variables if set.
func initConfig() {
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sheetsite" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sheetsite")
	}

	viper.SetEnvPrefix("SHEETSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Using built-in pages; create one with: sheetsite config create")
	}
}

// loadEnvFile exports the variables of path into the process environment
// without overriding variables that are already set.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
