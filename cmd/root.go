/*
Copyright © 2025 Benny Powers

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package cmd is the command-line entry point: cobra subcommands wired to
// internal/config.Load and the engine package.
package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asgen.dev/asgen/internal/logging"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asgen",
	Short: "Generate application-catalog metadata for a Linux distribution",
	Long: `asgen scans distribution package repositories for application metainfo,
extracts and validates it, and exports the compressed catalog data and media
a software center consumes.`,
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to asgen.yaml (default: search ASGEN_CONFIG env, then ./asgen.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit one JSON object per log line instead of colorized text")
	viper.BindPFlag("configFile", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("jsonLogs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

func initLogging() {
	if viper.GetBool("jsonLogs") {
		logging.SetMode(logging.ModeJSON)
	}
	logging.SetDebugEnabled(viper.GetBool("verbose"))
	if viper.GetBool("verbose") {
		pterm.EnableDebugMessages()
	}
}

// configPath resolves the --config flag, falling back to the ASGEN_CONFIG
// environment variable and finally to "asgen.yaml" in the working directory.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path
	}
	if env := os.Getenv("ASGEN_CONFIG"); env != "" {
		return env
	}
	if _, err := os.Stat("asgen.yaml"); err == nil {
		return "asgen.yaml"
	}
	return ""
}
