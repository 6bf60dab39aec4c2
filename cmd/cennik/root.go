package main

import (
	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/server/endpoints"
	"github.com/mkravec/cennik/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	serverURL    string
)

var rootCmd = &cobra.Command{
	Use:   "cennik",
	Short: "ToC-guided section extraction for telecom price-list PDFs",
	Long: `Cennik extracts named sections from telecom-provider price-list PDFs
and republishes the extracted text over a small HTTP API.

Extraction is guided by each document's own table of contents:
  - The ToC is parsed into (title, page) entries
  - The page layout (one or two logical pages per sheet) is detected
  - Each configured section is carved out between its header and the next`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.cennik/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "cennik home directory (default: ~/.cennik)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", "", "server URL for api commands (default: http://127.0.0.1:8080)",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(endpoints.NewRegistry().BuildCommands(getServerURL))
}

// getServerURL resolves the server URL at command run time.
func getServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	return "http://127.0.0.1:8080"
}
