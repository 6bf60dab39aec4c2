package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/config"
	"github.com/mkravec/cennik/internal/home"
	"github.com/mkravec/cennik/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cennik server",
	Long: `Start the cennik HTTP server.

The server republishes extracted price-list sections from the local store
and can run new extractions on request.

Endpoints:
  GET  /health                      - Server health check
  GET  /runs                        - List extraction runs
  GET  /runs/{id}                   - Get one run
  GET  /runs/{id}/sections          - Get a run's extracted sections
  GET  /providers/{name}/sections   - Latest sections for a provider
  POST /extract                     - Run an extraction

Examples:
  cennik serve                    # Start on default port 8080
  cennik serve --port 3000        # Start on custom port
  cennik serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := config.NewManager(resolveConfigFile(h))
		if err != nil {
			return err
		}

		dbPath := cfgMgr.Get().Storage.Path
		if dbPath == "" {
			dbPath = h.DatabasePath()
		}

		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			DatabasePath:  dbPath,
			ConfigManager: cfgMgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// resolveConfigFile prefers the --config flag, then the home config file.
func resolveConfigFile(h *home.Dir) string {
	if cfgFile != "" {
		return cfgFile
	}
	if h.ConfigExists() {
		return h.ConfigPath()
	}
	return ""
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
