package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/config"
	"github.com/mkravec/cennik/internal/home"
	"github.com/mkravec/cennik/internal/pipeline"
	"github.com/mkravec/cennik/internal/store"
)

var extractNoSave bool

var extractCmd = &cobra.Command{
	Use:   "extract <provider> <pdf-path>",
	Short: "Extract configured sections from a price-list PDF",
	Long: `Extract the configured sections of a provider's price-list PDF.

The document's table of contents drives the extraction: each configured
(key, title) pair is resolved against the ToC, the page layout is detected,
and the section text is carved out between its header and the next one.

The run is persisted to the local store unless --no-save is given.

Examples:
  cennik extract telekom cennik-2026-08.pdf
  cennik extract telekom cennik.pdf --no-save -o json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, pdfPath := args[0], args[1]

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

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
		providerCfg, ok := cfgMgr.Get().GetProvider(provider)
		if !ok {
			return fmt.Errorf("unknown provider %q (configured: %v)", provider, cfgMgr.Get().ProviderNames())
		}

		var st *store.Store
		if !extractNoSave {
			dbPath := cfgMgr.Get().Storage.Path
			if dbPath == "" {
				dbPath = h.DatabasePath()
			}
			st, err = store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		out, err := pipeline.Run(cmd.Context(), st, logger, pipeline.Request{
			Provider:    provider,
			ProviderCfg: providerCfg,
			PDFPath:     pdfPath,
		})
		if err != nil {
			return err
		}

		return api.Output(out)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractNoSave, "no-save", false, "Do not persist the run to the store")

	rootCmd.AddCommand(extractCmd)
}
