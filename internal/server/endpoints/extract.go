package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/pipeline"
	"github.com/mkravec/cennik/internal/svcctx"
)

// ExtractRequest asks the server to extract a provider's price list from a
// PDF on the server's filesystem.
type ExtractRequest struct {
	Provider string `json:"provider"`
	PDFPath  string `json:"pdf_path"`
}

// ExtractEndpoint handles POST /extract.
type ExtractEndpoint struct{}

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/extract", e.handler
}

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	cfgMgr := svcctx.ConfigFrom(r.Context())
	if st == nil || cfgMgr == nil {
		writeError(w, http.StatusServiceUnavailable, "server not initialized")
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Provider == "" || req.PDFPath == "" {
		writeError(w, http.StatusBadRequest, "provider and pdf_path are required")
		return
	}

	providerCfg, ok := cfgMgr.Get().GetProvider(req.Provider)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown provider "+req.Provider)
		return
	}

	out, err := pipeline.Run(r.Context(), st, svcctx.LoggerFrom(r.Context()), pipeline.Request{
		Provider:    req.Provider,
		ProviderCfg: providerCfg,
		PDFPath:     req.PDFPath,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <provider> <pdf-path>",
		Short: "Run extraction on the server for a provider's PDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var out pipeline.Output
			req := ExtractRequest{Provider: args[0], PDFPath: args[1]}
			if err := client.Post(cmd.Context(), "/extract", req, &out); err != nil {
				return err
			}
			return api.Output(out)
		},
	}
}
