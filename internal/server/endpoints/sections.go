package endpoints

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/section"
	"github.com/mkravec/cennik/internal/store"
	"github.com/mkravec/cennik/internal/svcctx"
)

// ProviderSectionsResponse republishes the latest extracted sections of a
// provider's price list.
type ProviderSectionsResponse struct {
	Provider string            `json:"provider"`
	RunID    string            `json:"run_id"`
	Summary  section.Summary   `json:"summary"`
	Sections []section.Outcome `json:"sections"`
}

// ProviderSectionsEndpoint handles GET /providers/{name}/sections.
type ProviderSectionsEndpoint struct{}

func (e *ProviderSectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/providers/{name}/sections", e.handler
}

func (e *ProviderSectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	provider := r.PathValue("name")
	run, err := st.LatestRun(r.Context(), provider)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no runs for provider "+provider)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sections, err := st.Sections(r.Context(), run.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ProviderSectionsResponse{
		Provider: provider,
		RunID:    run.ID,
		Summary:  run.Summary,
		Sections: sections,
	})
}

func (e *ProviderSectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "sections <provider>",
		Short: "Get the latest extracted sections for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ProviderSectionsResponse
			if err := client.Get(cmd.Context(), "/providers/"+args[0]+"/sections", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
