package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkravec/cennik/internal/api"
	"github.com/mkravec/cennik/internal/section"
	"github.com/mkravec/cennik/internal/store"
	"github.com/mkravec/cennik/internal/svcctx"
)

// RunsListResponse is the payload for GET /runs.
type RunsListResponse struct {
	Runs []store.Run `json:"runs"`
}

// RunsListEndpoint handles GET /runs.
type RunsListEndpoint struct{}

func (e *RunsListEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/runs", e.handler
}

func (e *RunsListEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := st.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RunsListResponse{Runs: runs})
}

func (e *RunsListEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List extraction runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/runs"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}
			var resp RunsListResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

// RunGetEndpoint handles GET /runs/{id}.
type RunGetEndpoint struct{}

func (e *RunGetEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/runs/{id}", e.handler
}

func (e *RunGetEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	run, err := st.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (e *RunGetEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <id>",
		Short: "Get a single extraction run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var run store.Run
			if err := client.Get(cmd.Context(), "/runs/"+args[0], &run); err != nil {
				return err
			}
			return api.Output(run)
		},
	}
}

// RunSectionsResponse is the payload for GET /runs/{id}/sections.
type RunSectionsResponse struct {
	RunID    string            `json:"run_id"`
	Sections []section.Outcome `json:"sections"`
}

// RunSectionsEndpoint handles GET /runs/{id}/sections.
type RunSectionsEndpoint struct{}

func (e *RunSectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/runs/{id}/sections", e.handler
}

func (e *RunSectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not initialized")
		return
	}

	id := r.PathValue("id")
	if _, err := st.GetRun(r.Context(), id); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	sections, err := st.Sections(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RunSectionsResponse{RunID: id, Sections: sections})
}

func (e *RunSectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "run-sections <id>",
		Short: "Get the extracted sections of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp RunSectionsResponse
			if err := client.Get(cmd.Context(), "/runs/"+args[0]+"/sections", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
