// Package endpoints defines the HTTP API surface. Each endpoint is both a
// route and a CLI command, registered through the shared api.Registry.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/mkravec/cennik/internal/api"
)

// NewRegistry builds the registry with every endpoint registered.
func NewRegistry() *api.Registry {
	r := api.NewRegistry()
	r.Register(&HealthEndpoint{})
	r.Register(&RunsListEndpoint{})
	r.Register(&RunGetEndpoint{})
	r.Register(&RunSectionsEndpoint{})
	r.Register(&ProviderSectionsEndpoint{})
	r.Register(&ExtractEndpoint{})
	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the error payload for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
