package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// readyTimeout bounds how long api commands wait for the server before the
// first request.
const readyTimeout = 10 * time.Second

// Registry holds all registered endpoints.
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry creates a new endpoint registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an endpoint to the registry.
func (r *Registry) Register(ep Endpoint) {
	r.endpoints = append(r.endpoints, ep)
}

// RegisterRoutes registers all endpoint HTTP routes with the given mux.
// middleware wraps every handler; pass nil to register handlers bare.
func (r *Registry) RegisterRoutes(mux *http.ServeMux, middleware func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, handler := ep.Route()
		if middleware != nil {
			handler = middleware(handler)
		}
		mux.HandleFunc(method+" "+path, handler)
	}
}

// BuildCommands returns a cobra.Command tree for all registered endpoints.
// getServerURL is called at runtime to get the server URL.
func (r *Registry) BuildCommands(getServerURL func() string) *cobra.Command {
	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Commands that call the running server",
		Long: `API commands call the running cennik server via HTTP.

These commands require a running server (cennik serve).
Use --server to specify a custom server URL.

Examples:
  cennik api health                      # Check server health
  cennik api runs                        # List extraction runs
  cennik api sections <provider>         # Latest extracted sections`,
	}

	// Wait for the server before the first request so commands fail with a
	// clear readiness error instead of a raw connection refusal. This hook
	// replaces the root command's, so the output format is re-applied here.
	apiCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if f := cmd.Flag("output"); f != nil {
			SetOutputFormat(f.Value.String())
		}
		if err := NewClient(getServerURL()).WaitReady(cmd.Context(), readyTimeout); err != nil {
			return fmt.Errorf("server at %s is not ready: %w", getServerURL(), err)
		}
		return nil
	}

	for _, ep := range r.endpoints {
		apiCmd.AddCommand(ep.Command(getServerURL))
	}

	return apiCmd
}

// Endpoints returns all registered endpoints.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}
