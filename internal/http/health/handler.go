package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status   string `json:"status"`
	EnvReady bool   `json:"envReady"`
}

// Handler returns a plain HTTP handler for the health check endpoint.
// envReady reports whether the bot environment is configured; the service
// itself is healthy either way.
func Handler(envReady func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{
			Status:   "healthy",
			EnvReady: envReady(),
		})
	}
}
