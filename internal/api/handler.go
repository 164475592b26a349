// Package api provides the HTTP handlers of the frontend server stub.
//
// The stub serves the client application only. Analysis traffic never
// passes through it; the client talks to the external backend directly.
//
//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ClientConfig is the document served at /config.json, telling the static
// frontend which external analysis backend to call.
type ClientConfig struct {
	APIBaseURL string `json:"apiBaseUrl"`
}

// Handler serves auxiliary documents for the embedded frontend.
type Handler struct {
	clientConfig ClientConfig
}

// NewHandler creates a Handler exposing apiBaseURL to the frontend.
func NewHandler(apiBaseURL string) *Handler {
	return &Handler{clientConfig: ClientConfig{APIBaseURL: apiBaseURL}}
}

// RegisterRoutes mounts the stub's routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/config.json", h.getClientConfig)
}

func (h *Handler) getClientConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.clientConfig)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
