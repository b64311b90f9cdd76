package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/prism/config"
	"github.com/adrianliechti/prism/pkg/aggregator"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	aggregator *aggregator.Aggregator
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,

		aggregator: cfg.Aggregator(),
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/engines", h.handleEngines)

	r.Post("/search", h.handleSearch)
	r.Post("/summarize", h.handleSummarize)
}

// AttachFunctions mounts the legacy summary function route.
func (h *Handler) AttachFunctions(r chi.Router) {
	r.Post("/generate-summary", h.handleSummarize)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "status", code, "error", text)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(ErrorResponse{
		Error: text,
	})
}
