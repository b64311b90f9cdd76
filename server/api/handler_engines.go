package api

import (
	"net/http"

	"github.com/adrianliechti/prism/pkg/engine"
)

func (h *Handler) handleEngines(w http.ResponseWriter, r *http.Request) {
	configured := make(map[engine.Engine]bool)

	for _, e := range h.aggregator.Engines() {
		configured[e] = true
	}

	result := make([]Engine, 0)

	for _, e := range engine.All() {
		info := e.Info()

		result = append(result, Engine{
			Name: info.Name,

			Color:   info.Color,
			Initial: info.Initial,

			Configured: configured[e],
		})
	}

	writeJson(w, result)
}
