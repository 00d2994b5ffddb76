package rest

import "net/http"

type healthStatus struct {
	Status      string `json:"status"`
	Method      string `json:"method"`
	Collections int    `json:"collections"`
}

// handleHealth reports liveness together with the size of the registry,
// which tells an empty configuration apart from a loaded one.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthStatus{
		Status:      "ok",
		Method:      h.registry.MethodName(),
		Collections: len(h.registry.Collections()),
	})
}
