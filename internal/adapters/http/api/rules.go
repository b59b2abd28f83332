package api

import (
	"net/http"
)

// RulesHandler serves the fixed rule table.
type RulesHandler struct {
	deps Dependencies
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(deps Dependencies) *RulesHandler {
	return &RulesHandler{deps: deps}
}

// HandleRules handles GET /rules requests.
func (h *RulesHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Rules())
}
