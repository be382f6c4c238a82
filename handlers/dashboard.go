package handlers

import (
	"net/http"
)

type DashboardHandler struct {
	*base
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Dashboard.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", map[string]interface{}{
		"Stats": stats,
	})
}
