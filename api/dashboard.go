package api

import (
	"net/http"

	"github.com/garnizeh/careerpages/internal/careers"
)

type DashboardHandler struct {
	svc *careers.Service
}

func NewDashboardHandler(svc *careers.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, r, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DashboardHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.DashboardJobs(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, r, "dashboard jobs", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
