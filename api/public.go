package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/render"
	"github.com/gorilla/mux"
)

// PublicHandler serves the candidate-facing careers pages. Browsers get
// HTML; clients asking for JSON get the page read model.
type PublicHandler struct {
	svc   *careers.Service
	pages *render.Renderer
}

func NewPublicHandler(svc *careers.Service, pages *render.Renderer) *PublicHandler {
	return &PublicHandler{svc: svc, pages: pages}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func filterFrom(r *http.Request) careers.JobFilter {
	q := r.URL.Query()
	return careers.JobFilter{
		Query:      strings.TrimSpace(q.Get("q")),
		Department: q.Get("department"),
		Location:   q.Get("location"),
		JobType:    q.Get("type"),
	}
}

// fail answers a public request error in the representation the client asked for.
func (h *PublicHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if wantsJSON(r) {
		writeError(w, r, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if errors.Is(err, careers.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		if rerr := h.pages.NotFound(w); rerr != nil {
			logger.Error("render not found", slog.Any("err", rerr))
		}
		return
	}
	logger.Error("request failed", slog.String("op", op), slog.String("path", r.URL.Path), slog.Any("err", err))
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}

func (h *PublicHandler) CareersPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.CareersPage(r.Context(), mux.Vars(r)["companySlug"], PrincipalFrom(r.Context()), filterFrom(r))
	if err != nil {
		h.fail(w, r, "careers page", err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, page)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.CareersPage(w, page); err != nil {
		h.fail(w, r, "render careers page", err)
	}
}

func (h *PublicHandler) JobPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	page, err := h.svc.JobPage(r.Context(), vars["companySlug"], vars["jobId"], PrincipalFrom(r.Context()))
	if err != nil {
		h.fail(w, r, "job page", err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, page)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.JobPage(w, page); err != nil {
		h.fail(w, r, "render job page", err)
	}
}
