package api

import (
	"net/http"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/gorilla/mux"
)

type SectionsHandler struct {
	svc *careers.Service
}

func NewSectionsHandler(svc *careers.Service) *SectionsHandler {
	return &SectionsHandler{svc: svc}
}

func (h *SectionsHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListSections(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, r, "list sections", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SectionsHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req careers.SectionInput
	if !decode(w, r, &req) {
		return
	}
	sec, err := h.svc.CreateSection(r.Context(), PrincipalFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, "create section", err)
		return
	}
	writeJSON(w, http.StatusCreated, sec)
}

func (h *SectionsHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := h.svc.GetSection(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["sectionId"])
	if err != nil {
		writeError(w, r, "get section", err)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (h *SectionsHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req careers.SectionInput
	if !decode(w, r, &req) {
		return
	}
	sec, err := h.svc.UpdateSection(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["sectionId"], req)
	if err != nil {
		writeError(w, r, "update section", err)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (h *SectionsHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSection(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["sectionId"]); err != nil {
		writeError(w, r, "delete section", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
