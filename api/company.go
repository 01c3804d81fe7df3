package api

import (
	"net/http"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/pkg/models"
	"github.com/gorilla/mux"
)

type CompanyHandler struct {
	svc  *careers.Service
	auth *AuthHandler
}

func NewCompanyHandler(svc *careers.Service, ah *AuthHandler) *CompanyHandler {
	return &CompanyHandler{svc: svc, auth: ah}
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCompany(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["companyId"])
	if err != nil {
		writeError(w, r, "get company", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateCompany saves settings. When the slug changes the session is
// re-issued so its companySlug stays current.
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req careers.CompanyInput
	if !decode(w, r, &req) {
		return
	}

	p := PrincipalFrom(r.Context())
	c, err := h.svc.UpdateCompany(r.Context(), p, mux.Vars(r)["companyId"], req)
	if err != nil {
		writeError(w, r, "update company", err)
		return
	}

	if c.Slug != p.CompanySlug {
		tok, _, err := h.auth.startSession(w, &models.Principal{UserID: p.UserID, CompanyID: p.CompanyID, CompanySlug: c.Slug})
		if err != nil {
			writeError(w, r, "reissue token", err)
			return
		}
		w.Header().Set(sessionHeader, tok)
	}
	writeJSON(w, http.StatusOK, c)
}
