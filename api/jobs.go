package api

import (
	"net/http"

	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/gorilla/mux"
)

type JobsHandler struct {
	svc *careers.Service
}

func NewJobsHandler(svc *careers.Service) *JobsHandler {
	return &JobsHandler{svc: svc}
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		writeError(w, r, "list jobs", err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req careers.JobInput
	if !decode(w, r, &req) {
		return
	}
	j, err := h.svc.CreateJob(r.Context(), PrincipalFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, "create job", err)
		return
	}
	writeJSON(w, http.StatusCreated, j)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.GetJob(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["jobId"])
	if err != nil {
		writeError(w, r, "get job", err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *JobsHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req careers.JobInput
	if !decode(w, r, &req) {
		return
	}
	j, err := h.svc.UpdateJob(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["jobId"], req)
	if err != nil {
		writeError(w, r, "update job", err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteJob(r.Context(), PrincipalFrom(r.Context()), mux.Vars(r)["jobId"]); err != nil {
		writeError(w, r, "delete job", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
