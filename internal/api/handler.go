// Package api serves the REST surface of the job board.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/domain/job"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/logging"
)

const maxApplicationBytes = 1 << 20

// Submitter stores application submissions
type Submitter interface {
	Submit(ctx context.Context, body []byte) (domain.Application, error)
}

// Handler binds the job and application services to HTTP routes
type Handler struct {
	jobs         job.Service
	applications Submitter
	logger       *logging.Logger
}

func NewHandler(jobs job.Service, applications Submitter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		jobs:         jobs,
		applications: applications,
		logger:       logger,
	}
}

// Register mounts every route on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/jobs", h.searchJobs)
	mux.HandleFunc("GET /api/jobs/curated", h.curatedJobs)
	mux.HandleFunc("GET /api/job/{id}", h.getJob)
	mux.HandleFunc("GET /api/companies", h.listCompanies)
	mux.HandleFunc("POST /api/applications", h.submitApplication)
}

func (h *Handler) searchJobs(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	resp, err := h.jobs.Search(r.Context(), criteria)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) curatedJobs(w http.ResponseWriter, r *http.Request) {
	curated, err := h.jobs.Curated(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, curated)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	record, err := h.jobs.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

type companiesResponse struct {
	Status         string           `json:"status"`
	RequestID      string           `json:"requestId"`
	Data           []domain.Company `json:"data"`
	TotalCompanies int              `json:"totalCompanies"`
}

func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.jobs.ListCompanies(r.Context())
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companiesResponse{
		Status:         "OK",
		RequestID:      uuid.NewString(),
		Data:           companies,
		TotalCompanies: len(companies),
	})
}

type applicationResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxApplicationBytes+1))
	if err != nil {
		writeError(w, h.logger, r, errs.Validation("could not read request body"))
		return
	}
	if len(body) > maxApplicationBytes {
		writeError(w, h.logger, r, errs.Validation("request body too large"))
		return
	}

	app, err := h.applications.Submit(r.Context(), body)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, applicationResponse{
		Message: "Application submitted successfully",
		ID:      app.ID,
	})
}
