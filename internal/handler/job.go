package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/jobtrackr/internal/auth"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/service"
)

// JobHandler exposes CRUD over job applications.
//
// All /jobs routes sit behind the RequireAuth middleware — by the time a
// request reaches these methods the token has been validated and the userID
// is in the context.
//
// ROUTES:
//
//	POST   /jobs      → create
//	GET    /jobs      → list all
//	GET    /jobs/{id} → get one
//	PUT    /jobs/{id} → patch allow-listed fields
//	DELETE /jobs/{id} → delete
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

// createJobRequest is the body for POST /jobs. DateApplied is optional;
// the service defaults it. Unknown fields are rejected at decode time.
type createJobRequest struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	DateApplied string `json:"date_applied"`
}

// HandleCreate creates a new job application.
//
// HTTP: POST /jobs
// 201:  the full job object, including the generated "_id" and the defaulted
// "date_applied" if the caller did not supply one
// 400:  malformed body or a missing required field (named in the error)
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.logger.Warn("create job: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	ownerID, _ := auth.UserIDFromContext(r.Context())

	job, err := h.jobs.Create(r.Context(), ownerID, service.CreateJobInput{
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		DateApplied: req.DateApplied,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// HandleList returns every job application.
//
// HTTP: GET /jobs
// 200:  JSON array (always an array, [] when the collection is empty)
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	writeJSON(w, http.StatusOK, jobs)
}

// HandleGet returns one job by its identifier.
//
// HTTP: GET /jobs/{id}
// 400:  malformed identifier
// 404:  no job with that id
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// HandleUpdate patches a job's allow-listed fields.
//
// HTTP: PUT /jobs/{id}
// Body: {"status": "interviewing", ...} — any subset of company/position/status
// 200:  the full post-update job
// 400:  malformed id, empty body, or a field outside the allow-list
// 404:  no job with that id
//
// The body is decoded as a map (not a struct) on purpose: the allow-list
// check must see every key the caller sent, including ones no struct field
// would capture.
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No update data provided"})
			return
		}
		h.logger.Warn("update job: invalid JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	job, err := h.jobs.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// HandleDelete removes a job.
//
// HTTP: DELETE /jobs/{id}
// 200:  {"message": "Job deleted successfully"}
// 400:  malformed identifier
// 404:  no job with that id (repeating a delete is a 404, not a silent 200)
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}
