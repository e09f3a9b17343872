package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type jobRequest struct {
	Files []etl.FileInput `json:"files"`
}

// submitJob validates the file list, creates a pending job and hands it to
// the executor. The response returns immediately; progress is polled via
// the jobs endpoints.
func (r *Router) submitJob(w http.ResponseWriter, req *http.Request) {
	var body jobRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(body.Files) == 0 {
		respondError(w, http.StatusBadRequest, "files are required")
		return
	}

	missing := []string{}
	for _, f := range body.Files {
		if f.CustomerID == 0 {
			missing = append(missing, f.Filename)
		}
	}
	if len(missing) > 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Missing customerId for: %s", strings.Join(missing, ", ")))
		return
	}

	job, err := r.jobs.CreateJob(req.Context(), body.Files)
	if err != nil {
		r.log.Error("job creation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	if err := r.runner.Submit(job.ID); err != nil {
		_ = r.jobs.FailJob(req.Context(), job.ID)
		respondError(w, http.StatusServiceUnavailable, "Import queue is full, try again later")
		return
	}

	r.log.Info("job submitted", zap.String("job", job.ID), zap.Int("files", len(body.Files)))
	respondJSON(w, http.StatusAccepted, map[string]string{"jobId": job.ID})
}

// listJobs returns the most recent jobs, newest first.
func (r *Router) listJobs(w http.ResponseWriter, req *http.Request) {
	limit := 50
	if raw := req.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	jobs, err := r.jobs.ListJobs(req.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// getJob returns one job with per-file statuses and, when finished, the
// aggregated summary.
func (r *Router) getJob(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	job, err := r.jobs.GetJob(req.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load job")
		return
	}
	respondJSON(w, http.StatusOK, job)
}
