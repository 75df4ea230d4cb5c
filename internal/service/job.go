// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the document store
//
// JobService takes repository.JobRepository (an interface), not the concrete
// mongodb.DB. Tests pass an in-memory fake; main wires the real store. The
// service returns domain errors from apperror — never HTTP status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/identifier"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/repository"
)

// dateAppliedFormat is the display format for the date_applied field,
// e.g. "2026-08-28 14:05". Defaults are taken in UTC so two servers in
// different timezones stamp identical values.
const dateAppliedFormat = "2006-01-02 15:04"

// requiredJobFields is checked in this exact order on create; the error names
// the first field that is missing.
var requiredJobFields = []string{"company", "position", "status"}

// allowedUpdateFields is the allow-list for update patches. Everything else —
// including _id, owner, and date_applied — is immutable through the API.
var allowedUpdateFields = map[string]bool{
	"company":  true,
	"position": true,
	"status":   true,
}

// JobService handles business logic for job applications.
type JobService struct {
	repo   repository.JobRepository
	logger *slog.Logger
	now    func() time.Time // injectable clock for deterministic tests
}

// NewJobService creates a JobService backed by the given repository.
func NewJobService(repo repository.JobRepository, logger *slog.Logger) *JobService {
	return &JobService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateJobInput carries the caller-supplied fields for a new job.
// DateApplied is optional; the other three are required and must be
// non-empty.
type CreateJobInput struct {
	Company     string
	Position    string
	Status      string
	DateApplied string
}

// Create validates the input and persists a new job owned by ownerID.
//
// Required fields are checked in a fixed order (company, position, status)
// and the first missing one fails the whole call — nothing is persisted on a
// validation failure. A missing date_applied defaults to the current UTC
// time in "YYYY-MM-DD HH:MM" form.
func (s *JobService) Create(ctx context.Context, ownerID string, in CreateJobInput) (*model.Job, error) {
	values := map[string]string{
		"company":  in.Company,
		"position": in.Position,
		"status":   in.Status,
	}
	for _, field := range requiredJobFields {
		if values[field] == "" {
			return nil, apperror.ValidationFailed(field, fmt.Sprintf("Missing required field: %s", field))
		}
	}

	dateApplied := in.DateApplied
	if dateApplied == "" {
		dateApplied = s.now().UTC().Format(dateAppliedFormat)
	}

	job := &model.Job{
		Company:     in.Company,
		Position:    in.Position,
		Status:      in.Status,
		DateApplied: dateApplied,
		Owner:       ownerID,
	}
	if err := s.repo.Insert(ctx, job); err != nil {
		return nil, fmt.Errorf("service/job: creating job: %w", err)
	}

	s.logger.Info("job created",
		slog.String("jobID", job.ID),
		slog.String("company", job.Company),
	)

	return job, nil
}

// List returns a snapshot of all jobs.
// No pagination and no per-user filtering — the API exposes the whole
// collection in the store's natural order.
func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/job: listing jobs: %w", err)
	}
	return jobs, nil
}

// Get returns the job for a raw identifier string.
// Fails with apperror.ErrInvalidID before ever touching the store, and with
// apperror.ErrNotFound if no document matches.
func (s *JobService) Get(ctx context.Context, rawID string) (*model.Job, error) {
	id, err := identifier.Parse(rawID)
	if err != nil {
		return nil, err
	}

	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/job: getting job %s: %w", rawID, err)
	}
	return job, nil
}

// Update applies a patch of field → new value and returns the full
// post-update job.
//
// ALL keys are validated against the allow-list before anything is written:
// one disallowed key fails the whole patch, so a request mixing valid and
// invalid fields leaves the document untouched. Unspecified fields keep
// their prior values (merge semantics).
func (s *JobService) Update(ctx context.Context, rawID string, patch map[string]any) (*model.Job, error) {
	id, err := identifier.Parse(rawID)
	if err != nil {
		return nil, err
	}

	if len(patch) == 0 {
		return nil, apperror.ValidationFailed("", "No update data provided")
	}

	updateFields := make(map[string]any, len(patch))
	for key, value := range patch {
		if !allowedUpdateFields[key] {
			return nil, apperror.ValidationFailed(key, fmt.Sprintf("Field '%s' is not allowed to be updated", key))
		}
		updateFields[key] = value
	}
	if len(updateFields) == 0 {
		return nil, apperror.ValidationFailed("", "No valid fields provided to update")
	}

	job, err := s.repo.Update(ctx, id, updateFields)
	if err != nil {
		return nil, fmt.Errorf("service/job: updating job %s: %w", rawID, err)
	}

	s.logger.Info("job updated", slog.String("jobID", rawID))

	return job, nil
}

// Delete removes the job. Deleting an id that no longer exists — including a
// second delete of the same id — fails with apperror.ErrNotFound.
func (s *JobService) Delete(ctx context.Context, rawID string) error {
	id, err := identifier.Parse(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service/job: deleting job %s: %w", rawID, err)
	}

	s.logger.Info("job deleted", slog.String("jobID", rawID))

	return nil
}
