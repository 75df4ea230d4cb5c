// Package repository defines the persistence interfaces the service layer
// programs against. The concrete MongoDB implementation lives in the mongodb
// subpackage; services never import it directly.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanvir/jobtrackr/internal/model"
)

// JobRepository persists job applications.
//
// Identifiers cross this boundary already parsed (primitive.ObjectID) — the
// service layer runs raw strings through the identifier codec first, so an
// implementation never sees malformed input.
type JobRepository interface {
	// Insert stores a new job and fills in job.ID with the generated id.
	Insert(ctx context.Context, job *model.Job) error
	// List returns a snapshot of all jobs in natural (insertion) order.
	List(ctx context.Context) ([]model.Job, error)
	// GetByID returns the job or apperror.ErrNotFound.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Job, error)
	// Update merges the given fields into the document and returns the full
	// post-update job, or apperror.ErrNotFound. Callers must have validated
	// the field names already — this is a raw merge.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.Job, error)
	// Delete removes the job, or returns apperror.ErrNotFound if no document
	// matched (including a repeat delete of the same id).
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository persists user accounts. Users are created once and never
// updated or deleted through this API.
type UserRepository interface {
	// Create stores a new user and fills in user.ID. Returns
	// apperror.ErrConflict if the username is already taken.
	Create(ctx context.Context, user *model.User) error
	// GetByUsername returns the user or apperror.ErrNotFound. Lookup is
	// case-sensitive.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
