package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/repository"
)

// compile-time check that *DB implements repository.JobRepository
var _ repository.JobRepository = (*DB)(nil)

// jobDoc is the stored shape of a job. It exists so the driver types
// (ObjectID) stay inside this package; model.Job carries identifiers as hex
// strings only.
type jobDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Company     string             `bson:"company"`
	Position    string             `bson:"position"`
	Status      string             `bson:"status"`
	DateApplied string             `bson:"date_applied"`
	Owner       primitive.ObjectID `bson:"owner,omitempty"`
}

func (d jobDoc) toModel() model.Job {
	j := model.Job{
		ID:          d.ID.Hex(),
		Company:     d.Company,
		Position:    d.Position,
		Status:      d.Status,
		DateApplied: d.DateApplied,
	}
	if !d.Owner.IsZero() {
		j.Owner = d.Owner.Hex()
	}
	return j
}

// Insert stores a new job and sets job.ID to the generated ObjectID hex.
func (db *DB) Insert(ctx context.Context, job *model.Job) error {
	doc := jobDoc{
		Company:     job.Company,
		Position:    job.Position,
		Status:      job.Status,
		DateApplied: job.DateApplied,
	}
	if job.Owner != "" {
		owner, err := primitive.ObjectIDFromHex(job.Owner)
		if err != nil {
			return fmt.Errorf("mongodb: owner id %q: %w", job.Owner, err)
		}
		doc.Owner = owner
	}

	res, err := db.jobs.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("mongodb: inserting job: %w", err)
	}

	job.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// List returns all jobs in natural order. The cursor is drained before
// returning, so the result is a snapshot, not a live view.
func (db *DB) List(ctx context.Context) ([]model.Job, error) {
	cur, err := db.jobs.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: reading job cursor: %w", err)
	}

	jobs := make([]model.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toModel())
	}
	return jobs, nil
}

// GetByID returns one job or apperror.ErrNotFound.
func (db *DB) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Job, error) {
	var doc jobDoc
	err := db.jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Job", id.Hex())
		}
		return nil, fmt.Errorf("mongodb: getting job %s: %w", id.Hex(), err)
	}

	job := doc.toModel()
	return &job, nil
}

// Update $sets the given fields and returns the post-update document in one
// round trip. FindOneAndUpdate with ReturnDocument(After) is atomic on the
// single document, so the returned job is exactly what this write produced —
// a concurrent later write may of course overwrite it afterwards.
func (db *DB) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.Job, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc jobDoc
	err := db.jobs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Job", id.Hex())
		}
		return nil, fmt.Errorf("mongodb: updating job %s: %w", id.Hex(), err)
	}

	job := doc.toModel()
	return &job, nil
}

// Delete removes one job. A delete that matches nothing — including deleting
// the same id twice — is reported as NotFound, never as success.
func (db *DB) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.jobs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongodb: deleting job %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("Job", id.Hex())
	}
	return nil
}
