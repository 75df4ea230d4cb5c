// Package mongodb implements the repository interfaces on MongoDB.
//
// WHY A DOCUMENT STORE?
// Jobs and users are flat, schema-flexible records with no relations beyond a
// single owner id — a document per record is the natural shape. Every CRUD
// operation here touches exactly one document, so we lean entirely on Mongo's
// single-document atomicity: concurrent updates to the same job race at the
// store and the last write wins. That is an accepted property of this API,
// not a bug to paper over with locking.
//
// CONNECTION OWNERSHIP:
// One *DB is created at process start and injected into the services that
// need it. The driver pools connections internally; nothing else in the
// codebase touches the client.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB wraps the MongoDB client and the two collections this API uses.
type DB struct {
	client *mongo.Client
	jobs   *mongo.Collection
	users  *mongo.Collection
}

// New connects to MongoDB, verifies the connection with a ping, and ensures
// the indexes the repositories rely on.
//
// The unique index on users.username is load-bearing: the service layer
// pre-checks for duplicates, but two concurrent registrations of the same
// username can both pass that check. The index turns the loser of that race
// into a duplicate-key error, which Create maps to a conflict.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	db := &DB{
		client: client,
		jobs:   client.Database(database).Collection("jobs"),
		users:  client.Database(database).Collection("users"),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return db, nil
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongodb: creating username index: %w", err)
	}
	return nil
}

// Close disconnects the client. Call during graceful shutdown.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
