package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanvir/jobtrackr/internal/apperror"
	"github.com/tanvir/jobtrackr/internal/model"
	"github.com/tanvir/jobtrackr/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// userDoc is the stored shape of a user. The password hash is stored under
// "password" — it is already a one-way bcrypt hash, never the plaintext.
type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

func (d userDoc) toModel() model.User {
	return model.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
	}
}

// Create inserts a new user and sets user.ID.
//
// The unique index on username turns a concurrent duplicate registration into
// a duplicate-key error here, which we surface as the same conflict the
// service's pre-check would have reported.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	res, err := db.users.InsertOne(ctx, userDoc{
		Username: user.Username,
		Password: user.PasswordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("User already exists")
		}
		return fmt.Errorf("mongodb: inserting user: %w", err)
	}

	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByUsername looks up a user by exact (case-sensitive) username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var doc userDoc
	err := db.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("User", username)
		}
		return nil, fmt.Errorf("mongodb: getting user %q: %w", username, err)
	}

	user := doc.toModel()
	return &user, nil
}
