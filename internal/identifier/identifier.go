// Package identifier parses the opaque document identifiers used in URLs and
// token subjects.
//
// The store generates MongoDB ObjectIDs; on the wire they are always the
// 24-character hex form. This package is the single place raw strings are
// converted back — every path parameter and token subject goes through Parse,
// so "is this a well-formed id" is decided exactly once.
package identifier

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tanvir/jobtrackr/internal/apperror"
)

// Parse converts a hex string into an ObjectID.
// Returns apperror.ErrInvalidID for anything that is not 24 hex characters.
// Pure — no side effects, safe to call anywhere.
func Parse(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperror.InvalidID()
	}
	return oid, nil
}
