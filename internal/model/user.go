// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// The ID is the hex form of the MongoDB ObjectID generated when the user
// document is inserted. We keep it as a string everywhere above the repository
// layer — identifiers never leave the API in their raw binary form, and a
// string keeps the model free of driver types.
//
// WHY IS PasswordHash TAGGED json:"-"?
// The hash must never appear in a response body, even accidentally. Tagging it
// "-" means encoding/json skips the field entirely, so a handler that returns
// a *User cannot leak it.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
