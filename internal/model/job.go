package model

// Job represents one tracked job application.
//
// The `json:"..."` tags define the wire format. The identifier is exposed as
// "_id" (matching what the document store calls it) and is always the hex
// string form of the ObjectID, never raw bytes.
//
// DateApplied is deliberately a string, not a time.Time. The API contract is a
// "YYYY-MM-DD HH:MM" display timestamp supplied by the caller or defaulted at
// creation; we store and echo it verbatim rather than round-tripping through
// a time type and silently reformatting user input.
type Job struct {
	ID          string `json:"_id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	DateApplied string `json:"date_applied"`
	Owner       string `json:"owner,omitempty"` // hex ID of the creating user
}
