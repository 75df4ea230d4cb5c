// Package auth — password hashing utilities.
//
// WHY BCRYPT?
// bcrypt is deliberately slow, which is the point: brute-forcing a dump of
// bcrypt hashes is expensive. It also generates a random salt per hash and
// embeds salt + cost inside the output string, so two users with the same
// password get different hashes and no separate salt column is needed.
//
// Because the cost is embedded in each hash, raising the work factor later
// does not break verification of hashes created at the old cost — old hashes
// keep verifying, new registrations pick up the new cost.
//
// Hash format (the full output of bcrypt.GenerateFromPassword):
//
//	$2a$12$<22-char salt><31-char hash>
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor for new hashes.
//
// Cost 12 (2^12 rounds) takes roughly 250ms on current server hardware —
// negligible for a login, brutal for an attacker. Tune so hashing stays in
// the 200–300ms range as hardware improves.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct rather than free functions so the cost can be lowered in
// tests — cost 4 hashes in microseconds, cost 12 in hundreds of milliseconds,
// and the logic under test is identical.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the production cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom (usually
// minimal) cost. Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password with bcrypt. The returned string is
// self-contained (salt and cost included) — store it as-is.
//
// Returns an error for plaintexts over 72 bytes: bcrypt silently truncates
// longer input, and silent truncation of a password is worse than an error.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
// Returns nil on match.
//
// bcrypt.CompareHashAndPassword compares in constant time internally, so the
// response time does not leak how much of the password was right.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
