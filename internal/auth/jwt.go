// Package auth provides JWT issuance/validation and password hashing for the
// JobTrackr API.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User POSTs /register → password is bcrypt-hashed, user stored
// 2. User POSTs /login → server verifies the hash and issues a JWT
// 3. Client sends "Authorization: Bearer <jwt>" on /jobs requests
// 4. RequireAuth middleware validates the JWT and puts the userID in context
//
// WHY JWT?
// JWT is stateless — the server stores no session data. Everything needed
// (user id, expiry) is inside the signed token, and the HMAC signature means
// nobody can tamper with it without the secret key. The server verifies a
// token with no store lookup at all.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"

	"github.com/tanvir/jobtrackr/internal/identifier"
)

// Token validation errors. The middleware maps each to its own error kind and
// status code, so these are sentinels rather than formatted messages.
var (
	// ErrMissingToken: no bearer token was presented at all.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrMalformedToken: the token could not be parsed or its signature,
	// issuer, algorithm, or subject is wrong.
	ErrMalformedToken = errors.New("auth: malformed token")
	// ErrExpiredToken: cryptographically valid but past its expiry.
	ErrExpiredToken = errors.New("auth: token expired")
	// ErrRevokedToken: the token's jti appears in the revocation list.
	ErrRevokedToken = errors.New("auth: token revoked")
)

const issuer = "jobtrackr"

// RevocationList answers whether a token ID (the "jti" claim) has been
// revoked. This core ships no revocation storage — the hook exists so one can
// be plugged in without touching validation logic.
type RevocationList interface {
	IsRevoked(tokenID string) bool
}

// TokenService issues and validates signed access tokens.
//
// It holds the HMAC secret and the token lifetime. Both are fixed at
// construction: the secret is process-wide configuration read once at
// startup, never ambient global state.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked RevocationList // may be nil: nothing is revoked
}

// DefaultTokenTTL is the access-token lifetime used when the configuration
// does not override it.
const DefaultTokenTTL = 60 * time.Minute

// NewTokenService creates a TokenService with the given secret and token
// lifetime. The secret should be at least 32 bytes of random data in
// production, e.g. JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// SetRevocationList installs a revocation hook. Call during startup wiring,
// before the server starts handling requests.
func (s *TokenService) SetRevocationList(rl RevocationList) {
	s.revoked = rl
}

// claims is the JWT payload. jwt.RegisteredClaims covers everything we need:
// Subject carries the user ID, ID (jti) is the unique per-token handle the
// revocation hook keys on.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs an access token for the given user ID.
//
// Signing algorithm: HS256 (HMAC-SHA256) — symmetric, one key for signing and
// verifying. Fine for a single-service deployment; RS256 only pays off when
// other services need to verify tokens without the secret.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.issueWithTTL(userID, s.ttl)
}

// issueWithTTL backs Issue and lets tests mint already-expired tokens.
func (s *TokenService) issueWithTTL(userID string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the user ID from
// its "sub" claim.
//
// Checks, in order:
//   - signature, algorithm (HS256 only — blocks alg-confusion tokens),
//     issuer, and expiry, all enforced by the jwt library
//   - revocation of the jti, if a RevocationList is installed
//   - the subject must parse as a store identifier; a token whose subject
//     is not a well-formed id is malformed, not merely unauthorized
//
// Failures are reported as ErrExpiredToken, ErrRevokedToken, or
// ErrMalformedToken.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrMalformedToken
	}

	if s.revoked != nil && c.ID != "" && s.revoked.IsRevoked(c.ID) {
		return "", ErrRevokedToken
	}

	// The subject must round-trip through the identifier codec. A signed
	// token carrying garbage here means the token was minted wrong, so it
	// counts as malformed.
	if _, err := identifier.Parse(c.Subject); err != nil {
		return "", fmt.Errorf("%w: invalid token identity", ErrMalformedToken)
	}

	return c.Subject, nil
}
