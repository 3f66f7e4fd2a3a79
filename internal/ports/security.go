package ports

import "time"

// SessionClaims are the verified fields of a backend-issued session token.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenVerifier checks a session token's signature and expiry.
// The portal never trusts decoded-but-unverified claims; identity resolution
// on optional-auth routes simply fails closed to "anonymous".
type TokenVerifier interface {
	Verify(raw string) (SessionClaims, error)
}
