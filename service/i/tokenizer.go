package i

import (
	"time"

	"github.com/google/uuid"
)

// Tokenizer defines methods for generating and decoding tokens.
type Tokenizer interface {
	// Generate creates a token with the given claims and expiration duration.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	Decode(token string) (map[string]interface{}, error)
}

// SessionTokenizer issues and reads tokens scoped to one game session.
type SessionTokenizer interface {
	Tokenizer

	// SessionToken creates a token granting access to the session.
	SessionToken(sessionID uuid.UUID, expTime time.Duration) (string, error)

	// SessionID validates a token and returns the session it grants access to.
	SessionID(token string) (uuid.UUID, error)
}
