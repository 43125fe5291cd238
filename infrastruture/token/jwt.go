package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-robomaze/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const sessionClaim = "session_id"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSession    = errors.New("token carries no session")
)

// JwtService handles JWT operations.
// Implements i.SessionTokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

var _ i.SessionTokenizer = &JwtService{}

// Generate creates a JWT for the given claims.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{
		"exp": now.Add(expTime).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidToken)
	}

	return claims, nil
}

// SessionToken creates a token scoped to one session.
func (s *JwtService) SessionToken(sessionID uuid.UUID, expTime time.Duration) (string, error) {
	return s.Generate(map[string]interface{}{sessionClaim: sessionID.String()}, expTime)
}

// SessionID validates a token and returns the session it was issued for.
func (s *JwtService) SessionID(tokenString string) (uuid.UUID, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	raw, ok := claims[sessionClaim].(string)
	if !ok {
		return uuid.Nil, ErrNoSession
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrNoSession, err)
	}
	return id, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
