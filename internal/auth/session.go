package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

const (
	sessionIssuer = "eclub"
	clockLeeway   = 5 * time.Second
)

// SessionClaims identify the admin user a session token was issued to.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// sessionToken is the full JWT payload: registered claims plus ours.
type sessionToken struct {
	jwt.Claims
	SessionClaims
}

// SessionManager issues and validates HS256 session tokens for admin users.
type SessionManager struct {
	key    []byte
	signer jose.Signer
	maxAge time.Duration
}

// NewSessionManager creates a session manager. The secret must be at least 32 bytes.
func NewSessionManager(secret string, maxAge time.Duration) (*SessionManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes, got %d", len(secret))
	}

	key := []byte(secret)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session signer: %w", err)
	}
	return &SessionManager{key: key, signer: signer, maxAge: maxAge}, nil
}

// GenerateDevSecret returns a random 64-character hex secret. Tokens signed
// with it do not survive a restart.
func GenerateDevSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	return hex.EncodeToString(b)
}

// IssueToken signs a token for claims that expires after the configured max age.
func (sm *SessionManager) IssueToken(claims SessionClaims) (string, error) {
	now := time.Now()
	payload := sessionToken{
		Claims: jwt.Claims{
			Issuer:    sessionIssuer,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Expiry:    jwt.NewNumericDate(now.Add(sm.maxAge)),
		},
		SessionClaims: claims,
	}

	token, err := jwt.Signed(sm.signer).Claims(payload).Serialize()
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// ValidateToken checks signature, issuer and validity window and returns the
// embedded claims.
func (sm *SessionManager) ValidateToken(raw string) (*SessionClaims, error) {
	tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, fmt.Errorf("parsing session token: %w", err)
	}

	var payload sessionToken
	if err := tok.Claims(sm.key, &payload); err != nil {
		return nil, fmt.Errorf("verifying session token: %w", err)
	}

	expected := jwt.Expected{Issuer: sessionIssuer, Time: time.Now()}
	if err := payload.Claims.ValidateWithLeeway(expected, clockLeeway); err != nil {
		return nil, fmt.Errorf("session token claims: %w", err)
	}
	return &payload.SessionClaims, nil
}
