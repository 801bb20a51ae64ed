package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// Claims represents session token claims wrapping the session payload.
type Claims struct {
	jwt.RegisteredClaims
	User model.SessionUser `json:"user"`
}

// SessionTTL is the token lifetime from issuance. Expiry is fixed, not
// sliding; a refresh issues a brand-new token.
const SessionTTL = 7 * 24 * time.Hour

// DevSecret is the fixed development fallback signing key. Operationally
// unsafe; main refuses to start with it in production.
const DevSecret = "tender-portal-development-secret"

// MinSecretLen is the minimum signing secret length accepted in production.
const MinSecretLen = 32

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
}

// NewJWT creates a session token manager with the provided secret key. An
// empty secret falls back to DevSecret.
func NewJWT(secretKey string) *JWT {
	return NewJWTWithTTL(secretKey, SessionTTL)
}

// NewJWTWithTTL creates a session token manager with an explicit TTL.
func NewJWTWithTTL(secretKey string, ttl time.Duration) *JWT {
	if secretKey == "" {
		secretKey = DevSecret
	}
	return &JWT{secretKey: secretKey, ttl: ttl}
}

var _ model.TokenManager = (*JWT)(nil)

// GenerateSessionToken signs a token carrying the session payload.
func (j *JWT) GenerateSessionToken(user model.SessionUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		User: user,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken verifies signature and expiry and extracts the payload.
func (j *JWT) ParseSessionToken(tokenString string) (model.SessionUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.SessionUser{}, classifyParseError(err)
	}
	if !token.Valid {
		return model.SessionUser{}, model.ErrTokenMalformed
	}

	return claims.User, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrTokenSignature
	default:
		return fmt.Errorf("%w: %w", model.ErrTokenMalformed, err)
	}
}
