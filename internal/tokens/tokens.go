package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/editfolio/editfolio-backend/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims is the decoded payload of a session token.
type SessionClaims struct {
	UID       string
	Email     string
	Anonymous bool
}

// GenerateSessionToken creates a signed JWT session token for the identity
func GenerateSessionToken(cfg *config.Config, c SessionClaims, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   c.UID,
		"email": c.Email,
		"anon":  c.Anonymous,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseSessionToken verifies the signature and expiry and returns the
// decoded claims. Pre-provisioned sign-in tokens use the same format, so a
// single parser covers both.
func ParseSessionToken(cfg *config.Config, raw string) (SessionClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, ErrInvalidToken
	}
	uid, _ := mc["uid"].(string)
	if uid == "" {
		return SessionClaims{}, ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	anon, _ := mc["anon"].(bool)
	return SessionClaims{UID: uid, Email: email, Anonymous: anon}, nil
}
