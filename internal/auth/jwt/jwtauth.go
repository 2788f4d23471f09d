package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const roleClaim = "role"

// Claims are the token claims a principal is resolved from.
type Claims struct {
	Subject string
	Role    string
}

// VerifyToken checks signature and expiry and returns the subject and role claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return Claims{}, err
	}
	if t.Subject() == "" {
		return Claims{}, errors.New("token has no subject")
	}
	c := Claims{Subject: t.Subject()}
	if v, ok := t.Get(roleClaim); ok {
		c.Role, _ = v.(string)
	}
	return c, nil
}

// NewToken creates a JWT carrying the subject (principal id) and role claims.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	claims := map[string]interface{}{
		"exp": time.Now().Add(ttl).Unix(),
		"sub": subject,
	}
	if role != "" {
		claims[roleClaim] = role
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return ts, err
	}
	return ts, nil
}
