package auth

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/grbpwr-waitlist/internal/auth/jwt"
)

const defaultJWTTTL = 60 * time.Minute

// Server issues and verifies the bearer tokens principals are resolved from.
type Server struct {
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	JWTTTL    string `mapstructure:"jwt_ttl"`
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	ttl := defaultJWTTTL
	if c.JWTTTL != "" {
		var err error
		ttl, err = time.ParseDuration(c.JWTTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid jwt ttl %q: %w", c.JWTTTL, err)
		}
	}

	return &Server{
		JwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
	}, nil
}

// IssueToken mints a token for subject with the given role. A zero ttl uses the configured one.
func (s *Server) IssueToken(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.jwtTTL
	}
	return jwt.NewToken(s.JwtAuth, ttl, subject, role)
}
