package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/waitlist"
	"github.com/jekabolt/grbpwr-waitlist/internal/dependency"
	wlmw "github.com/jekabolt/grbpwr-waitlist/internal/middleware"
	"github.com/jekabolt/grbpwr-waitlist/log"
)

const defaultRequestTimeout = 60 * time.Second

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout string   `mapstructure:"request_timeout"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler builds the router: waitlist routes under /api/waitlist and a health check.
func (s *Server) Handler(repo dependency.Repository, authServer *auth.Server, waitlistServer *waitlist.Server) (http.Handler, error) {
	timeout := defaultRequestTimeout
	if s.c.RequestTimeout != "" {
		var err error
		timeout, err = time.ParseDuration(s.c.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid request timeout %q: %w", s.c.RequestTimeout, err)
		}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Accept-Encoding"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(timeout))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "health check failed",
				slog.String("err", err.Error()),
			)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]string{"status": "unavailable"})
			return
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Route("/api/waitlist", func(r chi.Router) {
		r.Use(wlmw.Principal(authServer.JwtAuth))
		r.Mount("/", waitlistServer.Routes())
	})

	return r, nil
}

// Start starts the server
func (s *Server) Start(ctx context.Context,
	repo dependency.Repository,
	authServer *auth.Server,
	waitlistServer *waitlist.Server,
) error {
	handler, err := s.Handler(repo, authServer, waitlistServer)
	if err != nil {
		return err
	}

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("grbpwr-waitlist new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}

	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}

	return false
}
