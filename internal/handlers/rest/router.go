// Package rest serves the team service as a JSON HTTP API
package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/metrics"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
)

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 1 << 20

// HealthFunc reports whether a backing store is reachable
type HealthFunc func(ctx context.Context) error

// Config holds the dependencies for the HTTP API
type Config struct {
	TeamService team.Service
	Logger      *zap.Logger
	// Health is checked by /healthz when set
	Health HealthFunc
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.TeamService == nil {
		return errors.InvalidArgument("team service is required")
	}
	return nil
}

// Handler serves the HTTP API
type Handler struct {
	teamService team.Service
	logger      *zap.Logger
	health      HealthFunc
}

// NewRouter builds the routes of the HTTP API
func NewRouter(cfg *Config) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		teamService: cfg.TeamService,
		logger:      cfg.Logger,
		health:      cfg.Health,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/share", h.CreateShare)
		r.Post("/share/inline", h.EncodeInline)
		r.Get("/share/inline/{token}", h.DecodeInline)
		r.Get("/share/{code}", h.GetShare)
		r.Post("/synergies", h.ResolveSynergies)
		r.Get("/characters", h.ListCharacters)
	})

	return r, nil
}
