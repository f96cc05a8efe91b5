package handler

import (
	"context"
	"time"

	"resume-builder/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus the state of the database and cache.
// A cache outage degrades the service but does not fail the check.
type HealthHandler struct {
	db    pinger
	cache pinger
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Database: pingStatus(ctx, h.db), Cache: pingStatus(ctx, h.cache)}
	if res.Database == "down" {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", res)
	}
	return response.OK(c, res)
}

func pingStatus(ctx context.Context, p pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
