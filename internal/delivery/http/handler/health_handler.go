package handler

import (
	"context"
	"time"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck probes one dependency. Required checks turn the endpoint into a 503 when down.
type HealthCheck struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	res := dto.HealthResponse{Status: "ok", Components: make(map[string]string, len(h.checks))}
	status := fiber.StatusOK
	for _, chk := range h.checks {
		if chk.Check == nil {
			continue
		}
		if err := chk.Check(ctx); err != nil {
			res.Components[chk.Name] = "down"
			if chk.Required {
				res.Status = "unavailable"
				status = fiber.StatusServiceUnavailable
			} else if res.Status == "ok" {
				res.Status = "degraded"
			}
			continue
		}
		res.Components[chk.Name] = "up"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", res)
	}
	return response.Success(c, status, response.MessageOK, res)
}
