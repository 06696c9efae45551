package handler

import (
	"strings"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InsightHandler struct {
	insights usecase.MarketInsights
}

func NewInsightHandler(insights usecase.MarketInsights) *InsightHandler {
	return &InsightHandler{insights: insights}
}

func (h *InsightHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/insights", h.Lookup)
}

func (h *InsightHandler) Lookup(c fiber.Ctx) error {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "title is required", nil, nil)
	}
	if h.insights == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Market insights not available", nil, nil)
	}

	mi := h.insights.Lookup(c.Context(), title, strings.TrimSpace(c.Query("industry")))
	if mi == nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Market insights not available", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mi)
}
