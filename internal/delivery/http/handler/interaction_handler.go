package handler

import (
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/interaction"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InteractionHandler struct {
	uc usecase.InteractionUsecase
}

func NewInteractionHandler(uc usecase.InteractionUsecase) *InteractionHandler {
	return &InteractionHandler{uc: uc}
}

func (h *InteractionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/interactions")
	grp.Post("/views", h.TrackView)
	grp.Post("/preferences", h.SetPreference)
}

func (h *InteractionHandler) TrackView(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.TrackViewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	if req.TimeSpentSeconds < 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "time_spent_seconds must not be negative", nil, nil)
	}

	if err := h.uc.TrackView(c.Context(), userID, jobID, req.TimeSpentSeconds, req.Source); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "View recorded", nil)
}

func (h *InteractionHandler) SetPreference(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SetPreferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}
	pref := interaction.Type(strings.ToLower(strings.TrimSpace(req.PreferenceType)))
	switch pref {
	case interaction.TypeSaved, interaction.TypeRejected, interaction.TypeIgnored:
	default:
		return middleware.NewAppError(fiber.StatusBadRequest, "preference_type must be saved, rejected or ignored", nil, nil)
	}

	if err := h.uc.SetPreference(c.Context(), userID, jobID, pref); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Preference recorded", nil)
}
