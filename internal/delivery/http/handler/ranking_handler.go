package handler

import (
	"strings"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const rankedApplicationsLimit = 10

type RankingHandler struct {
	uc usecase.ApplicationRankingUsecase
}

func NewRankingHandler(uc usecase.ApplicationRankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

// RegisterRoutes mounts the rank endpoint behind the given per-route guards.
func (h *RankingHandler) RegisterRoutes(r fiber.Router, guards ...any) {
	if r == nil {
		return
	}
	chain := append(guards, h.Rank)
	r.Post("/jobs/:id/applications/rank", chain[0], chain[1:]...)
}

func (h *RankingHandler) Rank(c fiber.Ctx) error {
	recruiterID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req dto.RankApplicationsRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	ranked, err := h.uc.RankForJob(c.Context(), recruiterID, jobID, strings.TrimSpace(req.JobDescription), rankedApplicationsLimit)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankedApplicationResponses(ranked))
}
