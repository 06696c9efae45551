package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Recommendation *handler.RecommendationHandler
	Ranking        *handler.RankingHandler
	Interaction    *handler.InteractionHandler
	Insight        *handler.InsightHandler
	Rankings       *ws.Handler
}

// Register mounts the v1 API. Every route requires a valid access token; ranking routes
// additionally require the recruiter role.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}

	protected := r.Group("", auth)

	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(protected)
	}
	if h.Interaction != nil {
		h.Interaction.RegisterRoutes(protected)
	}
	if h.Insight != nil {
		h.Insight.RegisterRoutes(protected)
	}

	// Guards are attached per route: a middleware on an empty-prefix group would apply to
	// every route under /api/v1.
	recruiterOnly := middleware.RequireRole(jwt.RoleRecruiter)
	if h.Ranking != nil {
		h.Ranking.RegisterRoutes(protected, recruiterOnly)
	}
	if h.Rankings != nil {
		protected.Get("/ws/rankings", recruiterOnly, h.Rankings.HandleRankingsWS)
	}
}
