package app

import (
	"context"
	"fmt"
	"strings"

	"talent-match/internal/config"
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/embedding"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and the HTTP app. The returned cleanup stops the websocket
// hub and releases every dependency.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	// Warm the model in the background so the first request does not pay for the load.
	go func() {
		if err := c.Embedding.Initialize(hubCtx); err != nil {
			c.Logger.Warn("embedding model unavailable", zap.Error(err))
		}
	}()

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(log)
	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	health := handler.NewHealthHandler(healthChecks(c)...)
	handlers := v1.Handlers{
		Recommendation: handler.NewRecommendationHandler(c.Recommendations),
		Ranking:        handler.NewRankingHandler(c.Rankings),
		Interaction:    handler.NewInteractionHandler(c.Interactions),
		Insight:        handler.NewInsightHandler(c.Insights),
		Rankings:       ws.NewHandler(c.Hub, c.Logger, middleware.UserID),
	}
	auth := middleware.NewAuthMiddleware(c.JWT).Middleware()

	routes.NewRegistry(health, handlers, auth).Register(app)
}

func healthChecks(c *Container) []handler.HealthCheck {
	checks := []handler.HealthCheck{{Name: "database", Required: true, Check: c.DB.Ping}}
	if c.Redis != nil {
		checks = append(checks, handler.HealthCheck{Name: "redis", Check: c.Redis.Ping})
	}
	checks = append(checks, handler.HealthCheck{Name: "embedding", Check: func(ctx context.Context) error {
		if !c.Embedding.Ready(ctx) {
			return embedding.ErrModelUnavailable
		}
		return nil
	}})
	return checks
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
