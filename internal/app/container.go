package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	"talent-match/internal/database/migration"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/embedding"
	"talent-match/internal/extract"
	"talent-match/internal/infrastructure/cache"
	"talent-match/internal/infrastructure/events"
	"talent-match/internal/infrastructure/storage"
	"talent-match/internal/infrastructure/vectorstore"
	"talent-match/internal/insight"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"go.uber.org/zap"
)

const (
	CacheRedis  = "redis"
	CacheQdrant = "qdrant"

	ProviderGemini = "gemini"
)

// Container owns every long-lived dependency of the service and releases them in Close.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB

	Redis     *cache.Redis
	Qdrant    *vectorstore.Qdrant
	Embedding *embedding.Service
	Storage   *storage.Router
	Extractor *extract.Extractor
	Insights  *insight.Provider
	JWT       jwt.Service
	Hub       *ws.Hub
	Publisher *events.Publisher

	Recommendations usecase.RecommendationUsecase
	Rankings        usecase.ApplicationRankingUsecase
	Interactions    usecase.InteractionUsecase
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: log}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(dbCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	c.DB = db

	applied, err := migration.Default(log).Run(dbCtx, db.SQLDB())
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if applied > 0 {
		log.Info("migrations applied", zap.Int("count", applied))
	}

	c.Storage = NewStorage(ctx, cfg.Storage, log)
	c.Extractor = extract.NewExtractor(c.Storage, log)
	c.Embedding = c.newEmbedding(ctx)
	c.Insights = insight.NewProvider(c.Storage, cfg.Insight.DatasetPath, log)
	if err := c.Insights.Initialize(ctx); err != nil {
		log.Warn("market insights disabled", zap.Error(err))
	}

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, time.Hour)
	c.Hub = ws.NewHub(log)
	notifiers := []usecase.RankingNotifier{c.Hub}
	if cfg.AMQP.URL != "" {
		pub, err := events.NewPublisher(cfg.AMQP, log)
		if err != nil {
			log.Warn("ranking events will not be published", zap.Error(err))
		} else {
			c.Publisher = pub
			notifiers = append(notifiers, pub)
		}
	}

	candidates := repository.NewPostgresCandidateRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)
	interactions := repository.NewPostgresInteractionRepository(db)

	c.Recommendations = usecase.NewRecommendationUsecase(usecase.RecommendationDeps{
		Candidates:   candidates,
		Jobs:         jobs,
		Interactions: interactions,
		Applications: applications,
		Encoder:      c.Embedding,
		Extractor:    c.Extractor,
		Insights:     c.Insights,
		Logger:       log,
	})
	c.Rankings = usecase.NewApplicationRankingUsecase(usecase.ApplicationRankingDeps{
		Jobs:         jobs,
		Applications: applications,
		Candidates:   candidates,
		Encoder:      c.Embedding,
		Extractor:    c.Extractor,
		Insights:     c.Insights,
		Notifiers:    notifiers,
		Logger:       log,
	})
	c.Interactions = usecase.NewInteractionUsecase(interactions, jobs)

	return c, nil
}

// NewStorage routes s3:// references to S3 and everything else to the upload root.
func NewStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) *storage.Router {
	sources := []storage.Source{storage.NewLocalSource(cfg.UploadRoot)}
	s3src, err := storage.NewS3Source(ctx, cfg)
	if err != nil {
		log.Warn("s3 references disabled", zap.Error(err))
	} else {
		sources = append(sources, s3src)
	}
	return storage.NewRouter(sources...)
}

func (c *Container) newEmbedding(ctx context.Context) *embedding.Service {
	cfg := c.Config.Embedding

	var vc embedding.VectorCache
	switch cfg.Cache {
	case CacheRedis:
		c.Redis = cache.NewRedis(ctx, c.Config.Redis, c.Logger)
		vc = c.Redis
	case CacheQdrant:
		q, err := vectorstore.NewQdrant(c.Config.Qdrant, c.Logger)
		if err != nil {
			c.Logger.Warn("qdrant cache disabled", zap.Error(err))
			break
		}
		c.Qdrant = q
		vc = q
	}

	var loader embedding.Loader
	if cfg.Provider == ProviderGemini {
		loader = embedding.NewGeminiLoader(cfg.APIKey, cfg.Model, cfg.BatchSize)
	} else {
		c.Logger.Info("embedding provider disabled, AI ranking falls back", zap.String("provider", cfg.Provider))
	}
	return embedding.NewService(loader, vc, c.Logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Embedding != nil {
		errs = append(errs, c.Embedding.Shutdown())
	}
	if c.Insights != nil {
		c.Insights.Shutdown()
	}
	if c.Qdrant != nil {
		errs = append(errs, c.Qdrant.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
