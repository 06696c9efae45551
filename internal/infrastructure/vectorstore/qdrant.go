// Package vectorstore persists embedding vectors in Qdrant so they survive process restarts.
package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const defaultGRPCPort = 6334

type pointStore interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Get(ctx context.Context, request *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error)
	Close() error
}

type Qdrant struct {
	client     pointStore
	collection string
	logger     *zap.Logger

	mu     sync.Mutex
	exists bool
}

func NewQdrant(cfg config.QdrantConfig, log *zap.Logger) (*Qdrant, error) {
	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant url: %w", err)
	}

	port := defaultGRPCPort
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return newQdrant(client, cfg.Collection, log), nil
}

func newQdrant(client pointStore, collection string, log *zap.Logger) *Qdrant {
	return &Qdrant{client: client, collection: collection, logger: logger.Named(log, "vectorstore")}
}

// PointID maps a cache key to a stable point id.
func PointID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// collectionReady reports whether the collection exists. With create set, a missing collection
// is created with the given vector size.
func (q *Qdrant) collectionReady(ctx context.Context, create bool, size int) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.exists {
		return true, nil
	}

	ok, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return false, fmt.Errorf("check collection: %w", err)
	}
	if ok {
		q.exists = true
		return true, nil
	}
	if !create {
		return false, nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(size),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return false, fmt.Errorf("create collection: %w", err)
	}
	q.logger.Info("qdrant collection created", zap.String("collection", q.collection), zap.Int("size", size))
	q.exists = true
	return true, nil
}

func (q *Qdrant) GetVector(ctx context.Context, key string) ([]float32, bool, error) {
	ok, err := q.collectionReady(ctx, false, 0)
	if err != nil || !ok {
		return nil, false, err
	}

	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collection,
		Ids:            []*qdrant.PointId{qdrant.NewID(PointID(key))},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get point: %w", err)
	}
	if len(points) == 0 {
		return nil, false, nil
	}

	vec := points[0].GetVectors().GetVector()
	data := vec.GetDense().GetData()
	if len(data) == 0 {
		data = vec.GetData()
	}
	return data, len(data) > 0, nil
}

func (q *Qdrant) SetVector(ctx context.Context, key string, vec []float32) error {
	if len(vec) == 0 {
		return nil
	}
	if _, err := q.collectionReady(ctx, true, len(vec)); err != nil {
		return err
	}

	wait := true
	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Wait:           &wait,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(PointID(key)),
			Vectors: qdrant.NewVectors(vec...),
			Payload: qdrant.NewValueMap(map[string]any{"cache_key": key}),
		}},
	})
	if err != nil {
		return fmt.Errorf("upsert point: %w", err)
	}
	return nil
}

func (q *Qdrant) Close() error {
	return q.client.Close()
}
