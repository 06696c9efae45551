// Package embedding owns the text-embedding model for the life of the process.
//
// The model is loaded at most once, either eagerly through Initialize or lazily on the first
// Encode call. Concurrent first callers wait on the same load. Vectors are looked up in an
// optional VectorCache before the model is called.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"talent-match/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrModelUnavailable = errors.New("embedding model unavailable")
	ErrEmptyBatch       = errors.New("empty embedding batch")
)

type Model interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

type Loader func(ctx context.Context) (Model, error)

type VectorCache interface {
	GetVector(ctx context.Context, key string) ([]float32, bool, error)
	SetVector(ctx context.Context, key string, vec []float32) error
}

// Encoder is what the rankers depend on.
type Encoder interface {
	Ready(ctx context.Context) bool
	Encode(ctx context.Context, text string) ([]float32, error)
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Service struct {
	loader Loader
	cache  VectorCache
	logger *zap.Logger

	loadMu  sync.Mutex
	loaded  atomic.Bool
	mu      sync.RWMutex
	model   Model
	loadErr error

	group singleflight.Group
}

func NewService(loader Loader, cache VectorCache, log *zap.Logger) *Service {
	return &Service{loader: loader, cache: cache, logger: logger.Named(log, "embedding")}
}

// Initialize loads the model. Concurrent callers wait on the same load. The first load that
// runs to completion decides the outcome for the life of the service, failures included. A
// load abandoned because ctx ended is not remembered, so the next caller tries again.
func (s *Service) Initialize(ctx context.Context) error {
	if s.loaded.Load() {
		return s.loadError()
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.loaded.Load() {
		return s.loadError()
	}

	if s.loader == nil {
		s.finishLoad(nil, ErrModelUnavailable)
		s.logger.Warn("no embedding model configured, AI matching disabled")
		return ErrModelUnavailable
	}
	m, err := s.loader(ctx)
	if err == nil && m == nil {
		err = ErrModelUnavailable
	}
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		if ctx.Err() != nil {
			s.logger.Warn("embedding model load interrupted", zap.Error(err))
			return wrapped
		}
		s.finishLoad(nil, wrapped)
		s.logger.Error("embedding model load failed", zap.Error(err))
		return wrapped
	}
	s.finishLoad(m, nil)
	s.logger.Info("embedding model loaded", zap.String(logger.FieldModel, m.Name()))
	return nil
}

func (s *Service) finishLoad(m Model, err error) {
	s.setLoaded(m, err)
	s.loaded.Store(true)
}

func (s *Service) loadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Service) setLoaded(m Model, err error) {
	s.mu.Lock()
	s.model = m
	s.loadErr = err
	s.mu.Unlock()
}

func (s *Service) Ready(ctx context.Context) bool {
	_, err := s.current(ctx)
	return err == nil
}

func (s *Service) ModelName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return ""
	}
	return s.model.Name()
}

// Shutdown releases the model. Encode calls after Shutdown fail with ErrModelUnavailable.
func (s *Service) Shutdown() error {
	s.loadMu.Lock()
	s.loaded.Store(true)
	s.loadMu.Unlock()

	s.mu.Lock()
	m := s.model
	s.model = nil
	s.loadErr = ErrModelUnavailable
	s.mu.Unlock()

	if m == nil {
		return nil
	}
	return m.Close()
}

func (s *Service) current(ctx context.Context) (Model, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return nil, ErrModelUnavailable
	}
	return s.model, nil
}

func (s *Service) Encode(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EncodeBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EncodeBatch embeds every text in one model call for the texts not found in the cache.
// The whole batch fails if the model call fails.
func (s *Service) EncodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	m, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	keys := make([]string, len(texts))
	pending := make(map[string][]int)
	order := make([]string, 0)

	for i, t := range texts {
		keys[i] = CacheKey(m.Name(), t)
		if vec, ok := s.cached(ctx, keys[i]); ok {
			out[i] = vec
			continue
		}
		if _, ok := pending[keys[i]]; !ok {
			order = append(order, keys[i])
		}
		pending[keys[i]] = append(pending[keys[i]], i)
	}
	if len(order) == 0 {
		return out, nil
	}

	missTexts := make([]string, 0, len(order))
	for _, k := range order {
		missTexts = append(missTexts, texts[pending[k][0]])
	}

	res, err, _ := s.group.Do(batchKey(order), func() (interface{}, error) {
		vecs, err := m.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vecs) != len(missTexts) {
			return nil, fmt.Errorf("embedding model returned %d vectors for %d texts", len(vecs), len(missTexts))
		}
		return vecs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}

	vecs := res.([][]float32)
	for j, k := range order {
		for _, i := range pending[k] {
			out[i] = vecs[j]
		}
		s.store(ctx, k, vecs[j])
	}
	return out, nil
}

func (s *Service) cached(ctx context.Context, key string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}
	vec, ok, err := s.cache.GetVector(ctx, key)
	if err != nil {
		s.logger.Debug("vector cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func (s *Service) store(ctx context.Context, key string, vec []float32) {
	if s.cache == nil || len(vec) == 0 {
		return
	}
	if err := s.cache.SetVector(ctx, key, vec); err != nil {
		s.logger.Debug("vector cache write failed", zap.Error(err))
	}
}

// CacheKey derives the cache key of a text for a given model.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "emb:" + strings.ToLower(strings.TrimSpace(model)) + ":" + hex.EncodeToString(sum[:])
}

func batchKey(keys []string) string {
	if len(keys) == 1 {
		return keys[0]
	}
	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return "batch:" + hex.EncodeToString(h.Sum(nil))
}
