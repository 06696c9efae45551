// Package insight owns the market dataset: loading it once, answering lookups and caching the
// most recent answer.
package insight

import (
	"context"
	"errors"
	"strings"
	"sync"

	domain "talent-match/internal/domain/insight"
	"talent-match/internal/logger"
	"talent-match/internal/pkg/slot"

	"go.uber.org/zap"
)

var ErrDatasetUnavailable = errors.New("market dataset unavailable")

type lookupKey struct {
	title    string
	industry string
}

type Provider struct {
	src    Opener
	path   string
	logger *zap.Logger

	once    sync.Once
	mu      sync.RWMutex
	dataset *domain.Dataset
	loadErr error

	last slot.Slot[lookupKey, *domain.MarketInsight]
}

func NewProvider(src Opener, path string, log *zap.Logger) *Provider {
	return &Provider{src: src, path: strings.TrimSpace(path), logger: logger.Named(log, "insight")}
}

func (p *Provider) Initialize(ctx context.Context) error {
	p.once.Do(func() {
		if p.src == nil || p.path == "" {
			p.setLoaded(nil, ErrDatasetUnavailable)
			p.logger.Warn("no market dataset configured, insights disabled")
			return
		}
		ds, err := Load(ctx, p.src, p.path)
		if err != nil {
			p.setLoaded(nil, errors.Join(ErrDatasetUnavailable, err))
			p.logger.Warn("market dataset load failed", zap.String("path", p.path), zap.Error(err))
			return
		}
		p.setLoaded(ds, nil)
		p.logger.Info("market dataset loaded", zap.String("path", p.path), zap.Int("rows", len(ds.Records)))
	})

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadErr
}

func (p *Provider) setLoaded(ds *domain.Dataset, err error) {
	p.mu.Lock()
	p.dataset = ds
	p.loadErr = err
	p.mu.Unlock()
}

// Lookup returns the insight for a job title, or nil when the dataset is unavailable or has
// nothing for the title.
func (p *Provider) Lookup(ctx context.Context, title, industry string) *domain.MarketInsight {
	if err := p.Initialize(ctx); err != nil {
		return nil
	}
	key := lookupKey{title: strings.TrimSpace(title), industry: strings.ToLower(strings.TrimSpace(industry))}
	if key.title == "" {
		return nil
	}

	return p.last.GetOrCompute(key, func() *domain.MarketInsight {
		p.mu.RLock()
		ds := p.dataset
		p.mu.RUnlock()
		return ds.Lookup(key.title, key.industry)
	})
}

func (p *Provider) Shutdown() {
	p.once.Do(func() {})
	p.setLoaded(nil, ErrDatasetUnavailable)
	p.last.Invalidate()
}
