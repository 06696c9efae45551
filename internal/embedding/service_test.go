package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

type fakeModel struct {
	mu     sync.Mutex
	calls  int
	texts  [][]string
	err    error
	closed bool
}

func (m *fakeModel) Name() string { return "fake-model" }

func (m *fakeModel) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.texts = append(m.texts, append([]string(nil), texts...))
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]float32
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]float32{}} }

func (c *mapCache) GetVector(_ context.Context, key string) ([]float32, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) SetVector(_ context.Context, key string, vec []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = vec
	return nil
}

func TestInitialize_LoadsOnceUnderConcurrency(t *testing.T) {
	var loads int32
	model := &fakeModel{}
	svc := NewService(func(context.Context) (Model, error) {
		atomic.AddInt32(&loads, 1)
		return model, nil
	}, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Initialize(context.Background()); err != nil {
				t.Errorf("Initialize: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected 1 load, got %d", got)
	}
	if !svc.Ready(context.Background()) {
		t.Fatalf("expected service ready")
	}
	if svc.ModelName() != "fake-model" {
		t.Fatalf("unexpected model name %q", svc.ModelName())
	}
}

func TestInitialize_FailureIsSticky(t *testing.T) {
	var loads int32
	svc := NewService(func(context.Context) (Model, error) {
		atomic.AddInt32(&loads, 1)
		return nil, errors.New("boom")
	}, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		if err := svc.Initialize(context.Background()); !errors.Is(err, ErrModelUnavailable) {
			t.Fatalf("expected ErrModelUnavailable, got %v", err)
		}
	}
	if loads != 1 {
		t.Fatalf("expected a single load attempt, got %d", loads)
	}
	if _, err := svc.Encode(context.Background(), "hello"); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable from Encode, got %v", err)
	}
}

func TestInitialize_CancelledLoadRetries(t *testing.T) {
	var loads int32
	model := &fakeModel{}
	svc := NewService(func(ctx context.Context) (Model, error) {
		atomic.AddInt32(&loads, 1)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return model, nil
	}, nil, zap.NewNop())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Initialize(cancelled); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("expected retry to load, got %v", err)
	}
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := atomic.LoadInt32(&loads); got != 2 {
		t.Fatalf("expected 2 load attempts, got %d", got)
	}
}

func TestNilLoader_NotReady(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if svc.Ready(context.Background()) {
		t.Fatalf("expected not ready without a loader")
	}
}

func TestEncode_LazyLoad(t *testing.T) {
	model := &fakeModel{}
	svc := NewService(func(context.Context) (Model, error) { return model, nil }, nil, zap.NewNop())

	vec, err := svc.Encode(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(vec) != 2 || vec[0] != 3 {
		t.Fatalf("unexpected vector %v", vec)
	}
}

func TestEncodeBatch_SingleCallAndDedup(t *testing.T) {
	model := &fakeModel{}
	svc := NewService(func(context.Context) (Model, error) { return model, nil }, nil, zap.NewNop())

	vecs, err := svc.EncodeBatch(context.Background(), []string{"a", "bb", "a", "ccc"})
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	if len(vecs) != 4 {
		t.Fatalf("expected 4 vectors, got %d", len(vecs))
	}
	if vecs[0][0] != 1 || vecs[1][0] != 2 || vecs[2][0] != 1 || vecs[3][0] != 3 {
		t.Fatalf("vectors out of order: %v", vecs)
	}
	if model.calls != 1 {
		t.Fatalf("expected one model call, got %d", model.calls)
	}
	if len(model.texts[0]) != 3 {
		t.Fatalf("expected duplicate text to be embedded once, got %v", model.texts[0])
	}
}

func TestEncodeBatch_UsesCache(t *testing.T) {
	model := &fakeModel{}
	cache := newMapCache()
	svc := NewService(func(context.Context) (Model, error) { return model, nil }, cache, zap.NewNop())

	if _, err := svc.EncodeBatch(context.Background(), []string{"one", "two"}); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if _, err := svc.EncodeBatch(context.Background(), []string{"two", "one"}); err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("expected cached second batch, got %d model calls", model.calls)
	}

	if _, err := svc.EncodeBatch(context.Background(), []string{"one", "three"}); err != nil {
		t.Fatalf("third batch: %v", err)
	}
	if model.calls != 2 || len(model.texts[1]) != 1 || model.texts[1][0] != "three" {
		t.Fatalf("expected only the miss to be embedded, got %v", model.texts)
	}
}

func TestEncodeBatch_FailureFailsWholeBatch(t *testing.T) {
	model := &fakeModel{err: errors.New("quota")}
	svc := NewService(func(context.Context) (Model, error) { return model, nil }, nil, zap.NewNop())

	vecs, err := svc.EncodeBatch(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if vecs != nil {
		t.Fatalf("expected no partial result, got %v", vecs)
	}
}

func TestEncodeBatch_Empty(t *testing.T) {
	svc := NewService(func(context.Context) (Model, error) { return &fakeModel{}, nil }, nil, zap.NewNop())
	if _, err := svc.EncodeBatch(context.Background(), nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestShutdown_ReleasesModel(t *testing.T) {
	model := &fakeModel{}
	svc := NewService(func(context.Context) (Model, error) { return model, nil }, nil, zap.NewNop())
	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := svc.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !model.closed {
		t.Fatalf("expected model closed")
	}
	if svc.Ready(context.Background()) {
		t.Fatalf("expected not ready after shutdown")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("Model-A", "text")
	b := CacheKey("model-a", "text")
	c := CacheKey("model-a", "other")
	if a != b {
		t.Fatalf("expected model name to be case-insensitive")
	}
	if a == c {
		t.Fatalf("expected different texts to produce different keys")
	}
	if len(a) != len("emb:model-a:")+64 {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 3); got != "hél" {
		t.Fatalf("got %q", got)
	}
	if got := truncateRunes("hi", 10); got != "hi" {
		t.Fatalf("got %q", got)
	}
}
