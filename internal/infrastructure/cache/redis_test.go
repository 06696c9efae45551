package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := &Redis{logger: zap.NewNop(), ttl: time.Minute}
	ctx := context.Background()

	if err := r.SetVector(ctx, "emb:m:abc", []float32{1, 2}); err != nil {
		t.Fatalf("SetVector: %v", err)
	}
	vec, ok, err := r.GetVector(ctx, "emb:m:abc")
	if err != nil || ok || vec != nil {
		t.Fatalf("expected miss, got %v %v %v", vec, ok, err)
	}
	n, err := r.DeleteByPattern(ctx, "emb:*")
	if err != nil || n != 0 {
		t.Fatalf("expected no-op delete, got %d %v", n, err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if _, ok, err := r.GetVector(context.Background(), "k"); ok || err != nil {
		t.Fatalf("expected miss on nil cache")
	}
}
