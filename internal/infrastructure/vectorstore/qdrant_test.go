package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

type fakeStore struct {
	exists  bool
	created *qdrant.CreateCollection
	points  map[string][]float32
	getErr  error
}

func newFakeStore() *fakeStore { return &fakeStore{points: map[string][]float32{}} }

func (f *fakeStore) CollectionExists(context.Context, string) (bool, error) { return f.exists, nil }

func (f *fakeStore) CreateCollection(_ context.Context, req *qdrant.CreateCollection) error {
	f.created = req
	f.exists = true
	return nil
}

func (f *fakeStore) Upsert(_ context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	for _, p := range req.Points {
		f.points[p.GetId().GetUuid()] = p.GetVectors().GetVector().GetDense().GetData()
	}
	return &qdrant.UpdateResult{}, nil
}

func (f *fakeStore) Get(_ context.Context, req *qdrant.GetPoints) ([]*qdrant.RetrievedPoint, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []*qdrant.RetrievedPoint
	for _, id := range req.Ids {
		data, ok := f.points[id.GetUuid()]
		if !ok {
			continue
		}
		out = append(out, &qdrant.RetrievedPoint{
			Id: id,
			Vectors: &qdrant.VectorsOutput{
				VectorsOptions: &qdrant.VectorsOutput_Vector{
					Vector: &qdrant.VectorOutput{Data: data},
				},
			},
		})
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

func TestQdrant_MissingCollectionIsMiss(t *testing.T) {
	store := newFakeStore()
	q := newQdrant(store, "emb", zap.NewNop())

	vec, ok, err := q.GetVector(context.Background(), "emb:m:1")
	if err != nil || ok || vec != nil {
		t.Fatalf("expected miss, got %v %v %v", vec, ok, err)
	}
	if store.created != nil {
		t.Fatalf("read must not create the collection")
	}
}

func TestQdrant_SetCreatesCollectionThenGet(t *testing.T) {
	store := newFakeStore()
	q := newQdrant(store, "emb", zap.NewNop())

	if err := q.SetVector(context.Background(), "emb:m:1", []float32{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("SetVector: %v", err)
	}
	if store.created == nil || store.created.GetVectorsConfig().GetParams().GetSize() != 3 {
		t.Fatalf("expected collection of size 3, got %+v", store.created)
	}

	vec, ok, err := q.GetVector(context.Background(), "emb:m:1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got %v %v", ok, err)
	}
	if len(vec) != 3 || vec[2] != 0.3 {
		t.Fatalf("unexpected vector %v", vec)
	}
}

func TestQdrant_GetError(t *testing.T) {
	store := newFakeStore()
	store.exists = true
	store.getErr = errors.New("unavailable")
	q := newQdrant(store, "emb", zap.NewNop())

	if _, _, err := q.GetVector(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPointID_Stable(t *testing.T) {
	if PointID("a") != PointID("a") {
		t.Fatalf("expected stable ids")
	}
	if PointID("a") == PointID("b") {
		t.Fatalf("expected distinct ids")
	}
}
