package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/application"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publishes(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "ranking_updates", zap.NewNop())

	evt := application.RankingCompleted{
		Type:       application.EventRankingCompleted,
		JobID:      uuid.New(),
		Ranked:     4,
		TopScore:   91.2,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.NotifyRankingCompleted(context.Background(), evt); err != nil {
		t.Fatalf("NotifyRankingCompleted: %v", err)
	}

	if ch.exchange != "ranking_updates" {
		t.Fatalf("unexpected exchange %q", ch.exchange)
	}
	if ch.key != "ranking.completed."+evt.JobID.String() {
		t.Fatalf("unexpected routing key %q", ch.key)
	}
	if ch.msg.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", ch.msg.ContentType)
	}
	var got application.RankingCompleted
	if err := json.Unmarshal(ch.msg.Body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.JobID != evt.JobID || got.TopScore != 91.2 {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestPublisher_PublishError(t *testing.T) {
	p := newPublisher(&fakeChannel{err: errors.New("channel closed")}, "x", zap.NewNop())
	if err := p.NotifyRankingCompleted(context.Background(), application.RankingCompleted{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPublisher_Closed(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "x", zap.NewNop())
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ch.closed {
		t.Fatalf("expected channel closed")
	}
	if err := p.NotifyRankingCompleted(context.Background(), application.RankingCompleted{}); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected ErrPublisherClosed, got %v", err)
	}
}
