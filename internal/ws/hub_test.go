package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talent-match/internal/domain/application"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
		return nil
	}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, h.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_RoutesByRecruiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	owner := uuid.New()
	a := NewClient(h, nil, owner)
	b := NewClient(h, nil, uuid.New())
	h.Register(a)
	h.Register(b)
	waitForClients(t, h, 2)

	evt := application.RankingCompleted{Type: application.EventRankingCompleted, JobID: uuid.New(), RecruiterID: owner, Ranked: 3, TopScore: 88.5}
	if err := h.NotifyRankingCompleted(ctx, evt); err != nil {
		t.Fatalf("NotifyRankingCompleted: %v", err)
	}

	var got application.RankingCompleted
	if err := json.Unmarshal(receive(t, a), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.JobID != evt.JobID || got.Ranked != 3 {
		t.Fatalf("unexpected event %+v", got)
	}

	select {
	case msg := <-b.send:
		t.Fatalf("other recruiter received %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	c := NewClient(h, nil, uuid.New())
	h.Register(c)
	waitForClients(t, h, 1)
	h.Unregister(c)
	waitForClients(t, h, 0)

	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel closed")
	}
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	if h.Send(uuid.Nil, []byte("x")) {
		t.Fatalf("nil hub must not accept messages")
	}
	if h.ClientCount() != 0 {
		t.Fatalf("nil hub has no clients")
	}
}
