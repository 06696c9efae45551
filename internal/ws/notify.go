package ws

import (
	"context"
	"encoding/json"
	"errors"

	"talent-match/internal/domain/application"
)

var ErrBroadcastDropped = errors.New("ws broadcast dropped")

// NotifyRankingCompleted delivers the event to the job owner's open connections.
func (h *Hub) NotifyRankingCompleted(_ context.Context, evt application.RankingCompleted) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if !h.Send(evt.RecruiterID, b) {
		return ErrBroadcastDropped
	}
	return nil
}
