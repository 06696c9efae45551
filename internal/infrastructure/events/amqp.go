// Package events publishes domain events to a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"talent-match/internal/config"
	"talent-match/internal/domain/application"
	"talent-match/internal/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var ErrPublisherClosed = errors.New("amqp publisher closed")

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *zap.Logger

	mu sync.Mutex
	ch channel
}

func NewPublisher(cfg config.AMQPConfig, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	p := newPublisher(ch, cfg.Exchange, log)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, log *zap.Logger) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, logger: logger.Named(log, "events")}
}

// RoutingKey is "ranking.completed.<job id>".
func RoutingKey(evt application.RankingCompleted) string {
	return application.EventRankingCompleted + "." + evt.JobID.String()
}

func (p *Publisher) NotifyRankingCompleted(ctx context.Context, evt application.RankingCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return ErrPublisherClosed
	}

	err = p.ch.Publish(p.exchange, RoutingKey(evt), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.OccurredAt,
		Type:         evt.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", evt.Type, err)
	}
	p.logger.Debug("event published", zap.String("type", evt.Type), zap.String(logger.FieldJobID, evt.JobID.String()))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	ch := p.ch
	p.ch = nil
	p.mu.Unlock()

	var firstErr error
	if ch != nil {
		firstErr = ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
