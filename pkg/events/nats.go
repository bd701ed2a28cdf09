// Package events publishes committed bridge events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/chainsafe/burnmint-bridge/internal/metrics"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

const (
	eventSwap   = "swap"
	eventRedeem = "redeem"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher publishes SwapInitialized and Redeemed events as JSON on
// <prefix>.<bridge id>.swap and <prefix>.<bridge id>.redeem.
type Publisher struct {
	conn   Conn
	prefix string
	logger *zap.Logger
}

var _ bridge.Publisher = (*Publisher)(nil)

// NewPublisher creates a publisher over conn.
func NewPublisher(conn Conn, prefix string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{conn: conn, prefix: prefix, logger: logger}
}

// Connect dials the NATS server with reconnects enabled.
func Connect(url string, logger *zap.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("bridge-node"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}

// Subject returns the subject events of eventType on bridgeID are published on.
func (p *Publisher) Subject(bridgeID, eventType string) string {
	return fmt.Sprintf("%s.%s.%s", p.prefix, bridgeID, eventType)
}

// PublishSwap publishes a committed swap.
func (p *Publisher) PublishSwap(_ context.Context, ev *bridge.SwapInitialized) error {
	return p.publish(ev.BridgeID, eventSwap, bridge.NewSwapEvent(ev))
}

// PublishRedeem publishes a committed redeem.
func (p *Publisher) PublishRedeem(_ context.Context, ev *bridge.Redeemed) error {
	return p.publish(ev.BridgeID, eventRedeem, bridge.NewRedeemEvent(ev))
}

func (p *Publisher) publish(bridgeID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	subject := p.Subject(bridgeID, eventType)
	if err := p.conn.Publish(subject, data); err != nil {
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	metrics.EventsPublished.WithLabelValues(eventType, "success").Inc()
	p.logger.Debug("Event published", zap.String("subject", subject), zap.Int("bytes", len(data)))
	return nil
}
