package ingest

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PayloadHandler consumes one raw sensor payload.
type PayloadHandler interface {
	Process(ctx context.Context, payload []byte) error
}

// Subscriber receives sensor payloads from a redis pub/sub channel and
// feeds them to the pipeline one at a time, preserving delivery order.
// Reconnection of the underlying subscription is the client's concern.
type Subscriber struct {
	client  *redis.Client
	channel string
	handler PayloadHandler
	logger  *zap.Logger
}

// NewSubscriber builds the inbound consumer.
func NewSubscriber(client *redis.Client, channel string, handler PayloadHandler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: channel,
		handler: handler,
		logger:  logger,
	}
}

// Run consumes messages until ctx is cancelled. Handler failures are
// already logged at the pipeline boundary and never stop consumption.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	s.logger.Info("subscribed to sensor channel", zap.String("channel", s.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			_ = s.handler.Process(ctx, []byte(msg.Payload))
		}
	}
}
