// Package zaplog is an EventPublisher that writes events to the structured
// log instead of a broker. Used when no Kafka brokers are configured; the
// audit trail then lives in the log stream.
package zaplog

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"household-ledger/internal/interfaces"
)

type Publisher struct {
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger) *Publisher {
	return &Publisher{logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.logger.Info("audit event",
		zap.String("topic", topic),
		zap.ByteString("payload", data),
	)
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
