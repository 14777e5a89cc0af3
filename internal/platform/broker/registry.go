package broker

import (
	"context"
	"errors"
	"log/slog"

	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/modules/attendees/infrastructure"
)

// StartKafkaConsumers runs one consumer per registered topic until ctx is done.
// It does nothing when no brokers are configured.
func StartKafkaConsumers(ctx context.Context, registry *infrastructure.HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Info("kafka disabled: no brokers configured")
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			slog.Info("kafka consumer started", slog.String("topic", tp), slog.String("groupId", groupID))
			err := consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("kafka consumer stopped", slog.String("topic", tp), slog.Any("error", err))
			}
		}(topic)
	}
}
