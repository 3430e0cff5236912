package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shorturl-service/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumerGroup subscribes store to both analytics topics.
func NewConsumerGroup(subscriber message.Subscriber, store Store, logger *zap.Logger) *messaging.ConsumerGroup {
	group := messaging.NewConsumerGroup(subscriber, logger)

	group.Add(messaging.NewConsumer[URLCreatedEvent](subscriber, TopicURLCreated, store.SaveURLCreated, logger))
	group.Add(messaging.NewConsumer[URLAccessedEvent](subscriber, TopicURLAccessed, store.SaveURLAccessed, logger))

	return group
}
