package pubsub

import (
	"context"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

// Broadcaster is a publish-only adapter for processes that apply rate changes
// but hold no websocket clients of their own, like the increase worker. API
// instances subscribed to the lease's channel fan the change out from there.
type Broadcaster struct {
	pubsub *RedisPubSub
	logger *logger.Logger
}

func NewBroadcaster(pubsub *RedisPubSub, logger *logger.Logger) *Broadcaster {
	return &Broadcaster{
		pubsub: pubsub,
		logger: logger,
	}
}

func (b *Broadcaster) BroadcastRateChange(leaseID string, entry *dto.RateHistoryResponse) {
	if err := b.pubsub.Publish(context.Background(), leaseID, entry); err != nil {
		b.logger.Errorf("Failed to publish rate change for lease %s: %v", leaseID, err)
	}
}
