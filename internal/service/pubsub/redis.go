package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

const (
	channelPrefix = "rate_changes:"
)

// RedisPubSub fans applied rate changes out to API instances, one channel per
// lease, so console clients watching a lease see changes applied anywhere in
// the fleet (including by the increase worker).
type RedisPubSub struct {
	client       *redis.Client
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // Map of lease ID to subscriber
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, logger *logger.Logger) *RedisPubSub {
	return &RedisPubSub{
		client:      client,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

func (ps *RedisPubSub) getChannelName(leaseID string) string {
	return channelPrefix + leaseID
}

// Publish publishes an applied rate change to the lease's Redis channel
func (ps *RedisPubSub) Publish(ctx context.Context, leaseID string, entry *dto.RateHistoryResponse) error {
	message, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal rate change: %w", err)
	}

	channel := ps.getChannelName(leaseID)
	if err := ps.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}

	return nil
}

// Subscribe subscribes to applied rate changes for a specific lease
func (ps *RedisPubSub) Subscribe(ctx context.Context, leaseID string, callback func(*dto.RateHistoryResponse)) error {
	channel := ps.getChannelName(leaseID)

	ps.subscriberMu.RLock()
	_, exists := ps.subscribers[leaseID]
	ps.subscriberMu.RUnlock()
	if exists {
		ps.logger.Infof("Already subscribed to lease channel: %s", channel)
		return nil
	}

	pubsub := ps.client.Subscribe(ctx, channel)

	ps.subscriberMu.Lock()
	ps.subscribers[leaseID] = pubsub
	ps.subscriberMu.Unlock()

	go func() {
		defer func() {
			ps.logger.Infof("Closing subscription for lease channel: %s", channel)
			pubsub.Close()
			ps.subscriberMu.Lock()
			delete(ps.subscribers, leaseID)
			ps.subscriberMu.Unlock()
		}()

		ch := pubsub.Channel()
		for {
			select {
			case msg := <-ch:
				var entry dto.RateHistoryResponse
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					ps.logger.Errorf("Failed to unmarshal rate change from channel %s: %v", channel, err)
					continue
				}
				callback(&entry)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscribed to lease channel: %s", channel)
	return nil
}

// Unsubscribe removes subscription for a lease
func (ps *RedisPubSub) Unsubscribe(leaseID string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[leaseID]; exists {
		pubsub.Close()
		delete(ps.subscribers, leaseID)
		ps.logger.Infof("Unsubscribed from lease channel: %s", ps.getChannelName(leaseID))
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for leaseID, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, leaseID)
		ps.logger.Infof("Closed subscription for lease channel: %s", ps.getChannelName(leaseID))
	}
}
