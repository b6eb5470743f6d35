package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// EventChannelPrefix is followed by the owner id: smeta:events:{owner_id}.
const EventChannelPrefix = "smeta:events:"

// Event tells other sessions of an owner that a project changed remotely.
type Event struct {
	Kind         Kind   `json:"kind"`
	OwnerID      string `json:"owner_id"`
	ProjectID    string `json:"project_id"`
	LastModified int64  `json:"last_modified,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher sends events over Redis Pub/Sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.client.Publish(ctx, EventChannel(ev.OwnerID), data).Err()
}

// Subscribe listens for the owner's events until ctx ends.
func (p *RedisPublisher) Subscribe(ctx context.Context, ownerID string) (<-chan Event, error) {
	sub := p.client.Subscribe(ctx, EventChannel(ownerID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func EventChannel(ownerID string) string {
	return EventChannelPrefix + ownerID
}
