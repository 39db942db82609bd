package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// SnapshotRepository fans game views out to renderers over Redis pub/sub.
// Nothing is stored: a renderer that is not subscribed misses the snapshot.
type SnapshotRepository interface {
	Publish(ctx context.Context, view *entity.View) error
	Subscribe(ctx context.Context, sessionID string) *redis.PubSub
}

type redisSnapshot struct {
	client  *redis.Client
	channel string
}

func NewSnapshotRepository(client *redis.Client, channel string) SnapshotRepository {
	return &redisSnapshot{
		client:  client,
		channel: channel,
	}
}

// Publish - sends the view to the session channel and to the shared channel.
func (that *redisSnapshot) Publish(ctx context.Context, view *entity.View) error {
	viewJSON, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("could not marshal view: %w", err)
	}

	pipe := that.client.Pipeline()
	pipe.Publish(ctx, that.sessionChannel(view.SessionID), viewJSON)
	pipe.Publish(ctx, that.channel, viewJSON)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish view: %w", err)
	}

	return nil
}

// Subscribe - subscribes to one session, or to every session when sessionID is empty.
func (that *redisSnapshot) Subscribe(ctx context.Context, sessionID string) *redis.PubSub {
	if sessionID == "" {
		return that.client.Subscribe(ctx, that.channel)
	}

	return that.client.Subscribe(ctx, that.sessionChannel(sessionID))
}

func (that *redisSnapshot) sessionChannel(sessionID string) string {
	return that.channel + ":" + sessionID
}

// DecodeSnapshot - decodes a message received from a snapshot channel.
func DecodeSnapshot(msg *redis.Message) (*entity.View, error) {
	var view entity.View
	if err := json.Unmarshal([]byte(msg.Payload), &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view: %w", err)
	}

	return &view, nil
}
