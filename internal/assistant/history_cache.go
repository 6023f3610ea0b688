package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyTTL = 24 * time.Hour

// CachedMessage is one exchange of a session kept hot in Redis so
// repeat session opens skip the database.
type CachedMessage struct {
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Timestamp   time.Time `json:"timestamp"`
}

type HistoryCache struct {
	redis *redis.Client
}

func NewHistoryCache(client *redis.Client) *HistoryCache {
	return &HistoryCache{redis: client}
}

func (c *HistoryCache) Save(ctx context.Context, sessionID string, history []CachedMessage) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("assistant: failed to marshal history: %w", err)
	}
	if err := c.redis.Set(ctx, historyKey(sessionID), data, historyTTL).Err(); err != nil {
		return fmt.Errorf("assistant: failed to persist history: %w", err)
	}
	return nil
}

// ErrHistoryMiss signals that the session is not cached; the caller
// falls back to the database.
var ErrHistoryMiss = errors.New("assistant: history not cached")

func (c *HistoryCache) Load(ctx context.Context, sessionID string) ([]CachedMessage, error) {
	data, err := c.redis.Get(ctx, historyKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrHistoryMiss
		}
		return nil, fmt.Errorf("assistant: failed to load history: %w", err)
	}

	var history []CachedMessage
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("assistant: failed to decode history: %w", err)
	}
	return history, nil
}

func (c *HistoryCache) Append(ctx context.Context, sessionID string, msg CachedMessage) error {
	history, err := c.Load(ctx, sessionID)
	if err != nil && err != ErrHistoryMiss {
		return err
	}
	return c.Save(ctx, sessionID, append(history, msg))
}

func (c *HistoryCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.redis.Del(ctx, historyKey(sessionID)).Err()
}

func historyKey(sessionID string) string {
	return fmt.Sprintf("assistant:history:%s", sessionID)
}
