package buffer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/policydesk/server/internal/logger"
)

// handles Redis-backed buffering of chat transcripts
type ChatBuffer struct {
	client *redis.Client
}

// creates a new chat buffer with Redis connection
func NewChatBuffer(redisURL string) (*ChatBuffer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis")

	return &ChatBuffer{client: client}, nil
}

// closes the Redis connection
func (b *ChatBuffer) Close() error {
	return b.client.Close()
}

// appends a message to the session's transcript buffer
func (b *ChatBuffer) AddMessage(ctx context.Context, msg *BufferedMessage) error {
	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := b.client.Pipeline()

	// append message to list
	msgKey := fmt.Sprintf(keySessionMessages, msg.SessionID)
	pipe.RPush(ctx, msgKey, msgJSON)

	// mark session as dirty
	pipe.SAdd(ctx, keyDirtySessionsMessages, msg.SessionID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add message to redis: %w", err)
	}

	return nil
}

// returns all session IDs with unflushed messages
func (b *ChatBuffer) GetDirtyMessageSessions(ctx context.Context) ([]string, error) {
	return b.client.SMembers(ctx, keyDirtySessionsMessages).Result()
}

// retrieves and clears all messages for a session
// returns the messages and removes the session from the dirty set
func (b *ChatBuffer) FlushMessages(ctx context.Context, sessionID string) ([]BufferedMessage, error) {
	msgKey := fmt.Sprintf(keySessionMessages, sessionID)

	// get all messages
	msgJSONs, err := b.client.LRange(ctx, msgKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages for flush: %w", err)
	}

	if len(msgJSONs) == 0 {
		b.client.SRem(ctx, keyDirtySessionsMessages, sessionID)
		return nil, nil
	}

	// parse messages
	messages := make([]BufferedMessage, 0, len(msgJSONs))
	for _, msgJSON := range msgJSONs {
		var msg BufferedMessage
		if err := json.Unmarshal([]byte(msgJSON), &msg); err != nil {
			logger.ErrorErr(err, "failed to unmarshal buffered message", "session_id", sessionID)
			continue
		}
		messages = append(messages, msg)
	}

	// clear the list and remove from dirty set
	pipe := b.client.Pipeline()
	pipe.Del(ctx, msgKey)
	pipe.SRem(ctx, keyDirtySessionsMessages, sessionID)
	pipe.Exec(ctx) //nolint:errcheck,gosec // best-effort cleanup, messages already retrieved

	return messages, nil
}

// removes all buffered data for a session (call after session ends)
func (b *ChatBuffer) ClearSession(ctx context.Context, sessionID string) error {
	msgKey := fmt.Sprintf(keySessionMessages, sessionID)

	pipe := b.client.Pipeline()
	pipe.Del(ctx, msgKey)
	pipe.SRem(ctx, keyDirtySessionsMessages, sessionID)

	_, err := pipe.Exec(ctx)
	return err
}
