package buffer

import (
	"context"
	"sync"
	"time"

	"codeberg.org/policydesk/server/internal/logger"
	"codeberg.org/policydesk/server/internal/storage"
)

// handles periodic flushing of buffered transcripts from Redis to Postgres
type Flusher struct {
	buffer   *ChatBuffer
	store    *storage.Client
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// creates a new flusher that periodically flushes Redis to Postgres
func NewFlusher(buffer *ChatBuffer, store *storage.Client, interval time.Duration) *Flusher {
	return &Flusher{
		buffer:   buffer,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// begins the background flush loop
func (f *Flusher) Start() {
	f.wg.Add(1)
	go f.run()
	logger.Info("buffer flusher started", "interval", f.interval.String())
}

// gracefully stops the flusher and flushes any remaining data
func (f *Flusher) Stop() {
	close(f.stopCh)
	f.wg.Wait()
	logger.Info("buffer flusher stopped")
}

func (f *Flusher) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.flush()
		case <-f.stopCh:
			// final flush before stopping
			logger.Info("flushing remaining buffer data before shutdown")
			f.flush()
			return
		}
	}
}

func (f *Flusher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessionIDs, err := f.buffer.GetDirtyMessageSessions(ctx)
	if err != nil {
		logger.ErrorErr(err, "failed to get dirty message sessions")
		return
	}

	if len(sessionIDs) == 0 {
		return
	}

	logger.Debug("flushing messages for sessions", "count", len(sessionIDs))

	for _, sessionID := range sessionIDs {
		f.flushSessionMessages(ctx, sessionID)
	}
}

func (f *Flusher) flushSessionMessages(ctx context.Context, sessionID string) {
	messages, err := f.buffer.FlushMessages(ctx, sessionID)
	if err != nil {
		logger.ErrorErr(err, "failed to flush messages from buffer", "session_id", sessionID)
		return
	}

	if len(messages) == 0 {
		return
	}

	records := make([]storage.Message, 0, len(messages))
	for _, msg := range messages {
		records = append(records, storage.Message{
			SessionID: msg.SessionID,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	if err := f.store.InsertMessages(ctx, records); err != nil {
		logger.ErrorErr(err, "failed to persist messages to postgres", "session_id", sessionID)
		// re-add failed messages so we retry next flush
		for i := range messages {
			f.buffer.AddMessage(ctx, &messages[i]) //nolint:errcheck,gosec // best-effort retry
		}
		return
	}

	logger.Debug("flushed messages to postgres", "session_id", sessionID, "count", len(records))
}

// immediately flushes all buffered messages for a specific session
func (f *Flusher) FlushSession(ctx context.Context, sessionID string) error {
	messages, err := f.buffer.FlushMessages(ctx, sessionID)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}

	records := make([]storage.Message, 0, len(messages))
	for _, msg := range messages {
		records = append(records, storage.Message{
			SessionID: msg.SessionID,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	return f.store.InsertMessages(ctx, records)
}
