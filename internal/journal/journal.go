// internal/journal/journal.go
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list the journal pushes records onto.
var DefaultQueueName = "uno_actions"

// ActionRecord is one engine action as seen by external consumers.
type ActionRecord struct {
	RoomID    string                 `json:"room_id"`
	ActorID   uuid.UUID              `json:"actor_id"`
	Action    string                 `json:"action"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Journal pushes action records to a Redis queue, best effort. A nil Journal
// is valid and drops everything, so rooms work without Redis configured.
type Journal struct {
	rdb   *redis.Client
	queue string
}

// Connect builds a Journal from the environment:
//   - REDIS_ADDR (unset disables the journal entirely)
//   - REDIS_DB (optional, default 0)
//   - JOURNAL_QUEUE_NAME (optional)
func Connect() (*Journal, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   getEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Journal{rdb: rdb, queue: getEnv("JOURNAL_QUEUE_NAME", DefaultQueueName)}, nil
}

// Record serializes the given record and pushes it onto the queue. Errors are
// returned for logging but never affect the action that produced the record.
func (j *Journal) Record(ctx context.Context, rec ActionRecord) error {
	if j == nil {
		return nil
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal ActionRecord: %w", err)
	}
	if err := j.rdb.RPush(ctx, j.queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", j.queue, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
