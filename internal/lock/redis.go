package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	customError "github.com/segyhp/pledge-engine/pkg/errors"
)

// releaseScript deletes the key only if it still carries our token, so an
// expired lock taken over by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every process talking to the same redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// NewRedis returns a lock that expires after ttl and gives up acquiring after wait.
func NewRedis(client *redis.Client, ttl, wait time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
		logger: slog.Default(),
	}
}

// WithLogger sets where failed releases are reported. A nil logger is ignored.
func (r *Redis) WithLogger(logger *slog.Logger) *Redis {
	if logger != nil {
		r.logger = logger
	}
	return r
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(r.wait)

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, customError.ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retry):
		}
	}

	return func() {
		// The caller's ctx may already be cancelled; release regardless.
		if err := releaseScript.Run(context.Background(), r.client, []string{key}, token).Err(); err != nil {
			r.logger.Error("release pledge lock", "key", key, "ttl", r.ttl, "error", err)
		}
	}, nil
}
