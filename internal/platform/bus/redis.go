package bus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "evsops.changes."

// Redis is the multi-process broker. Each collection maps to one pub/sub
// channel; the message body is the changed document id.
type Redis struct {
	client *redis.Client
	logger *slog.Logger

	mu       sync.Mutex
	handlers map[string][]Handler
	cancels  []context.CancelFunc
}

// NewRedis connects a broker to the given Redis address. The caller owns the
// client lifecycle via Close.
func NewRedis(addr string, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{
		client:   client,
		logger:   logger,
		handlers: make(map[string][]Handler),
	}, nil
}

func (r *Redis) Publish(ctx context.Context, collection, id string) {
	if err := r.client.Publish(ctx, channelPrefix+collection, id).Err(); err != nil {
		// Change notification is advisory; readers recompute from the store.
		r.logger.WarnContext(ctx, "change publish failed",
			"collection", collection, "id", id, "error", err)
	}
}

func (r *Redis) Subscribe(collection string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	first := len(r.handlers[collection]) == 0
	r.handlers[collection] = append(r.handlers[collection], fn)
	if !first {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancels = append(r.cancels, cancel)
	sub := r.client.Subscribe(ctx, channelPrefix+collection)

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.mu.Lock()
				handlers := append([]Handler(nil), r.handlers[collection]...)
				r.mu.Unlock()
				for _, h := range handlers {
					h(msg.Payload)
				}
			}
		}
	}()
}

// Close stops all subscription loops and releases the client.
func (r *Redis) Close() error {
	r.mu.Lock()
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.mu.Unlock()
	return r.client.Close()
}
