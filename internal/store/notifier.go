package store

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/editfolio/editfolio-backend/pkg/logger"
)

// Notifier signals "collection changed" events to subscribed listeners.
// MongoStore publishes after every successful write and re-reads the
// collection when a signal arrives; the notifier itself carries no payload.
type Notifier interface {
	Publish(collection string)
	Subscribe(collection string, fn func()) func()
}

// LocalNotifier is an in-process notifier, sufficient for a single
// instance.
type LocalNotifier struct {
	mu      sync.Mutex
	subs    map[string]map[int]func()
	nextKey int
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[int]func())}
}

func (n *LocalNotifier) Publish(collection string) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs[collection]))
	for _, fn := range n.subs[collection] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (n *LocalNotifier) Subscribe(collection string, fn func()) func() {
	n.mu.Lock()
	if n.subs[collection] == nil {
		n.subs[collection] = make(map[int]func())
	}
	key := n.nextKey
	n.nextKey++
	n.subs[collection][key] = fn
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[collection], key)
			n.mu.Unlock()
		})
	}
}

// RedisNotifier bridges change signals across instances over Redis pub/sub.
// Each instance receives its own publishes back from Redis, so delivery is
// uniform whether the write happened locally or elsewhere.
type RedisNotifier struct {
	client *redis.Client
	prefix string
	local  *LocalNotifier
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewRedisNotifier starts the pub/sub consumer loop. Prefix namespaces the
// channels so several deployments can share one Redis. Close releases the
// consumer.
func NewRedisNotifier(client *redis.Client, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = "change:"
	}
	n := &RedisNotifier{
		client: client,
		prefix: prefix,
		local:  NewLocalNotifier(),
		done:   make(chan struct{}),
	}
	n.pubsub = client.PSubscribe(context.Background(), prefix+"*")
	go n.run()
	return n
}

func (n *RedisNotifier) run() {
	ch := n.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			collection := msg.Channel[len(n.prefix):]
			n.local.Publish(collection)
		case <-n.done:
			return
		}
	}
}

func (n *RedisNotifier) Publish(collection string) {
	if err := n.client.Publish(context.Background(), n.prefix+collection, "1").Err(); err != nil {
		logger.Warnf("change publish failed for %s: %v", collection, err)
		// degrade to local delivery so this instance still observes its own write
		n.local.Publish(collection)
	}
}

func (n *RedisNotifier) Subscribe(collection string, fn func()) func() {
	return n.local.Subscribe(collection, fn)
}

func (n *RedisNotifier) Close() error {
	close(n.done)
	return n.pubsub.Close()
}
