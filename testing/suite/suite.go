package suite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/sequence-backend/internal/transport/redis"
)

const (
	containerTTL = 120
	startTimeout = 120 * time.Second

	redisImage = "redis"
	redisTag   = "7-alpine"
	redisPort  = "6379/tcp"
)

// Redis is a throwaway redis server with a Publisher bound to it.
type Redis struct {
	Client    *goredis.Client
	Publisher *redis.Publisher
}

// NewRedis starts a redis container for the test and removes it on cleanup.
// The test is skipped when docker is not reachable.
func NewRedis(t *testing.T) (context.Context, *Redis) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not reachable: %v", err)
	}
	pool.MaxWait = startTimeout

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}
	t.Cleanup(func() {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Logf("could not purge redis: %v", purgeErr)
		}
	})

	_ = resource.Expire(containerTTL)

	client := goredis.NewClient(&goredis.Options{Addr: resource.GetHostPort(redisPort)})
	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	publisher := redis.NewWithClient(client)
	t.Cleanup(func() { _ = publisher.Close() })

	return ctx, &Redis{
		Client:    client,
		Publisher: publisher,
	}
}

// Subscribe listens on the room channel and returns once redis has confirmed the subscription.
func (that *Redis) Subscribe(ctx context.Context, t *testing.T, roomCode string) *goredis.PubSub {
	t.Helper()

	sub := that.Client.Subscribe(ctx, redis.Channel(roomCode))
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("could not subscribe to %s: %v", roomCode, err)
	}
	t.Cleanup(func() { _ = sub.Close() })

	return sub
}

// NextEvent waits for the next room event on sub.
func NextEvent(t *testing.T, sub *goredis.PubSub, timeout time.Duration) redis.Event {
	t.Helper()

	select {
	case msg := <-sub.Channel():
		var event redis.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			t.Fatalf("malformed event %q: %v", msg.Payload, err)
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("no event within %s", timeout)
	}

	return redis.Event{}
}
