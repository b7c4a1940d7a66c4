package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoEvent = errors.New("no event stored for room")

const (
	channelPrefix = "sequence:room:"
	lastEventTTL  = 24 * time.Hour
)

// Event is the envelope mirrored to redis for every room broadcast.
type Event struct {
	Room    string          `json:"roomCode"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

// Publisher mirrors room broadcasts to a pub/sub channel per room and keeps the last event of each room.
type Publisher struct {
	client *redis.Client
	now    func() time.Time
}

func New(addr string) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	return NewWithClient(rdb)
}

func NewWithClient(client *redis.Client) *Publisher {
	return &Publisher{client: client, now: time.Now}
}

func Channel(roomCode string) string {
	return channelPrefix + roomCode
}

func lastEventKey(roomCode string) string {
	return channelPrefix + roomCode + ":last"
}

func (that *Publisher) Ping(ctx context.Context) error {
	if err := that.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// Publish sends the event to the room channel and stores it as the room's last event.
func (that *Publisher) Publish(ctx context.Context, roomCode, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Event{
		Room:    roomCode,
		Name:    event,
		Payload: raw,
		At:      that.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.Publish(ctx, Channel(roomCode), data)
	pipe.Set(ctx, lastEventKey(roomCode), data, lastEventTTL)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish event in Redis: %w", err)
	}

	return nil
}

// LastEvent returns the most recent event of a room.
func (that *Publisher) LastEvent(ctx context.Context, roomCode string) (*Event, error) {
	val, err := that.client.Get(ctx, lastEventKey(roomCode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoEvent
	} else if err != nil {
		return nil, fmt.Errorf("failed to get last event: %w", err)
	}

	var event Event
	if err = json.Unmarshal(val, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

// Forget drops the stored state of a deleted room.
func (that *Publisher) Forget(ctx context.Context, roomCode string) error {
	if err := that.client.Del(ctx, lastEventKey(roomCode)).Err(); err != nil {
		return fmt.Errorf("failed to delete room state in Redis: %w", err)
	}

	return nil
}

func (that *Publisher) Close() error {
	return that.client.Close()
}
