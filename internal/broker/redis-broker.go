package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisBroker relays frames through Redis pub/sub so that renderers attached
// to different processes see the same session.
type RedisBroker struct {
	client *redis.Client
	log    *logrus.Entry
}

var _ Broker = (*RedisBroker)(nil)

func NewRedisBroker(addr string, password string, db int) *RedisBroker {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisBrokerFromClient(rdb)
}

func NewRedisBrokerFromClient(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{
		client: rdb,
		log:    logrus.WithField("component", "broker"),
	}
}

func channelName(session string) string {
	return "session:" + session + ":frames"
}

// Ping checks the connection.
func (b *RedisBroker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return b.client.Ping(ctx).Err()
}

func (b *RedisBroker) Publish(ctx context.Context, session string, f Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return b.client.Publish(ctx, channelName(session), payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, session string) (<-chan Frame, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := b.client.Subscribe(ctx, channelName(session))

	// wait for the subscription so no frame published right after is lost
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan Frame, subscriberBuffer)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var f Frame
				if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil {
					b.log.WithError(err).WithField("session", session).Warn("dropping undecodable frame")
					continue
				}
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, cancel, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
