package broker_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManadaHerath/hexpath/internal/broker"
	"github.com/ManadaHerath/hexpath/internal/grid"
)

// newRedis connects to REDIS_ADDR and skips the test when it is unset or
// unreachable.
func newRedis(t *testing.T) (*broker.RedisBroker, *redis.Client) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	b := broker.NewRedisBrokerFromClient(rdb)
	if err := b.Ping(context.Background()); err != nil {
		_ = rdb.Close()
		t.Skipf("redis at %s unreachable: %v", addr, err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b, rdb
}

func sessionName(t *testing.T) string {
	return "test_" + t.Name() + "_" + time.Now().Format("150405.000000")
}

func TestRedisBroker_RoundTrip(t *testing.T) {
	b, _ := newRedis(t)
	ctx := context.Background()
	id := sessionName(t)

	frames, cancel, err := b.Subscribe(ctx, id)
	require.NoError(t, err)
	defer cancel()

	step := grid.Coord{Col: 2, Row: 1}
	require.NoError(t, b.Publish(ctx, id, broker.Frame{
		Type:    broker.FrameNotice,
		Session: id,
		Notice:  "resize: too big",
	}))
	require.NoError(t, b.Publish(ctx, id, broker.Frame{
		Type:    broker.FrameResult,
		Session: id,
		Summary: &broker.Summary{Algorithm: "bfs", Path: []grid.Coord{step}, Visited: 3, Cost: 1},
	}))

	f := receive(t, frames)
	assert.Equal(t, broker.FrameNotice, f.Type)
	assert.Equal(t, "resize: too big", f.Notice)

	f = receive(t, frames)
	assert.Equal(t, broker.FrameResult, f.Type)
	require.NotNil(t, f.Summary)
	assert.Equal(t, []grid.Coord{step}, f.Summary.Path)
}

func TestRedisBroker_DropsUndecodablePayload(t *testing.T) {
	b, rdb := newRedis(t)
	ctx := context.Background()
	id := sessionName(t)

	frames, cancel, err := b.Subscribe(ctx, id)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, rdb.Publish(ctx, "session:"+id+":frames", "not json").Err())
	require.NoError(t, b.Publish(ctx, id, broker.Frame{Type: broker.FrameNotice, Notice: "after"}))

	f := receive(t, frames)
	assert.Equal(t, "after", f.Notice)
}

func TestRedisBroker_CancelClosesChannel(t *testing.T) {
	b, _ := newRedis(t)

	frames, cancel, err := b.Subscribe(context.Background(), sessionName(t))
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-frames:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
