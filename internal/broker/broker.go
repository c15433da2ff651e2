package broker

import (
	"context"
	"errors"
	"sync"

	"github.com/ManadaHerath/hexpath/internal/grid"
	"github.com/ManadaHerath/hexpath/internal/paint"
)

var ErrClosed = errors.New("broker closed")

type FrameType string

const (
	FrameSnapshot FrameType = "snapshot"
	FrameStep     FrameType = "step"
	FrameNotice   FrameType = "notice"
	FrameResult   FrameType = "result"
)

// Frame is one message for the renderers of a session.
type Frame struct {
	Type    FrameType      `json:"type"`
	Session string         `json:"session"`
	Grid    *grid.Snapshot `json:"grid,omitempty"`
	Step    *paint.Step    `json:"step,omitempty"`
	Notice  string         `json:"notice,omitempty"`
	Summary *Summary       `json:"summary,omitempty"`
}

// Summary describes a finished solver run.
type Summary struct {
	Algorithm string       `json:"algorithm"`
	Path      []grid.Coord `json:"path"`
	Visited   int          `json:"visited"`
	Cost      int          `json:"cost"`
}

// Broker fans frames out to every subscriber of a session.
type Broker interface {
	Publish(ctx context.Context, session string, f Frame) error
	// Subscribe returns a channel of frames for session. The channel closes
	// after cancel is called or ctx ends.
	Subscribe(ctx context.Context, session string) (<-chan Frame, func(), error)
	Close() error
}

const subscriberBuffer = 64

var _ Broker = (*MemBroker)(nil)

type MemBroker struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Frame]struct{}
	closed bool
}

func NewMemBroker() *MemBroker {
	return &MemBroker{
		subs: make(map[string]map[chan Frame]struct{}),
	}
}

// Publish never blocks: a subscriber whose buffer is full misses the frame.
func (b *MemBroker) Publish(ctx context.Context, session string, f Frame) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for ch := range b.subs[session] {
		select {
		case ch <- f:
		default:
		}
	}
	return nil
}

func (b *MemBroker) Subscribe(ctx context.Context, session string) (<-chan Frame, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, ErrClosed
	}
	ch := make(chan Frame, subscriberBuffer)
	if b.subs[session] == nil {
		b.subs[session] = make(map[chan Frame]struct{})
	}
	b.subs[session][ch] = struct{}{}

	var once sync.Once
	done := make(chan struct{})
	cancel := func() {
		once.Do(func() {
			close(done)
			b.remove(session, ch)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}

func (b *MemBroker) remove(session string, ch chan Frame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[session]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(b.subs, session)
	}
}

// Close ends every subscription.
func (b *MemBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for session, set := range b.subs {
		for ch := range set {
			close(ch)
		}
		delete(b.subs, session)
	}
	return nil
}
