// Package paint replays solver traces onto a grid one cell at a time.
package paint

import (
	"context"
	"time"

	"github.com/ManadaHerath/hexpath/internal/grid"
)

const DefaultDelay = 100 * time.Millisecond

// Step marks one cell.
type Step struct {
	Coord grid.Coord `json:"coord"`
	Mark  grid.Mark  `json:"mark"`
}

// Steps turns a list of cells into steps carrying the same mark.
func Steps(cells []grid.Coord, m grid.Mark) []Step {
	out := make([]Step, len(cells))
	for i, c := range cells {
		out[i] = Step{Coord: c, Mark: m}
	}
	return out
}

// ApplyFunc performs a step and reports whether it changed anything.
// Skipped steps (start, end) do not wait for a tick.
type ApplyFunc func(Step) bool

type Animator struct {
	Delay time.Duration
}

func New(delay time.Duration) *Animator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Animator{Delay: delay}
}

// Run applies steps in order, at most one per Delay. It returns ctx.Err() if
// cancelled before the last step.
func (a *Animator) Run(ctx context.Context, steps []Step, apply ApplyFunc) error {
	ticker := time.NewTicker(a.Delay)
	defer ticker.Stop()

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !apply(s) || i == len(steps)-1 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
