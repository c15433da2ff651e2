package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ManadaHerath/hexpath/internal/broker"
	"github.com/ManadaHerath/hexpath/internal/grid"
	"github.com/ManadaHerath/hexpath/internal/paint"
	"github.com/ManadaHerath/hexpath/internal/solver"
)

// ErrSuperseded reports a solve whose board changed before the solver answered.
var ErrSuperseded = errors.New("board changed while solving")

// Solver is the part of the solver client a session uses.
type Solver interface {
	Weights(ctx context.Context) ([][]int, error)
	PutWeights(ctx context.Context, tab [][]int) error
	SetDimensions(ctx context.Context, d solver.Dimensions) (solver.Dimensions, error)
	Solve(ctx context.Context, algo solver.Algorithm, start, end grid.Coord) (*solver.Result, error)
}

type Options struct {
	PaintDelay   time.Duration
	PaintVisited bool
}

// Session is one visualizer board. Every mutation goes through mu; solver
// calls are made without holding it.
type Session struct {
	ID string

	mu        sync.Mutex
	state     grid.State
	stopPaint context.CancelFunc
	// gen changes whenever a solve result would no longer fit the board.
	gen uint64

	solver       Solver
	broker       broker.Broker
	animator     *paint.Animator
	paintVisited bool
	log          *logrus.Entry
}

func New(id string, s Solver, b broker.Broker, opts Options) *Session {
	g, _ := grid.New(grid.DefaultWidth, grid.DefaultHeight)
	return &Session{
		ID:           id,
		state:        grid.State{Grid: g, Color: grid.Black},
		solver:       s,
		broker:       b,
		animator:     paint.New(opts.PaintDelay),
		paintVisited: opts.PaintVisited,
		log:          logrus.WithField("session", id),
	}
}

// Load replaces the board with the solver's current grid. On failure the
// board keeps its previous state.
func (s *Session) Load(ctx context.Context) error {
	tab, err := s.solver.Weights(ctx)
	if err != nil {
		return s.fail("load grid", err)
	}
	g, err := grid.FromWeights(tab)
	if err != nil {
		return s.fail("load grid", err)
	}
	return s.Handle(ctx, grid.Replace{Grid: g})
}

// Handle applies one gesture and publishes the resulting board. A refused
// gesture leaves the board as it was and is reported as a notice.
func (s *Session) Handle(ctx context.Context, ev grid.Event) error {
	s.mu.Lock()
	snap, changed, err := s.applyLocked(ev)
	s.mu.Unlock()
	if err != nil {
		return s.fail("gesture", err)
	}
	if changed {
		s.publish(broker.Frame{Type: broker.FrameSnapshot, Grid: &snap})
	}
	return nil
}

func (s *Session) applyLocked(ev grid.Event) (grid.Snapshot, bool, error) {
	next, err := grid.Apply(s.state, ev)
	if err != nil {
		s.state = next
		return grid.Snapshot{}, false, err
	}
	switch ev.(type) {
	case grid.Resize, grid.Replace:
		s.cancelPaintLocked()
		s.gen++
	}
	changed := next.Grid != s.state.Grid
	s.state = next
	if !changed {
		return grid.Snapshot{}, false, nil
	}
	return next.Grid.Snapshot(), true, nil
}

// Resize asks the solver for a new size, then resets the local board.
func (s *Session) Resize(ctx context.Context, width, height int) error {
	if _, err := grid.New(width, height); err != nil {
		return s.fail("resize", err)
	}
	if _, err := s.solver.SetDimensions(ctx, solver.Dimensions{Width: width, Height: height}); err != nil {
		return s.fail("resize", err)
	}
	return s.Handle(ctx, grid.Resize{Width: width, Height: height})
}

// Clear turns the whole board back into plain terrain.
func (s *Session) Clear(ctx context.Context) error {
	return s.rewrite(ctx, func(g *grid.Grid) { g.Clear() })
}

// Randomize scatters random terrain over the board.
func (s *Session) Randomize(ctx context.Context, rng *rand.Rand) error {
	return s.rewrite(ctx, func(g *grid.Grid) { g.Randomize(rng) })
}

// ClearTrace stops painting and wipes the solver trace from the board.
func (s *Session) ClearTrace(ctx context.Context) error {
	return s.rewrite(ctx, func(g *grid.Grid) { g.ClearTrace() })
}

// Stop halts the running animation and drops the result of any solve still
// in flight. Cells painted so far stay marked.
func (s *Session) Stop() {
	s.mu.Lock()
	s.cancelPaintLocked()
	s.gen++
	s.mu.Unlock()
}

func (s *Session) rewrite(ctx context.Context, fn func(*grid.Grid)) error {
	s.mu.Lock()
	g := s.state.Grid.Clone()
	fn(g)
	snap, changed, err := s.applyLocked(grid.Replace{Grid: g})
	s.mu.Unlock()
	if err != nil {
		return s.fail("rewrite", err)
	}
	if changed {
		s.publish(broker.Frame{Type: broker.FrameSnapshot, Grid: &snap})
	}
	return nil
}

// Sync pushes the local weights to the solver.
func (s *Session) Sync(ctx context.Context) error {
	s.mu.Lock()
	tab := s.state.Grid.Weights()
	s.mu.Unlock()

	if err := s.solver.PutWeights(ctx, tab); err != nil {
		return s.fail("sync weights", err)
	}
	return nil
}

// Solve pushes the board, runs algo from start to end and starts painting
// the outcome. Painting continues after Solve returns. A result that comes
// back after the board was resized, replaced, stopped or solved again is
// dropped with ErrSuperseded.
func (s *Session) Solve(ctx context.Context, algo solver.Algorithm) (*broker.Summary, error) {
	s.mu.Lock()
	s.cancelPaintLocked()
	s.state.Grid.ClearTrace()
	s.gen++
	gen := s.gen
	g := s.state.Grid.Clone()
	snap := g.Snapshot()
	s.mu.Unlock()

	log := s.log.WithField("algorithm", algo)

	if err := s.solver.PutWeights(ctx, g.Weights()); err != nil {
		return nil, s.fail("sync weights", err)
	}
	res, err := s.solver.Solve(ctx, algo, g.Start, g.End)
	if err != nil {
		return nil, s.fail(string(algo), err)
	}
	path, err := res.Path(g.Start, g.End)
	if err != nil {
		return nil, s.fail(string(algo), err)
	}

	visited := res.VisitOrder()
	summary := &broker.Summary{
		Algorithm: string(algo),
		Path:      path,
		Visited:   len(visited),
		Cost:      g.Cost(path),
	}

	var steps []paint.Step
	if s.paintVisited {
		steps = append(steps, paint.Steps(visited, grid.MarkVisited)...)
	}
	steps = append(steps, paint.Steps(path, grid.MarkPath)...)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return nil, s.fail(string(algo), ErrSuperseded)
	}
	paintCtx := s.beginPaintLocked()
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"path":    len(path),
		"visited": summary.Visited,
		"cost":    summary.Cost,
	}).Info("solved")
	s.publish(broker.Frame{Type: broker.FrameResult, Grid: &snap, Summary: summary})
	go s.paint(paintCtx, steps)

	return summary, nil
}

func (s *Session) beginPaintLocked() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelPaintLocked()
	s.stopPaint = cancel
	return ctx
}

func (s *Session) paint(ctx context.Context, steps []paint.Step) {
	err := s.animator.Run(ctx, steps, func(step paint.Step) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		// published under the lock so no step follows a resize snapshot
		if ctx.Err() != nil || !s.state.Grid.Mark(step.Coord, step.Mark) {
			return false
		}
		s.publish(broker.Frame{Type: broker.FrameStep, Step: &step})
		return true
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.log.WithError(err).Warn("painting stopped")
	}
}

func (s *Session) cancelPaintLocked() {
	if s.stopPaint != nil {
		s.stopPaint()
		s.stopPaint = nil
	}
}

// Snapshot returns the renderer view of the board.
func (s *Session) Snapshot() grid.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Grid.Snapshot()
}

// Grid returns a copy of the board.
func (s *Session) Grid() *grid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Grid.Clone()
}

// Color returns the active paint colour.
func (s *Session) Color() grid.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Color
}

// Close stops any running animation.
func (s *Session) Close() {
	s.mu.Lock()
	s.cancelPaintLocked()
	s.mu.Unlock()
}

// fail logs err, tells the renderers, and hands err back to the caller.
func (s *Session) fail(op string, err error) error {
	entry := s.log.WithError(err).WithField("op", op)
	switch {
	case errors.Is(err, grid.ErrProtectedCell), errors.Is(err, grid.ErrStartIsEnd):
		entry.Debug("gesture refused")
	case errors.Is(err, ErrSuperseded):
		entry.Info("result dropped")
	default:
		entry.Warn("operation failed")
	}
	s.publish(broker.Frame{Type: broker.FrameNotice, Notice: fmt.Sprintf("%s: %v", op, err)})
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Session) publish(f broker.Frame) {
	f.Session = s.ID
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.broker.Publish(ctx, s.ID, f); err != nil {
		s.log.WithError(err).WithField("frame", f.Type).Warn("publish failed")
	}
}
