package grid

import "fmt"

// State is everything a paint gesture can change.
type State struct {
	Grid      *Grid
	Color     Color
	MouseDown bool
}

// Event is one user gesture or grid replacement.
type Event interface {
	event()
}

type (
	SelectColor struct{ Color Color }
	MouseDown   struct{ Index int }
	MouseOver   struct{ Index int }
	MouseUp     struct{}
	Resize      struct{ Width, Height int }
	Replace     struct{ Grid *Grid }
)

func (SelectColor) event() {}
func (MouseDown) event()   {}
func (MouseOver) event()   {}
func (MouseUp) event()     {}
func (Resize) event()      {}
func (Replace) event()     {}

// Apply returns the state that follows ev. The input state and its grid are
// never modified: painting copies the outer table and the touched row only.
// On error the input grid is kept.
func Apply(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case SelectColor:
		if !e.Color.IsTerrain() && !e.Color.IsMarker() {
			return s, fmt.Errorf("%w: %q", ErrUnknownColor, e.Color)
		}
		s.Color = e.Color
		return s, nil

	case MouseDown:
		next, err := paintIndex(s, e.Index)
		if err != nil {
			// the button is held even when the first cell is refused
			s.MouseDown = true
			return s, err
		}
		next.MouseDown = true
		return next, nil

	case MouseOver:
		if !s.MouseDown {
			return s, nil
		}
		return paintIndex(s, e.Index)

	case MouseUp:
		s.MouseDown = false
		return s, nil

	case Resize:
		g, err := New(e.Width, e.Height)
		if err != nil {
			return s, err
		}
		s.Grid = g
		return s, nil

	case Replace:
		if e.Grid == nil {
			return s, fmt.Errorf("%w: nil grid", ErrDimensions)
		}
		s.Grid = e.Grid
		return s, nil
	}
	return s, fmt.Errorf("unknown event %T", ev)
}

func paintIndex(s State, index int) (State, error) {
	g := s.Grid
	if g == nil {
		return s, fmt.Errorf("%w: no grid", ErrOutOfBounds)
	}
	if index < 0 || index >= g.Width*g.Height {
		return s, fmt.Errorf("%w: index %d", ErrOutOfBounds, index)
	}
	at := g.IndexToCoord(index)

	next := g.shallow()
	next.ownRow(at.Row)
	if err := next.Paint(at, s.Color); err != nil {
		return s, err
	}
	s.Grid = next
	return s, nil
}
