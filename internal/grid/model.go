package grid

import (
	"encoding/json"
	"fmt"
)

const (
	MinSize = 2
	MaxSize = 1000

	DefaultWidth  = 20
	DefaultHeight = 20
)

// Coord addresses a cell. It travels as the pair [col, row].
type Coord struct {
	Col int
	Row int
}

// MarshalJSON encodes c as [col, row].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Col, c.Row})
}

// UnmarshalJSON decodes a [col, row] pair.
func (c *Coord) UnmarshalJSON(b []byte) error {
	var pair [2]int
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	c.Col, c.Row = pair[0], pair[1]
	return nil
}

// String formats c as (col, row).
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Mark is a render-only overlay left by a solver trace.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkVisited
	MarkPath
)

// Color is the colour a renderer draws the mark with.
func (m Mark) Color() Color {
	switch m {
	case MarkVisited:
		return Silver
	case MarkPath:
		return Gray
	}
	return ""
}

// String returns the mark's wire name.
func (m Mark) String() string {
	switch m {
	case MarkVisited:
		return "visited"
	case MarkPath:
		return "path"
	}
	return "none"
}

// MarshalText encodes m by name.
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mark name.
func (m *Mark) UnmarshalText(b []byte) error {
	switch string(b) {
	case "visited":
		*m = MarkVisited
	case "path":
		*m = MarkPath
	case "none", "":
		*m = MarkNone
	default:
		return fmt.Errorf("unknown mark %q", b)
	}
	return nil
}

// Grid is a rectangular table of weights, Height rows of Width cells, with
// a start and an end cell.
type Grid struct {
	Width  int
	Height int
	Start  Coord
	End    Coord
	Tab    [][]Weight

	marks map[Coord]Mark
}

// New returns a plain grid with start in the top-right corner and end in the
// bottom-left one.
func New(width, height int) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	g := &Grid{}
	g.reset(width, height)
	return g, nil
}

// FromWeights builds a grid from a row-major weight table as the solver
// returns it.
func FromWeights(tab [][]int) (*Grid, error) {
	height := len(tab)
	if height == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrDimensions)
	}
	width := len(tab[0])
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	g := &Grid{Width: width, Height: height}
	g.Tab = make([][]Weight, height)
	for r, row := range tab {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), width)
		}
		g.Tab[r] = make([]Weight, width)
		for c, v := range row {
			w := Weight(v)
			if !ValidWeight(w) {
				return nil, fmt.Errorf("%w: %d at %v", ErrBadWeight, v, Coord{Col: c, Row: r})
			}
			g.Tab[r][c] = w
		}
	}
	g.Start, g.End = corners(width, height)
	g.marks = make(map[Coord]Mark)
	return g, nil
}

func checkDimensions(width, height int) error {
	if width < MinSize || height < MinSize || width > MaxSize || height > MaxSize {
		return fmt.Errorf("%w: %dx%d not within %d..%d", ErrDimensions, width, height, MinSize, MaxSize)
	}
	return nil
}

func corners(width, height int) (start, end Coord) {
	return Coord{Col: width - 1, Row: 0}, Coord{Col: 0, Row: height - 1}
}

func (g *Grid) reset(width, height int) {
	g.Width, g.Height = width, height
	g.Tab = make([][]Weight, height)
	for r := range g.Tab {
		row := make([]Weight, width)
		for c := range row {
			row[c] = WeightPlain
		}
		g.Tab[r] = row
	}
	g.Start, g.End = corners(width, height)
	g.marks = make(map[Coord]Mark)
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := g.shallow()
	for r := range c.Tab {
		c.Tab[r] = append([]Weight(nil), g.Tab[r]...)
	}
	return c
}

// shallow copies the grid header and the outer slice. Rows are shared until
// written through ownRow.
func (g *Grid) shallow() *Grid {
	c := *g
	c.Tab = append([][]Weight(nil), g.Tab...)
	c.marks = make(map[Coord]Mark, len(g.marks))
	for k, v := range g.marks {
		c.marks[k] = v
	}
	return &c
}

func (g *Grid) ownRow(row int) {
	g.Tab[row] = append([]Weight(nil), g.Tab[row]...)
}

// Contains reports whether c lies inside the grid.
func (g *Grid) Contains(c Coord) bool {
	return c.Col >= 0 && c.Col < g.Width && c.Row >= 0 && c.Row < g.Height
}

// IndexToCoord maps a row-major linear index to its cell.
func (g *Grid) IndexToCoord(index int) Coord {
	return Coord{Col: index % g.Width, Row: index / g.Width}
}

// CoordIndex is the inverse of IndexToCoord.
func (g *Grid) CoordIndex(c Coord) int {
	return c.Row*g.Width + c.Col
}

// IsStart and IsEnd report whether c holds a marker.
func (g *Grid) IsStart(c Coord) bool { return g.Start == c }
func (g *Grid) IsEnd(c Coord) bool   { return g.End == c }

// Weights returns a copy of the table as plain ints, the form the solver
// accepts.
func (g *Grid) Weights() [][]int {
	out := make([][]int, g.Height)
	for r, row := range g.Tab {
		out[r] = make([]int, len(row))
		for c, w := range row {
			out[r][c] = int(w)
		}
	}
	return out
}

// MarkedCell is one overlay entry of a snapshot.
type MarkedCell struct {
	Coord Coord `json:"coord"`
	Mark  Mark  `json:"mark"`
}

// Snapshot is the renderer's view of a grid.
type Snapshot struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Start  Coord        `json:"start"`
	End    Coord        `json:"end"`
	Tab    [][]int      `json:"tab"`
	Marks  []MarkedCell `json:"marks,omitempty"`
}

// Snapshot copies g into its renderer view.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{
		Width:  g.Width,
		Height: g.Height,
		Start:  g.Start,
		End:    g.End,
		Tab:    g.Weights(),
	}
	// row-major order keeps snapshots stable
	for r := 0; r < g.Height && len(s.Marks) < len(g.marks); r++ {
		for c := 0; c < g.Width; c++ {
			at := Coord{Col: c, Row: r}
			if m, ok := g.marks[at]; ok {
				s.Marks = append(s.Marks, MarkedCell{Coord: at, Mark: m})
			}
		}
	}
	return s
}
