package grid

import (
	"fmt"
	"math/rand"
)

// SetCellWeight writes the weight of color into the cell. Start and end are
// protected: the call leaves the grid untouched and returns ErrProtectedCell.
func (g *Grid) SetCellWeight(row, col int, color Color) error {
	at := Coord{Col: col, Row: row}
	if !g.Contains(at) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, at)
	}
	if g.IsStart(at) || g.IsEnd(at) {
		return ErrProtectedCell
	}
	w, ok := ColorToWeight(color)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	g.Tab[row][col] = w
	return nil
}

// SetStart moves the start marker. The cell under it becomes plain terrain.
func (g *Grid) SetStart(col, row int) error {
	at := Coord{Col: col, Row: row}
	if err := g.checkMarker(at, g.End); err != nil {
		return err
	}
	g.Start = at
	g.Tab[row][col] = WeightPlain
	return nil
}

// SetEnd moves the end marker. The cell under it becomes plain terrain.
func (g *Grid) SetEnd(col, row int) error {
	at := Coord{Col: col, Row: row}
	if err := g.checkMarker(at, g.Start); err != nil {
		return err
	}
	g.End = at
	g.Tab[row][col] = WeightPlain
	return nil
}

func (g *Grid) checkMarker(at, other Coord) error {
	if !g.Contains(at) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, at)
	}
	if at == other {
		return ErrStartIsEnd
	}
	return nil
}

// Paint applies one paint gesture: marker colours relocate start or end,
// terrain colours write a weight. Start and end cannot be painted over.
func (g *Grid) Paint(at Coord, color Color) error {
	if !g.Contains(at) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, at)
	}
	if g.IsStart(at) || g.IsEnd(at) {
		return ErrProtectedCell
	}
	switch color {
	case Magenta:
		return g.SetStart(at.Col, at.Row)
	case Red:
		return g.SetEnd(at.Col, at.Row)
	}
	return g.SetCellWeight(at.Row, at.Col, color)
}

// Resize replaces the table with a plain one of the new size. Start and end
// return to the corners and overlays are dropped.
func (g *Grid) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	g.reset(width, height)
	return nil
}

// HexagonColor returns the terrain colour of a cell.
func (g *Grid) HexagonColor(row, col int) Color {
	if !g.Contains(Coord{Col: col, Row: row}) {
		return White
	}
	return WeightToColor(g.Tab[row][col])
}

// Clear turns every cell back into plain terrain. Markers stay put.
func (g *Grid) Clear() {
	for _, row := range g.Tab {
		for c := range row {
			row[c] = WeightPlain
		}
	}
	g.ClearTrace()
}

// Randomize paints every cell with a random terrain colour. Start and end keep
// their weights.
func (g *Grid) Randomize(rng *rand.Rand) {
	colors := TerrainColors()
	for r, row := range g.Tab {
		for c := range row {
			at := Coord{Col: c, Row: r}
			if g.IsStart(at) || g.IsEnd(at) {
				continue
			}
			w, _ := ColorToWeight(colors[rng.Intn(len(colors))])
			row[c] = w
		}
	}
	g.ClearTrace()
}

// WallCount returns the number of impassable cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, row := range g.Tab {
		for _, w := range row {
			if w == WeightWall {
				n++
			}
		}
	}
	return n
}

// Cost sums the weights along path, not counting the first cell.
func (g *Grid) Cost(path []Coord) int {
	total := 0
	for i, at := range path {
		if i == 0 || !g.Contains(at) {
			continue
		}
		total += int(g.Tab[at.Row][at.Col])
	}
	return total
}

// Mark sets an overlay mark. Start, end and cells outside the grid are
// skipped and reported with false.
func (g *Grid) Mark(at Coord, m Mark) bool {
	if !g.Contains(at) || g.IsStart(at) || g.IsEnd(at) {
		return false
	}
	if g.marks == nil {
		g.marks = make(map[Coord]Mark)
	}
	if m == MarkNone {
		delete(g.marks, at)
		return true
	}
	g.marks[at] = m
	return true
}

// MarkAt returns the overlay mark of a cell.
func (g *Grid) MarkAt(at Coord) Mark {
	return g.marks[at]
}

// ClearTrace drops every overlay mark.
func (g *Grid) ClearTrace() {
	g.marks = make(map[Coord]Mark)
}
