package grid_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManadaHerath/hexpath/internal/grid"
)

func newGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	require.NoError(t, err)
	return g
}

func TestNew_Defaults(t *testing.T) {
	g := newGrid(t, 4, 3)

	assert.Equal(t, grid.Coord{Col: 3, Row: 0}, g.Start)
	assert.Equal(t, grid.Coord{Col: 0, Row: 2}, g.End)
	require.Len(t, g.Tab, 3)
	for _, row := range g.Tab {
		require.Len(t, row, 4)
		for _, w := range row {
			assert.Equal(t, grid.WeightPlain, w)
		}
	}
}

func TestNew_Dimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"TooNarrow", 1, 5},
		{"TooShort", 5, 1},
		{"TooWide", 1001, 5},
		{"TooTall", 5, 1001},
		{"Negative", -3, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.w, tc.h)
			assert.ErrorIs(t, err, grid.ErrDimensions)
		})
	}
}

func TestFromWeights(t *testing.T) {
	g, err := grid.FromWeights([][]int{
		{1, 3, 5},
		{10, 10000, 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, grid.WeightWall, g.Tab[1][1])
	assert.Equal(t, grid.Coord{Col: 2, Row: 0}, g.Start)
	assert.Equal(t, grid.Coord{Col: 0, Row: 1}, g.End)
	assert.Equal(t, 1, g.WallCount())
}

func TestFromWeights_Errors(t *testing.T) {
	cases := []struct {
		name string
		tab  [][]int
		err  error
	}{
		{"Empty", [][]int{}, grid.ErrDimensions},
		{"SingleColumn", [][]int{{1}, {1}}, grid.ErrDimensions},
		{"Ragged", [][]int{{1, 1}, {1}}, grid.ErrNonRectangular},
		{"UnknownWeight", [][]int{{1, 2}, {1, 1}}, grid.ErrBadWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.FromWeights(tc.tab)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSetCellWeight_EveryTerrainColor(t *testing.T) {
	g := newGrid(t, 3, 3)
	for _, c := range grid.TerrainColors() {
		for r := 0; r < g.Height; r++ {
			for col := 0; col < g.Width; col++ {
				at := grid.Coord{Col: col, Row: r}
				if g.IsStart(at) || g.IsEnd(at) {
					continue
				}
				require.NoError(t, g.SetCellWeight(r, col, c))
				assert.Equal(t, c, g.HexagonColor(r, col), "cell %v", at)
			}
		}
	}
}

func TestSetCellWeight_ProtectedCells(t *testing.T) {
	g := newGrid(t, 5, 5)
	require.NoError(t, g.SetStart(0, 0))
	require.NoError(t, g.SetEnd(4, 4))

	require.NoError(t, g.SetCellWeight(2, 2, grid.Yellow))
	assert.Equal(t, grid.Weight(10), g.Tab[2][2])

	before := g.Clone()
	assert.ErrorIs(t, g.SetCellWeight(0, 0, grid.Black), grid.ErrProtectedCell)
	assert.ErrorIs(t, g.SetCellWeight(4, 4, grid.Black), grid.ErrProtectedCell)
	assert.Equal(t, before, g)
}

func TestSetCellWeight_Errors(t *testing.T) {
	g := newGrid(t, 3, 3)
	assert.ErrorIs(t, g.SetCellWeight(3, 0, grid.Green), grid.ErrOutOfBounds)
	assert.ErrorIs(t, g.SetCellWeight(1, 1, grid.Magenta), grid.ErrUnknownColor)
}

func TestSetStartEnd(t *testing.T) {
	g := newGrid(t, 4, 4)
	require.NoError(t, g.SetCellWeight(1, 1, grid.Black))

	require.NoError(t, g.SetStart(1, 1))
	assert.Equal(t, grid.Coord{Col: 1, Row: 1}, g.Start)
	assert.Equal(t, grid.WeightPlain, g.Tab[1][1], "start cell becomes plain")

	assert.ErrorIs(t, g.SetEnd(1, 1), grid.ErrStartIsEnd)
	assert.ErrorIs(t, g.SetStart(g.End.Col, g.End.Row), grid.ErrStartIsEnd)
	assert.ErrorIs(t, g.SetEnd(4, 0), grid.ErrOutOfBounds)

	require.NoError(t, g.SetEnd(2, 3))
	assert.Equal(t, grid.Coord{Col: 2, Row: 3}, g.End)
}

func TestPaint(t *testing.T) {
	g := newGrid(t, 4, 4)

	require.NoError(t, g.Paint(grid.Coord{Col: 1, Row: 2}, grid.Aqua))
	assert.Equal(t, grid.WeightWater, g.Tab[2][1])

	require.NoError(t, g.Paint(grid.Coord{Col: 2, Row: 2}, grid.Magenta))
	assert.Equal(t, grid.Coord{Col: 2, Row: 2}, g.Start)

	require.NoError(t, g.Paint(grid.Coord{Col: 1, Row: 1}, grid.Red))
	assert.Equal(t, grid.Coord{Col: 1, Row: 1}, g.End)

	assert.ErrorIs(t, g.Paint(g.Start, grid.Red), grid.ErrProtectedCell)
	assert.ErrorIs(t, g.Paint(g.End, grid.White), grid.ErrProtectedCell)
}

func TestResize(t *testing.T) {
	g := newGrid(t, 3, 3)
	require.NoError(t, g.SetCellWeight(1, 1, grid.Black))
	g.Mark(grid.Coord{Col: 1, Row: 1}, grid.MarkPath)

	require.NoError(t, g.Resize(7, 2))
	assert.Equal(t, 7, g.Width)
	assert.Equal(t, 2, g.Height)
	require.Len(t, g.Tab, 2)
	for _, row := range g.Tab {
		require.Len(t, row, 7)
		for _, w := range row {
			assert.Equal(t, grid.WeightPlain, w)
		}
	}
	assert.Equal(t, grid.Coord{Col: 6, Row: 0}, g.Start)
	assert.Equal(t, grid.Coord{Col: 0, Row: 1}, g.End)
	assert.Empty(t, g.Snapshot().Marks)

	assert.ErrorIs(t, g.Resize(1, 1), grid.ErrDimensions)
	assert.Equal(t, 7, g.Width, "failed resize keeps the grid")
}

func TestColorWeightRoundTrip(t *testing.T) {
	for _, w := range grid.Weights() {
		got, ok := grid.ColorToWeight(grid.WeightToColor(w))
		require.True(t, ok)
		assert.Equal(t, w, got)
	}
	assert.Equal(t, grid.White, grid.WeightToColor(42))
}

func TestParseColor(t *testing.T) {
	c, err := grid.ParseColor(" Yellow ")
	require.NoError(t, err)
	assert.Equal(t, grid.Yellow, c)

	c, err = grid.ParseColor("MAGENTA")
	require.NoError(t, err)
	assert.True(t, c.IsMarker())

	_, err = grid.ParseColor("gray")
	assert.ErrorIs(t, err, grid.ErrUnknownColor)
}

func TestIndexMapping(t *testing.T) {
	g := newGrid(t, 5, 3)
	at := g.IndexToCoord(7)
	assert.Equal(t, grid.Coord{Col: 2, Row: 1}, at)
	assert.Equal(t, 7, g.CoordIndex(at))
}

func TestClearAndRandomize(t *testing.T) {
	g := newGrid(t, 6, 6)
	g.Randomize(rand.New(rand.NewSource(1)))

	assert.Equal(t, grid.WeightPlain, g.Tab[g.Start.Row][g.Start.Col])
	assert.Equal(t, grid.WeightPlain, g.Tab[g.End.Row][g.End.Col])
	for _, row := range g.Tab {
		for _, w := range row {
			assert.True(t, grid.ValidWeight(w))
		}
	}

	start, end := g.Start, g.End
	g.Clear()
	assert.Equal(t, start, g.Start)
	assert.Equal(t, end, g.End)
	assert.Zero(t, g.WallCount())
}

func TestRandomize_KeepsMarkerWeights(t *testing.T) {
	g, err := grid.FromWeights([][]int{
		{1, 1, 5},
		{1, 1, 1},
		{3, 1, 1},
	})
	require.NoError(t, err)
	require.Equal(t, grid.Coord{Col: 2, Row: 0}, g.Start)
	require.Equal(t, grid.Coord{Col: 0, Row: 2}, g.End)

	g.Randomize(rand.New(rand.NewSource(3)))
	assert.Equal(t, grid.WeightForest, g.Tab[0][2])
	assert.Equal(t, grid.WeightWater, g.Tab[2][0])
}

func TestMarks(t *testing.T) {
	g := newGrid(t, 3, 3)
	mid := grid.Coord{Col: 1, Row: 1}

	assert.True(t, g.Mark(mid, grid.MarkVisited))
	assert.True(t, g.Mark(mid, grid.MarkPath))
	assert.False(t, g.Mark(g.Start, grid.MarkPath))
	assert.False(t, g.Mark(grid.Coord{Col: 9, Row: 9}, grid.MarkPath))
	assert.Equal(t, grid.MarkPath, g.MarkAt(mid))
	assert.Equal(t, grid.WeightPlain, g.Tab[1][1], "marks leave weights alone")

	snap := g.Snapshot()
	require.Len(t, snap.Marks, 1)
	assert.Equal(t, mid, snap.Marks[0].Coord)

	g.ClearTrace()
	assert.Equal(t, grid.MarkNone, g.MarkAt(mid))
}

func TestCost(t *testing.T) {
	g := newGrid(t, 3, 3)
	require.NoError(t, g.SetCellWeight(1, 1, grid.Yellow))
	path := []grid.Coord{g.Start, {Col: 1, Row: 1}, {Col: 0, Row: 2}}
	assert.Equal(t, 11, g.Cost(path))
}
