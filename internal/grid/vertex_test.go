package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManadaHerath/hexpath/internal/grid"
)

func TestParseVertexKey(t *testing.T) {
	cases := []struct {
		key  string
		want grid.Vertex
	}{
		{"1 | [2, 3]", grid.Vertex{Weight: 1, Coord: grid.Coord{Col: 3, Row: 2}}},
		{"10000 | (0, 4)", grid.Vertex{Weight: 10000, Coord: grid.Coord{Col: 4, Row: 0}}},
		{"5|[7,1]", grid.Vertex{Weight: 5, Coord: grid.Coord{Col: 1, Row: 7}}},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			got, err := grid.ParseVertexKey(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseVertexKey_Malformed(t *testing.T) {
	for _, key := range []string{
		"",
		"1 [2, 3]",
		"x | [2, 3]",
		"1 | 2, 3",
		"1 | [2, 3)",
		"1 | [2]",
		"1 | [a, 3]",
	} {
		_, err := grid.ParseVertexKey(key)
		assert.ErrorIs(t, err, grid.ErrMalformedKey, "key %q", key)
	}
}

func TestVertexKey(t *testing.T) {
	v := grid.Vertex{Weight: 3, Coord: grid.Coord{Col: 4, Row: 1}}
	assert.Equal(t, "3 | [1, 4]", grid.VertexKey(v))

	back, err := grid.ParseVertexKey(grid.VertexKey(v))
	require.NoError(t, err)
	assert.Equal(t, v, back)
}
