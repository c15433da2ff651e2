package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Vertex is a cell as the solver reports it: its weight at solve time and
// its position.
type Vertex struct {
	Weight Weight
	Coord  Coord
}

// VertexKey renders v the way the solver keys its trace maps. The solver
// addresses cells as [x, y] with x the row and y the column.
func VertexKey(v Vertex) string {
	return fmt.Sprintf("%d | [%d, %d]", v.Weight, v.Coord.Row, v.Coord.Col)
}

// ParseVertexKey decodes "<weight> | [x, y]". Parentheses are accepted in
// place of brackets and spacing is free.
func ParseVertexKey(key string) (Vertex, error) {
	weightPart, posPart, ok := strings.Cut(key, "|")
	if !ok {
		return Vertex{}, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}

	w, err := strconv.Atoi(strings.TrimSpace(weightPart))
	if err != nil {
		return Vertex{}, fmt.Errorf("%w: weight in %q", ErrMalformedKey, key)
	}

	pos := strings.TrimSpace(posPart)
	if len(pos) < 2 || !enclosed(pos) {
		return Vertex{}, fmt.Errorf("%w: position in %q", ErrMalformedKey, key)
	}
	parts := strings.Split(pos[1:len(pos)-1], ",")
	if len(parts) != 2 {
		return Vertex{}, fmt.Errorf("%w: position in %q", ErrMalformedKey, key)
	}
	xy := make([]int, 2)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Vertex{}, fmt.Errorf("%w: position in %q", ErrMalformedKey, key)
		}
		xy[i] = n
	}

	return Vertex{
		Weight: Weight(w),
		Coord:  Coord{Col: xy[1], Row: xy[0]},
	}, nil
}

func enclosed(s string) bool {
	first, last := s[0], s[len(s)-1]
	return (first == '[' && last == ']') || (first == '(' && last == ')')
}
