package solver

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ManadaHerath/hexpath/internal/grid"
)

// Expansion is one visited cell and the neighbours it reached.
type Expansion struct {
	From grid.Vertex
	To   []grid.Vertex
}

// Link joins two consecutive cells of the solution. Solvers disagree on its
// direction, so it is read as undirected.
type Link struct {
	From grid.Vertex
	To   grid.Vertex
}

// Result is a decoded solver run. Both slices keep the order of the reply.
type Result struct {
	Visited []Expansion
	Links   []Link
}

type rawResult struct {
	Visited  json.RawMessage `json:"visited"`
	Solution json.RawMessage `json:"solution"`
}

type rawEntry struct {
	key   string
	value json.RawMessage
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var raw rawResult
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	visited, err := orderedObject(raw.Visited)
	if err != nil {
		return fmt.Errorf("visited: %w", err)
	}
	solution, err := orderedObject(raw.Solution)
	if err != nil {
		return fmt.Errorf("solution: %w", err)
	}

	res := Result{
		Visited: make([]Expansion, 0, len(visited)),
		Links:   make([]Link, 0, len(solution)),
	}
	for _, e := range visited {
		from, err := grid.ParseVertexKey(e.key)
		if err != nil {
			return err
		}
		var keys []string
		if err := json.Unmarshal(e.value, &keys); err != nil {
			return fmt.Errorf("visited %q: %w", e.key, err)
		}
		exp := Expansion{From: from, To: make([]grid.Vertex, 0, len(keys))}
		for _, k := range keys {
			v, err := grid.ParseVertexKey(k)
			if err != nil {
				return err
			}
			exp.To = append(exp.To, v)
		}
		res.Visited = append(res.Visited, exp)
	}
	for _, e := range solution {
		from, err := grid.ParseVertexKey(e.key)
		if err != nil {
			return err
		}
		var key string
		if err := json.Unmarshal(e.value, &key); err != nil {
			return fmt.Errorf("solution %q: %w", e.key, err)
		}
		to, err := grid.ParseVertexKey(key)
		if err != nil {
			return err
		}
		res.Links = append(res.Links, Link{From: from, To: to})
	}

	*r = res
	return nil
}

// orderedObject splits a JSON object into its members in document order.
// null and absent objects yield no members.
func orderedObject(b json.RawMessage) ([]rawEntry, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var out []rawEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, rawEntry{key: key, value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// VisitOrder lists each explored cell once, in the order the solver reached
// it.
func (r *Result) VisitOrder() []grid.Coord {
	seen := make(map[grid.Coord]bool)
	var out []grid.Coord
	add := func(c grid.Coord) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, e := range r.Visited {
		add(e.From.Coord)
		for _, v := range e.To {
			add(v.Coord)
		}
	}
	return out
}

// Path orders the solution from start to end. Links form an undirected
// graph; the fewest-links chain between the two cells is returned, start and
// end included.
func (r *Result) Path(start, end grid.Coord) ([]grid.Coord, error) {
	if start == end {
		return []grid.Coord{start}, nil
	}

	adj := make(map[grid.Coord][]grid.Coord)
	for _, l := range r.Links {
		a, b := l.From.Coord, l.To.Coord
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}

	prev := map[grid.Coord]grid.Coord{start: start}
	queue := []grid.Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			break
		}
		for _, next := range adj[cur] {
			if _, ok := prev[next]; ok {
				continue
			}
			prev[next] = cur
			queue = append(queue, next)
		}
	}
	if _, ok := prev[end]; !ok {
		return nil, fmt.Errorf("%w: %v to %v", ErrBrokenPath, start, end)
	}

	var path []grid.Coord
	for at := end; at != start; at = prev[at] {
		path = append(path, at)
	}
	path = append(path, start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
