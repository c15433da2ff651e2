package solver

import (
	"fmt"
	"strings"
)

// Algorithm names one of the solver's search routines. The value is the last
// segment of its route.
type Algorithm string

const (
	DFS         Algorithm = "dfs"
	BFS         Algorithm = "bfs"
	Dijkstra    Algorithm = "dijkstra"
	BellmanFord Algorithm = "bellman_ford"
	AStar       Algorithm = "a_star"
	RandomWalk  Algorithm = "random_walk"
)

var algorithms = []Algorithm{DFS, BFS, Dijkstra, BellmanFord, AStar, RandomWalk}

// Algorithms lists every algorithm the solver serves.
func Algorithms() []Algorithm {
	return append([]Algorithm(nil), algorithms...)
}

// ParseAlgorithm accepts route names and a few common spellings
// ("bellman-ford", "astar", "a*").
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "bellman-ford", "bellmanford":
		return BellmanFord, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	case "random-walk", "randomwalk":
		return RandomWalk, nil
	}
	for _, a := range algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

func (a Algorithm) valid() bool {
	for _, known := range algorithms {
		if a == known {
			return true
		}
	}
	return false
}
