package grid

import (
	"fmt"
	"strings"
)

// Color is a paint colour as the renderer names it.
type Color string

const (
	White  Color = "white"
	Aqua   Color = "aqua"
	Green  Color = "green"
	Yellow Color = "yellow"
	Black  Color = "black"

	// Magenta and Red are paint modes, not terrain: they move start and end.
	Magenta Color = "magenta"
	Red     Color = "red"

	// Overlay colours used for solver traces.
	Gray   Color = "gray"
	Silver Color = "silver"
)

// Weight is the traversal cost of a cell.
type Weight int

const (
	WeightPlain  Weight = 1
	WeightWater  Weight = 3
	WeightForest Weight = 5
	WeightSand   Weight = 10
	// WeightWall marks an impassable cell. The solver uses the same value.
	WeightWall Weight = 10000
)

var terrain = []struct {
	color  Color
	weight Weight
}{
	{White, WeightPlain},
	{Aqua, WeightWater},
	{Green, WeightForest},
	{Yellow, WeightSand},
	{Black, WeightWall},
}

// Weights lists every weight a cell may hold, cheapest first.
func Weights() []Weight {
	out := make([]Weight, len(terrain))
	for i, t := range terrain {
		out[i] = t.weight
	}
	return out
}

// TerrainColors lists the colours that write a weight.
func TerrainColors() []Color {
	out := make([]Color, len(terrain))
	for i, t := range terrain {
		out[i] = t.color
	}
	return out
}

// ParseColor normalises a colour name. Only terrain colours and the two
// marker modes are accepted.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if c.IsTerrain() || c.IsMarker() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// IsTerrain reports whether c writes a weight.
func (c Color) IsTerrain() bool {
	_, ok := ColorToWeight(c)
	return ok
}

// IsMarker reports whether c relocates start or end instead of painting.
func (c Color) IsMarker() bool {
	return c == Magenta || c == Red
}

// ColorToWeight returns the weight a terrain colour writes.
func ColorToWeight(c Color) (Weight, bool) {
	for _, t := range terrain {
		if t.color == c {
			return t.weight, true
		}
	}
	return 0, false
}

// WeightToColor returns the terrain colour for w. Weights outside the table
// render as white.
func WeightToColor(w Weight) Color {
	for _, t := range terrain {
		if t.weight == w {
			return t.color
		}
	}
	return White
}

// ValidWeight reports whether w is one of the table weights.
func ValidWeight(w Weight) bool {
	for _, t := range terrain {
		if t.weight == w {
			return true
		}
	}
	return false
}
