// Package grid holds the state of a hexagonal pathfinding board.
//
// A Grid is a row-major table of traversal weights with a start and an end
// cell. Cells are painted with colours; each terrain colour writes a fixed
// weight:
//
//	white  1
//	aqua   3
//	green  5
//	yellow 10
//	black  10000 (wall)
//
// Magenta and red do not write a weight. Painting with them moves the start
// or the end marker onto the cell. Start and end are never painted over.
//
// Gestures can be applied directly through the Grid methods or fed through
// Apply, which threads an immutable State through a sequence of Events.
//
// Solver traces are kept apart from weights as overlay marks, so a painted
// path never changes the cost of the board.
package grid
