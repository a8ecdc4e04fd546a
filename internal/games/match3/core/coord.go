package core

import "fmt"

// Coord is a cell position on the board.
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsAdjacent reports whether a and b are orthogonal neighbours.
// A cell is not adjacent to itself and diagonals never count.
func IsAdjacent(a, b Coord) bool {
	return a.Manhattan(b) == 1
}

// BoardToLocal maps a board cell to the centre of its tile in local space.
// Local Y points up, so rows further down the board have more negative Y.
// Rows above the board (negative y) are valid and used as spawn points.
func BoardToLocal(x, y int, pieceSize float64) Vec2 {
	return Vec2{
		X: float64(x)*pieceSize + pieceSize/2,
		Y: -float64(y)*pieceSize - pieceSize/2,
	}
}
