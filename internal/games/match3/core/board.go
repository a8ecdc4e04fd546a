package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the board.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrOccupied is returned when placing a piece into a non-empty cell.
	ErrOccupied = errors.New("cell occupied")
	// ErrUnknownPiece is returned when a piece id is not on the board.
	ErrUnknownPiece = errors.New("unknown piece")
)

// Board is an N×N grid of pieces.
// Every mutation keeps the grid slot and Piece.Pos in agreement.
type Board struct {
	size   int
	cells  []PieceID // Row-major, 0 = empty
	pieces map[PieceID]*Piece
	nextID PieceID
}

// NewBoard creates an empty board with the given side length.
func NewBoard(size int) *Board {
	return &Board{
		size:   size,
		cells:  make([]PieceID, size*size),
		pieces: make(map[PieceID]*Piece, size*size),
	}
}

// FromRows builds a board from rows of values indexed [y][x].
// A negative value leaves the cell empty. All rows must have len(rows) entries.
func FromRows(rows [][]int) (*Board, error) {
	b := NewBoard(len(rows))
	for y, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("match3: row %d has %d cells, want %d", y, len(row), len(rows))
		}
		for x, v := range row {
			if v < 0 {
				continue
			}
			if _, err := b.Set(C(x, y), v); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.size && c.Y >= 0 && c.Y < b.size
}

func (b *Board) index(c Coord) int {
	return c.Y*b.size + c.X
}

func (b *Board) checkBounds(c Coord) error {
	if !b.InBounds(c) {
		return fmt.Errorf("match3: %s on %dx%d board: %w", c, b.size, b.size, ErrOutOfBounds)
	}
	return nil
}

// Get returns the piece at c. The second result is false for empty or
// out-of-bounds cells.
func (b *Board) Get(c Coord) (Piece, bool) {
	if !b.InBounds(c) {
		return Piece{}, false
	}
	id := b.cells[b.index(c)]
	if id == 0 {
		return Piece{}, false
	}
	return *b.pieces[id], true
}

// Value returns the value at c, or -1 for empty or out-of-bounds cells.
func (b *Board) Value(c Coord) int {
	p, ok := b.Get(c)
	if !ok {
		return -1
	}
	return p.Value
}

// Piece looks up a piece by identity.
func (b *Board) Piece(id PieceID) (Piece, bool) {
	p, ok := b.pieces[id]
	if !ok {
		return Piece{}, false
	}
	return *p, true
}

// Set creates a new piece with the given value at c, replacing any piece there.
func (b *Board) Set(c Coord, value int) (Piece, error) {
	if err := b.checkBounds(c); err != nil {
		return Piece{}, err
	}
	if _, _, err := b.Clear(c); err != nil {
		return Piece{}, err
	}
	b.nextID++
	p := Piece{ID: b.nextID, Value: value, Pos: c}
	b.cells[b.index(c)] = p.ID
	b.pieces[p.ID] = &p
	return p, nil
}

// Place puts an existing identity back on the board at c with the given value.
// The cell must be empty and the identity must not already be on the board.
func (b *Board) Place(c Coord, id PieceID, value int) (Piece, error) {
	if err := b.checkBounds(c); err != nil {
		return Piece{}, err
	}
	if b.cells[b.index(c)] != 0 {
		return Piece{}, fmt.Errorf("match3: place #%d at %s: %w", id, c, ErrOccupied)
	}
	if _, ok := b.pieces[id]; ok || id == 0 {
		return Piece{}, fmt.Errorf("match3: place #%d: identity in use", id)
	}
	if id > b.nextID {
		b.nextID = id
	}
	p := Piece{ID: id, Value: value, Pos: c}
	b.cells[b.index(c)] = id
	b.pieces[id] = &p
	return p, nil
}

// Clear removes the piece at c and returns it.
func (b *Board) Clear(c Coord) (Piece, bool, error) {
	if err := b.checkBounds(c); err != nil {
		return Piece{}, false, err
	}
	idx := b.index(c)
	id := b.cells[idx]
	if id == 0 {
		return Piece{}, false, nil
	}
	p := *b.pieces[id]
	delete(b.pieces, id)
	b.cells[idx] = 0
	return p, true, nil
}

// Move relocates a piece to an empty cell, updating grid and Pos together.
func (b *Board) Move(id PieceID, to Coord) error {
	if err := b.checkBounds(to); err != nil {
		return err
	}
	p, ok := b.pieces[id]
	if !ok {
		return fmt.Errorf("match3: move #%d: %w", id, ErrUnknownPiece)
	}
	if p.Pos == to {
		return nil
	}
	if b.cells[b.index(to)] != 0 {
		return fmt.Errorf("match3: move #%d to %s: %w", id, to, ErrOccupied)
	}
	b.cells[b.index(p.Pos)] = 0
	b.cells[b.index(to)] = id
	p.Pos = to
	return nil
}

// Swap exchanges the contents of two cells. Either cell may be empty.
func (b *Board) Swap(c1, c2 Coord) error {
	if err := b.checkBounds(c1); err != nil {
		return err
	}
	if err := b.checkBounds(c2); err != nil {
		return err
	}
	i, j := b.index(c1), b.index(c2)
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	if id := b.cells[i]; id != 0 {
		b.pieces[id].Pos = c1
	}
	if id := b.cells[j]; id != 0 {
		b.pieces[id].Pos = c2
	}
	return nil
}

// Len returns the number of pieces on the board.
func (b *Board) Len() int {
	return len(b.pieces)
}

// Full returns true when every cell holds a piece.
func (b *Board) Full() bool {
	return len(b.pieces) == b.size*b.size
}

// AllCoords returns every coordinate in row-major order.
func (b *Board) AllCoords() []Coord {
	coords := make([]Coord, 0, b.size*b.size)
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// Pieces returns all pieces ordered by identity.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, len(b.pieces))
	for _, p := range b.pieces {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Values returns the board values indexed [y][x], with -1 for empty cells.
func (b *Board) Values() [][]int {
	rows := make([][]int, b.size)
	for y := range rows {
		rows[y] = make([]int, b.size)
		for x := range rows[y] {
			rows[y][x] = b.Value(C(x, y))
		}
	}
	return rows
}

// Clone creates a deep copy of the board, identities included.
func (b *Board) Clone() *Board {
	clone := &Board{
		size:   b.size,
		cells:  make([]PieceID, len(b.cells)),
		pieces: make(map[PieceID]*Piece, len(b.pieces)),
		nextID: b.nextID,
	}
	copy(clone.cells, b.cells)
	for id, p := range b.pieces {
		cp := *p
		clone.pieces[id] = &cp
	}
	return clone
}

// Verify checks that grid slots and piece positions agree in both directions.
func (b *Board) Verify() error {
	seen := 0
	for idx, id := range b.cells {
		if id == 0 {
			continue
		}
		seen++
		p, ok := b.pieces[id]
		if !ok {
			return fmt.Errorf("match3: cell %d holds unknown piece #%d", idx, id)
		}
		if b.index(p.Pos) != idx {
			return fmt.Errorf("match3: piece #%d at %s stored in cell %d", id, p.Pos, idx)
		}
	}
	if seen != len(b.pieces) {
		return fmt.Errorf("match3: %d pieces tracked, %d on grid", len(b.pieces), seen)
	}
	return nil
}
