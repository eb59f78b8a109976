// Package board holds the N×N grid model shared by the rules, the engine and the
// service layer. Boards are immutable values: every change produces a new Board.
package board

import (
	"fmt"
	"iter"
	"strings"

	errs "nxn_tictactoe/internal/errors"
)

type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) Valid() bool {
	return c <= O
}

func (c Cell) IsPlayer() bool {
	return c == X || c == O
}

// Other swaps X and O. Empty has no opponent and maps to itself.
func (c Cell) Other() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return c
	}
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return ""
	case X:
		return "X"
	case O:
		return "O"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// ParseCell reads the wire form of a cell: "" for empty, "X" or "O" in any case.
func ParseCell(s string) (Cell, error) {
	switch strings.ToUpper(s) {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	}
	return Empty, fmt.Errorf("%w: unknown cell value %q", errs.ErrInvalidBoard, s)
}

// ParseSymbol reads a player symbol. Unlike ParseCell it rejects the empty string.
func ParseSymbol(s string) (Cell, error) {
	c, err := ParseCell(s)
	if err != nil || c == Empty {
		return Empty, fmt.Errorf("%w: %q", errs.ErrInvalidSymbol, s)
	}
	return c, nil
}

type Board struct {
	size  int
	cells []Cell
}

// Validate checks that cells form a non-empty square grid of legal cell values.
func Validate(cells []Cell) error {
	if _, ok := sideLength(len(cells)); !ok {
		return fmt.Errorf("%w: %d cells is not a perfect square", errs.ErrInvalidBoard, len(cells))
	}
	for i, c := range cells {
		if !c.Valid() {
			return fmt.Errorf("%w: cell %d holds %s", errs.ErrInvalidBoard, i, c)
		}
	}
	return nil
}

// New validates cells and returns a board owning a private copy of them.
func New(cells []Cell) (Board, error) {
	if err := Validate(cells); err != nil {
		return Board{}, err
	}
	n, _ := sideLength(len(cells))
	own := make([]Cell, len(cells))
	copy(own, cells)
	return Board{size: n, cells: own}, nil
}

func NewEmpty(n int) (Board, error) {
	if n < 1 {
		return Board{}, fmt.Errorf("%w: side length %d", errs.ErrInvalidBoard, n)
	}
	return Board{size: n, cells: make([]Cell, n*n)}, nil
}

// FromGrid converts the row-major wire grid into a board. Ragged or non-square
// grids are rejected.
func FromGrid(grid [][]string) (Board, error) {
	return FromGridLimit(grid, 0)
}

// FromGridLimit is FromGrid with an upper bound on the side length; maxSize <= 0
// means no bound. The grid shape is checked before any cell storage is allocated.
func FromGridLimit(grid [][]string, maxSize int) (Board, error) {
	n := len(grid)
	if n == 0 {
		return Board{}, fmt.Errorf("%w: empty grid", errs.ErrInvalidBoard)
	}
	if maxSize > 0 && n > maxSize {
		return Board{}, fmt.Errorf("%w: %d > %d", errs.ErrBoardTooLarge, n, maxSize)
	}
	for r, row := range grid {
		if len(row) != n {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", errs.ErrInvalidBoard, r, len(row), n)
		}
	}

	cells := make([]Cell, 0, n*n)
	for _, row := range grid {
		for _, v := range row {
			c, err := ParseCell(v)
			if err != nil {
				return Board{}, err
			}
			cells = append(cells, c)
		}
	}
	return Board{size: n, cells: cells}, nil
}

func (b Board) Grid() [][]string {
	grid := make([][]string, b.size)
	for r := range grid {
		row := make([]string, b.size)
		for c := range row {
			row[c] = b.cells[r*b.size+c].String()
		}
		grid[r] = row
	}
	return grid
}

// Validate reports ErrInvalidBoard for the zero Board.
func (b Board) Validate() error {
	if b.size < 1 || len(b.cells) != b.size*b.size {
		return fmt.Errorf("%w: uninitialised board", errs.ErrInvalidBoard)
	}
	return nil
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Len() int {
	return len(b.cells)
}

func (b Board) At(i int) Cell {
	return b.cells[i]
}

// Cells returns a copy of the flat row-major cells.
func (b Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// ApplyMove returns a new board with symbol placed at index i. The receiver is untouched.
func (b Board) ApplyMove(i int, symbol Cell) (Board, error) {
	if !symbol.IsPlayer() {
		return Board{}, fmt.Errorf("%w: %s", errs.ErrInvalidSymbol, symbol)
	}
	if i < 0 || i >= len(b.cells) {
		return Board{}, fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrIllegalMove, i, len(b.cells))
	}
	if b.cells[i] != Empty {
		return Board{}, fmt.Errorf("%w: cell %d is occupied by %s", errs.ErrIllegalMove, i, b.cells[i])
	}
	next := b.Cells()
	next[i] = symbol
	return Board{size: b.size, cells: next}, nil
}

// EmptyCells yields the indices of empty cells in ascending order. The sequence
// can be ranged over any number of times.
func (b Board) EmptyCells() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, c := range b.cells {
			if c == Empty && !yield(i) {
				return
			}
		}
	}
}

func (b Board) CountEmpty() int {
	n := 0
	for _, c := range b.cells {
		if c == Empty {
			n++
		}
	}
	return n
}

func (b Board) Full() bool {
	return b.CountEmpty() == 0
}

func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Key is a compact row-major encoding ("X", "O", "." per cell) used for cache keys.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(b.cells))
	for _, c := range b.cells {
		switch c {
		case X:
			sb.WriteByte('X')
		case O:
			sb.WriteByte('O')
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Board, error) {
	cells := make([]Cell, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case 'X':
			cells[i] = X
		case 'O':
			cells[i] = O
		case '.':
			cells[i] = Empty
		default:
			return Board{}, fmt.Errorf("%w: bad key byte %q at %d", errs.ErrInvalidBoard, key[i], i)
		}
	}
	return New(cells)
}

func sideLength(length int) (int, bool) {
	if length < 1 {
		return 0, false
	}
	n := 1
	for n*n < length {
		n++
	}
	return n, n*n == length
}
