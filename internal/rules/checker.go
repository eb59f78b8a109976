package rules

import "nxn_tictactoe/internal/domain/board"

func IsWinning(b board.Board, symbol board.Cell) bool {
	return defaultCatalog.IsWinning(b, symbol)
}

// IsWinning reports whether symbol fully occupies any line of b.
func (c *Catalog) IsWinning(b board.Board, symbol board.Cell) bool {
	if !symbol.IsPlayer() {
		return false
	}
	return anyLineOwned(c.Patterns(b.Size()), b.At, symbol)
}

// HasLine is IsWinning over a raw cell slice, for callers that keep a mutable
// scratch board.
func HasLine(patterns []Pattern, cells []board.Cell, symbol board.Cell) bool {
	if !symbol.IsPlayer() {
		return false
	}
	return anyLineOwned(patterns, func(i int) board.Cell { return cells[i] }, symbol)
}

func anyLineOwned(patterns []Pattern, at func(int) board.Cell, symbol board.Cell) bool {
	for _, p := range patterns {
		owned := true
		for _, i := range p {
			if at(i) != symbol {
				owned = false
				break
			}
		}
		if owned {
			return true
		}
	}
	return false
}
