package errors

import "errors"

var (
	ErrInvalidBoard      = errors.New("invalid board")
	ErrIllegalMove       = errors.New("illegal move")
	ErrNoLegalMove       = errors.New("no legal move: board is full")
	ErrInvalidSymbol     = errors.New("invalid player symbol")
	ErrInvalidDifficulty = errors.New("difficulty level must be a non-negative integer")
	ErrBoardTooLarge     = errors.New("board size exceeds the configured maximum")
	ErrSearchTimeout     = errors.New("move search timed out")
	ErrRulesNotArchived  = errors.New("rules for board size are not archived")
	ErrInternal          = errors.New("internal error")
)
