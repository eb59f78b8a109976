// Package engine picks moves with a depth-bounded minimax search.
//
// Scores are always from the point of view of the player to move at a node. A
// completed line is worth WinScore plus the remaining depth, so shorter wins
// and longer losses are preferred. When the depth budget runs out on an
// undecided position the node scores 0, the same as a draw.
package engine

import (
	"context"
	"fmt"
	"math"

	"nxn_tictactoe/internal/domain/board"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

const WinScore = 1000

// nodes between two context checks inside a candidate's subtree
const cancelCheckInterval = 4096

type Result struct {
	Move  int
	Score int
	Nodes int
}

type Engine struct {
	catalog *rules.Catalog
}

// New returns an engine reading win patterns from catalog, or from the
// process-wide catalog when catalog is nil.
func New(catalog *rules.Catalog) *Engine {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &Engine{catalog: catalog}
}

var defaultEngine = New(nil)

func BestMove(b board.Board, difficulty int, mover board.Cell) (int, error) {
	return defaultEngine.BestMove(b, difficulty, mover)
}

func (e *Engine) BestMove(b board.Board, difficulty int, mover board.Cell) (int, error) {
	res, err := e.Search(context.Background(), b, difficulty, mover)
	if err != nil {
		return -1, err
	}
	return res.Move, nil
}

// Search returns the best move for mover looking difficulty plies ahead.
// Candidates are tried in ascending index order and only a strictly better
// score replaces the current choice, so ties go to the lowest index.
// Difficulty 0 and 1 both score candidates on the position right after the move.
//
// ctx is checked between root candidates and periodically inside their
// subtrees; cancellation yields ErrSearchTimeout.
func (e *Engine) Search(ctx context.Context, b board.Board, difficulty int, mover board.Cell) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{Move: -1}, err
	}
	if !mover.IsPlayer() {
		return Result{Move: -1}, fmt.Errorf("%w: %s", errs.ErrInvalidSymbol, mover)
	}
	if difficulty < 0 {
		return Result{Move: -1}, fmt.Errorf("%w: got %d", errs.ErrInvalidDifficulty, difficulty)
	}

	s := &searcher{
		ctx:      ctx,
		patterns: e.catalog.Patterns(b.Size()),
		cells:    b.Cells(),
	}
	childDepth := max(difficulty-1, 0)
	res := Result{Move: -1, Score: math.MinInt}

	for i := range b.EmptyCells() {
		if err := ctx.Err(); err != nil {
			return Result{Move: -1, Nodes: s.nodes}, fmt.Errorf("%w: %w", errs.ErrSearchTimeout, err)
		}
		s.cells[i] = mover
		score := -s.score(mover.Other(), childDepth)
		s.cells[i] = board.Empty
		if s.aborted {
			return Result{Move: -1, Nodes: s.nodes}, fmt.Errorf("%w: %w", errs.ErrSearchTimeout, ctx.Err())
		}
		if score > res.Score {
			res.Move, res.Score = i, score
		}
	}
	res.Nodes = s.nodes

	if res.Move < 0 {
		return Result{Move: -1}, errs.ErrNoLegalMove
	}
	return res, nil
}

// searcher plays moves on a private scratch copy of the board and undoes them
// on the way back up.
type searcher struct {
	ctx      context.Context
	patterns []rules.Pattern
	cells    []board.Cell
	nodes    int
	aborted  bool
}

func (s *searcher) score(mover board.Cell, depth int) int {
	s.nodes++
	if s.nodes%cancelCheckInterval == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	if s.aborted {
		return 0
	}

	if rules.HasLine(s.patterns, s.cells, mover) {
		return WinScore + depth
	}
	if rules.HasLine(s.patterns, s.cells, mover.Other()) {
		return -(WinScore + depth)
	}
	if depth == 0 {
		return 0
	}

	best, moved := math.MinInt, false
	for i, c := range s.cells {
		if c != board.Empty {
			continue
		}
		moved = true
		s.cells[i] = mover
		v := -s.score(mover.Other(), depth-1)
		s.cells[i] = board.Empty
		if v > best {
			best = v
		}
	}
	if !moved {
		return 0
	}
	return best
}
