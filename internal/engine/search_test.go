package engine

import (
	"context"
	"errors"
	"testing"

	"nxn_tictactoe/internal/domain/board"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

func mustGrid(t *testing.T, grid [][]string) board.Board {
	t.Helper()
	b, err := board.FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	return b
}

// reachable collects every position of a 3×3 game starting from an empty
// board, stopping at won positions.
func reachable(t *testing.T) []board.Board {
	t.Helper()
	seen := map[string]board.Board{}
	var walk func(b board.Board, mover board.Cell)
	walk = func(b board.Board, mover board.Cell) {
		if _, ok := seen[b.Key()]; ok {
			return
		}
		seen[b.Key()] = b
		if rules.IsWinning(b, board.X) || rules.IsWinning(b, board.O) {
			return
		}
		for i := range b.EmptyCells() {
			next, err := b.ApplyMove(i, mover)
			if err != nil {
				t.Fatalf("ApplyMove: %v", err)
			}
			walk(next, mover.Other())
		}
	}
	empty, _ := board.NewEmpty(3)
	walk(empty, board.X)

	out := make([]board.Board, 0, len(seen))
	for _, b := range seen {
		out = append(out, b)
	}
	return out
}

func TestBestMoveNeverPicksOccupiedCell(t *testing.T) {
	positions := reachable(t)
	if len(positions) != 5478 {
		t.Fatalf("expected 5478 reachable positions, got %d", len(positions))
	}
	for _, b := range positions {
		if b.Full() {
			continue
		}
		mover := board.X
		if b.CountEmpty()%2 == 0 {
			mover = board.O
		}
		for difficulty := 0; difficulty <= 3; difficulty++ {
			move, err := BestMove(b, difficulty, mover)
			if err != nil {
				t.Fatalf("board %s difficulty %d: %v", b.Key(), difficulty, err)
			}
			if b.At(move) != board.Empty {
				t.Fatalf("board %s difficulty %d: picked occupied cell %d", b.Key(), difficulty, move)
			}
		}
	}
}

func TestBestMoveTakesImmediateWin(t *testing.T) {
	b := mustGrid(t, [][]string{
		{"X", "X", ""},
		{"O", "O", ""},
		{"", "", ""},
	})
	for difficulty := 0; difficulty <= 9; difficulty++ {
		move, err := BestMove(b, difficulty, board.X)
		if err != nil {
			t.Fatalf("difficulty %d: %v", difficulty, err)
		}
		if move != 2 {
			t.Fatalf("difficulty %d: expected winning move 2, got %d", difficulty, move)
		}
	}
}

func TestBestMoveWinsAtOnceWhenPossible(t *testing.T) {
	// X can complete a line on 0 or 3.
	b := mustGrid(t, [][]string{
		{"", "O", "O"},
		{"", "X", ""},
		{"O", "", "X"},
	})
	b, _ = b.ApplyMove(5, board.X)
	for difficulty := 1; difficulty <= 6; difficulty++ {
		move, err := BestMove(b, difficulty, board.X)
		if err != nil {
			t.Fatalf("difficulty %d: %v", difficulty, err)
		}
		next, _ := b.ApplyMove(move, board.X)
		if !rules.IsWinning(next, board.X) {
			t.Fatalf("difficulty %d: move %d does not win immediately", difficulty, move)
		}
	}
}

func TestBestMoveBlocksOpponent(t *testing.T) {
	b := mustGrid(t, [][]string{
		{"X", "X", ""},
		{"O", "", ""},
		{"", "", ""},
	})
	for difficulty := 2; difficulty <= 8; difficulty++ {
		move, err := BestMove(b, difficulty, board.O)
		if err != nil {
			t.Fatalf("difficulty %d: %v", difficulty, err)
		}
		if move != 2 {
			t.Fatalf("difficulty %d: expected block on 2, got %d", difficulty, move)
		}
	}
}

func TestShallowSearchTiesGoToLowestIndex(t *testing.T) {
	empty, _ := board.NewEmpty(4)
	move, err := BestMove(empty, 0, board.O)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if move != 0 {
		t.Fatalf("expected first empty cell, got %d", move)
	}
}

func TestPerfectPlayDraws(t *testing.T) {
	b, _ := board.NewEmpty(3)
	mover := board.X
	for !b.Full() {
		move, err := BestMove(b, 9, mover)
		if err != nil {
			t.Fatalf("BestMove: %v", err)
		}
		b, err = b.ApplyMove(move, mover)
		if err != nil {
			t.Fatalf("ApplyMove: %v", err)
		}
		if rules.IsWinning(b, mover) {
			t.Fatalf("%v won against perfect play: %s", mover, b.Key())
		}
		mover = mover.Other()
	}
}

func TestBestMoveIsDeterministic(t *testing.T) {
	b := mustGrid(t, [][]string{
		{"X", "", ""},
		{"", "O", ""},
		{"", "", ""},
	})
	first, err := BestMove(b, 5, board.X)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	for i := 0; i < 5; i++ {
		if again, _ := BestMove(b, 5, board.X); again != first {
			t.Fatalf("run %d picked %d, first run picked %d", i, again, first)
		}
	}
}

func TestBestMoveFullBoard(t *testing.T) {
	b := mustGrid(t, [][]string{
		{"X", "O", "X"},
		{"O", "X", "O"},
		{"O", "X", "O"},
	})
	if _, err := BestMove(b, 3, board.X); !errors.Is(err, errs.ErrNoLegalMove) {
		t.Fatalf("expected ErrNoLegalMove, got %v", err)
	}
}

func TestSearchRejectsBadInput(t *testing.T) {
	b, _ := board.NewEmpty(3)
	if _, err := BestMove(b, -1, board.X); !errors.Is(err, errs.ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
	if _, err := BestMove(b, 1, board.Empty); !errors.Is(err, errs.ErrInvalidSymbol) {
		t.Fatalf("expected ErrInvalidSymbol, got %v", err)
	}
	if _, err := BestMove(board.Board{}, 1, board.X); !errors.Is(err, errs.ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}

func TestSearchHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, _ := board.NewEmpty(4)
	_, err := New(nil).Search(ctx, b, 6, board.X)
	if !errors.Is(err, errs.ErrSearchTimeout) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrSearchTimeout wrapping context.Canceled, got %v", err)
	}
}

func TestSearchReportsNodes(t *testing.T) {
	b := mustGrid(t, [][]string{
		{"X", "O", "X"},
		{"O", "X", "O"},
		{"O", "", "X"},
	})
	res, err := New(rules.NewCatalog()).Search(context.Background(), b, 4, board.O)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Move != 7 || res.Nodes != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}
