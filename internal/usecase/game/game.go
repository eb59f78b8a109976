package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"nxn_tictactoe/internal/domain/board"
	"nxn_tictactoe/internal/domain/game"
	"nxn_tictactoe/internal/engine"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

// MoveCache stores the board the engine produced for a request key. The
// engine is deterministic, so an entry never goes stale.
type MoveCache interface {
	GetMove(ctx context.Context, key string) (board.Board, bool, error)
	SaveMove(ctx context.Context, key string, b board.Board) error
}

// Options bound the work a single request may cause. Zero values disable a limit.
type Options struct {
	SearchTimeout time.Duration
	MaxBoardSize  int
}

type GameUseCase struct {
	log      *zap.SugaredLogger
	catalog  *rules.Catalog
	engine   *engine.Engine
	cache    MoveCache
	opts     Options
	searches singleflight.Group
}

// NewGameUseCase builds the facade. cache may be nil.
func NewGameUseCase(log *zap.SugaredLogger, catalog *rules.Catalog, cache MoveCache, opts Options) *GameUseCase {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &GameUseCase{
		log:     log,
		catalog: catalog,
		engine:  engine.New(catalog),
		cache:   cache,
		opts:    opts,
	}
}

// MaxBoardSize is the largest side length accepted, 0 when unbounded.
func (g *GameUseCase) MaxBoardSize() int {
	return g.opts.MaxBoardSize
}

func (g *GameUseCase) validate(b board.Board, human board.Cell) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if g.opts.MaxBoardSize > 0 && b.Size() > g.opts.MaxBoardSize {
		return fmt.Errorf("%w: %d > %d", errs.ErrBoardTooLarge, b.Size(), g.opts.MaxBoardSize)
	}
	if !human.IsPlayer() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidSymbol, human)
	}
	return nil
}

// MakeMove plays the engine's move for the opponent of human and returns the
// resulting board.
func (g *GameUseCase) MakeMove(ctx context.Context, b board.Board, difficulty int, human board.Cell) (board.Board, error) {
	if err := g.validate(b, human); err != nil {
		return board.Board{}, err
	}
	if difficulty < 0 {
		return board.Board{}, fmt.Errorf("%w: got %d", errs.ErrInvalidDifficulty, difficulty)
	}
	empty := b.CountEmpty()
	if empty == 0 {
		return board.Board{}, errs.ErrNoLegalMove
	}

	mover := human.Other()
	// Looking further ahead than the game can last changes no decision.
	depth := min(difficulty, empty)
	key := MoveKey(depth, mover, b)

	if g.cache != nil {
		cached, ok, err := g.cache.GetMove(ctx, key)
		if err != nil {
			g.log.Warnf("move cache read failed for %s: %v", key, err)
		} else if ok {
			g.log.Debugf("move cache hit for %s", key)
			return cached, nil
		}
	}

	ch := g.searches.DoChan(key, func() (any, error) {
		return g.search(ctx, b, depth, mover, key)
	})
	select {
	case <-ctx.Done():
		return board.Board{}, fmt.Errorf("%w: %w", errs.ErrSearchTimeout, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return board.Board{}, res.Err
		}
		if res.Shared {
			g.log.Debugf("search for %s shared between callers", key)
		}
		return res.Val.(board.Board), nil
	}
}

// search runs detached from the first caller's cancellation because other
// callers may be waiting on the same key; it is bounded by Options.SearchTimeout.
func (g *GameUseCase) search(ctx context.Context, b board.Board, depth int, mover board.Cell, key string) (board.Board, error) {
	ctx = context.WithoutCancel(ctx)
	if g.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.SearchTimeout)
		defer cancel()
	}

	started := time.Now()
	res, err := g.engine.Search(ctx, b, depth, mover)
	if err != nil {
		return board.Board{}, err
	}
	next, err := b.ApplyMove(res.Move, mover)
	if err != nil {
		return board.Board{}, err
	}
	g.log.Infof("engine %s played %d on %dx%d at depth %d (score %d, %d nodes, %s)",
		mover, res.Move, b.Size(), b.Size(), depth, res.Score, res.Nodes, time.Since(started))

	if g.cache != nil {
		if err := g.cache.SaveMove(ctx, key, next); err != nil {
			g.log.Warnf("move cache write failed for %s: %v", key, err)
		}
	}
	return next, nil
}

// CheckWinner reports whether human has won, lost, or neither.
func (g *GameUseCase) CheckWinner(_ context.Context, b board.Board, human board.Cell) (game.Outcome, error) {
	if err := g.validate(b, human); err != nil {
		return game.Undecided, err
	}
	switch {
	case g.catalog.IsWinning(b, human):
		return game.Won, nil
	case g.catalog.IsWinning(b, human.Other()):
		return game.Lost, nil
	default:
		return game.Undecided, nil
	}
}

// MoveKey identifies a search request: clamped depth, engine symbol and board.
func MoveKey(depth int, mover board.Cell, b board.Board) string {
	return strconv.Itoa(depth) + "|" + mover.String() + "|" + b.Key()
}

// IsClientError reports whether err stems from bad input rather than a failure
// of the service.
func IsClientError(err error) bool {
	return errors.Is(err, errs.ErrInvalidBoard) ||
		errors.Is(err, errs.ErrInvalidSymbol) ||
		errors.Is(err, errs.ErrInvalidDifficulty) ||
		errors.Is(err, errs.ErrBoardTooLarge)
}
