package rules

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nxn_tictactoe/internal/domain/ruleset"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
)

type RuleStore interface {
	SaveRuleSet(ctx context.Context, rs ruleset.RuleSet) error
	GetRuleSet(ctx context.Context, boardSize int) (ruleset.RuleSet, error)
	ListSizes(ctx context.Context) ([]int, error)
}

type RulesUseCase struct {
	log          *zap.SugaredLogger
	catalog      *rules.Catalog
	store        RuleStore
	maxBoardSize int
}

// NewRulesUseCase serves win patterns from catalog and, when store is not nil,
// archives every rule set it hands out.
func NewRulesUseCase(log *zap.SugaredLogger, catalog *rules.Catalog, store RuleStore, maxBoardSize int) *RulesUseCase {
	if catalog == nil {
		catalog = rules.Default()
	}
	return &RulesUseCase{log: log, catalog: catalog, store: store, maxBoardSize: maxBoardSize}
}

func (r *RulesUseCase) GetRules(ctx context.Context, boardSize int) (ruleset.RuleSet, error) {
	if boardSize < 1 {
		return ruleset.RuleSet{}, fmt.Errorf("%w: side length %d", errs.ErrInvalidBoard, boardSize)
	}
	if r.maxBoardSize > 0 && boardSize > r.maxBoardSize {
		return ruleset.RuleSet{}, fmt.Errorf("%w: %d > %d", errs.ErrBoardTooLarge, boardSize, r.maxBoardSize)
	}

	patterns := r.catalog.Patterns(boardSize)
	rs := ruleset.RuleSet{
		BoardSize:   boardSize,
		Patterns:    make([][]int, len(patterns)),
		GeneratedAt: time.Now().UTC(),
	}
	for i, p := range patterns {
		rs.Patterns[i] = append([]int(nil), p...)
	}

	if r.store != nil {
		if err := r.store.SaveRuleSet(ctx, rs); err != nil {
			r.log.Warnf("failed to archive rules for size %d: %v", boardSize, err)
		}
	}
	return rs, nil
}

// ArchivedRules returns a rule set from the archive only.
func (r *RulesUseCase) ArchivedRules(ctx context.Context, boardSize int) (ruleset.RuleSet, error) {
	if r.store == nil {
		return ruleset.RuleSet{}, errs.ErrRulesNotArchived
	}
	return r.store.GetRuleSet(ctx, boardSize)
}

// Sizes lists archived board sizes, or the sizes held in memory when no
// archive is configured.
func (r *RulesUseCase) Sizes(ctx context.Context) ([]int, error) {
	if r.store == nil {
		return r.catalog.Sizes(), nil
	}
	return r.store.ListSizes(ctx)
}

// Warm builds and archives the rule sets of sizes concurrently.
func (r *RulesUseCase) Warm(ctx context.Context, sizes []int) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, n := range sizes {
		eg.Go(func() error {
			_, err := r.GetRules(ctx, n)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("warm rule catalog: %w", err)
	}
	r.log.Infof("rule catalog warmed for sizes %v", sizes)
	return nil
}
