package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nxn_tictactoe/internal/domain/board"
	"nxn_tictactoe/internal/domain/game"
	errs "nxn_tictactoe/internal/errors"
	engineRPC "nxn_tictactoe/microservices/proto"
)

// EngineGRPC runs the game operations on the remote engine service.
type EngineGRPC struct {
	log    *zap.SugaredLogger
	client engineRPC.EngineServiceClient
}

func NewEngineGRPC(log *zap.SugaredLogger, client engineRPC.EngineServiceClient) *EngineGRPC {
	return &EngineGRPC{
		log:    log,
		client: client,
	}
}

func (e *EngineGRPC) MakeMove(ctx context.Context, b board.Board, difficulty int, human board.Cell) (board.Board, error) {
	if err := b.Validate(); err != nil {
		return board.Board{}, err
	}
	req, err := engineRPC.NewMakeMoveRequest(b.Grid(), difficulty, human.String())
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: encode request: %w", errs.ErrInternal, err)
	}

	resp, err := e.client.MakeMove(ctx, req)
	if err != nil {
		e.log.Debugf("remote MakeMove failed: %v", err)
		return board.Board{}, engineRPC.ErrorFromStatus(err)
	}

	grid, err := engineRPC.ParseBoardResponse(resp)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: decode response: %w", errs.ErrInternal, err)
	}
	next, err := board.FromGrid(grid)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: remote engine returned %w", errs.ErrInternal, err)
	}
	return next, nil
}

func (e *EngineGRPC) CheckWinner(ctx context.Context, b board.Board, human board.Cell) (game.Outcome, error) {
	if err := b.Validate(); err != nil {
		return game.Undecided, err
	}
	req, err := engineRPC.NewCheckWinnerRequest(b.Grid(), human.String())
	if err != nil {
		return game.Undecided, fmt.Errorf("%w: encode request: %w", errs.ErrInternal, err)
	}

	resp, err := e.client.CheckWinner(ctx, req)
	if err != nil {
		e.log.Debugf("remote CheckWinner failed: %v", err)
		return game.Undecided, engineRPC.ErrorFromStatus(err)
	}

	result, err := engineRPC.ParseCheckWinnerResponse(resp)
	if err != nil {
		return game.Undecided, fmt.Errorf("%w: decode response: %w", errs.ErrInternal, err)
	}
	switch {
	case result == nil:
		return game.Undecided, nil
	case *result:
		return game.Won, nil
	default:
		return game.Lost, nil
	}
}
