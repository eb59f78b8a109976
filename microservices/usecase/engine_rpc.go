package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"nxn_tictactoe/internal/domain/board"
	gameuc "nxn_tictactoe/internal/usecase/game"
	engineRPC "nxn_tictactoe/microservices/proto"
)

type EngineUseCase struct {
	log  *zap.SugaredLogger
	game *gameuc.GameUseCase
	engineRPC.UnimplementedEngineServiceServer
}

func NewEngineUseCase(log *zap.SugaredLogger, game *gameuc.GameUseCase) *EngineUseCase {
	return &EngineUseCase{
		log:  log,
		game: game,
	}
}

func (e *EngineUseCase) MakeMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	grid, difficulty, symbol, err := engineRPC.ParseMakeMoveRequest(in)
	if err != nil {
		return nil, engineRPC.StatusFromError(err)
	}
	b, human, err := parseBoardAndSymbol(grid, symbol, e.game.MaxBoardSize())
	if err != nil {
		return nil, engineRPC.StatusFromError(err)
	}

	next, err := e.game.MakeMove(ctx, b, difficulty, human)
	if err != nil {
		e.log.Errorf("MakeMove: %v", err)
		return nil, engineRPC.StatusFromError(err)
	}
	return engineRPC.NewBoardResponse(next.Grid())
}

func (e *EngineUseCase) CheckWinner(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	grid, symbol, err := engineRPC.ParseCheckWinnerRequest(in)
	if err != nil {
		return nil, engineRPC.StatusFromError(err)
	}
	b, human, err := parseBoardAndSymbol(grid, symbol, e.game.MaxBoardSize())
	if err != nil {
		return nil, engineRPC.StatusFromError(err)
	}

	outcome, err := e.game.CheckWinner(ctx, b, human)
	if err != nil {
		e.log.Errorf("CheckWinner: %v", err)
		return nil, engineRPC.StatusFromError(err)
	}
	return engineRPC.NewCheckWinnerResponse(outcome.Result())
}

func parseBoardAndSymbol(grid [][]string, symbol string, maxBoardSize int) (board.Board, board.Cell, error) {
	b, err := board.FromGridLimit(grid, maxBoardSize)
	if err != nil {
		return board.Board{}, board.Empty, err
	}
	human, err := board.ParseSymbol(symbol)
	if err != nil {
		return board.Board{}, board.Empty, err
	}
	return b, human, nil
}
