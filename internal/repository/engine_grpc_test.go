package repository

import (
	"context"
	"errors"
	"net"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"nxn_tictactoe/internal/domain/board"
	"nxn_tictactoe/internal/domain/game"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/rules"
	gameuc "nxn_tictactoe/internal/usecase/game"
	engineRPC "nxn_tictactoe/microservices/proto"
	"nxn_tictactoe/microservices/usecase"
)

func startEngine(t *testing.T, opts gameuc.Options) *EngineGRPC {
	t.Helper()
	log := zap.NewNop().Sugar()
	lis := bufconn.Listen(1 << 20)

	server := grpc.NewServer()
	gameUC := gameuc.NewGameUseCase(log, rules.NewCatalog(), nil, opts)
	engineRPC.RegisterEngineServiceServer(server, usecase.NewEngineUseCase(log, gameUC))
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return NewEngineGRPC(log, engineRPC.NewEngineServiceClient(conn))
}

func mustGrid(t *testing.T, grid [][]string) board.Board {
	t.Helper()
	b, err := board.FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid: %v", err)
	}
	return b
}

func TestEngineGRPCMakeMove(t *testing.T) {
	remote := startEngine(t, gameuc.Options{})
	b := mustGrid(t, [][]string{
		{"X", "X", ""},
		{"O", "O", ""},
		{"", "", ""},
	})
	next, err := remote.MakeMove(context.Background(), b, 2, board.X)
	if err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if next.At(5) != board.O {
		t.Fatalf("expected O on 5, got %s", next.Key())
	}
}

func TestEngineGRPCCheckWinner(t *testing.T) {
	remote := startEngine(t, gameuc.Options{})
	b := mustGrid(t, [][]string{
		{"X", "X", "X"},
		{"O", "O", ""},
		{"", "", ""},
	})
	cases := map[board.Cell]game.Outcome{board.X: game.Won, board.O: game.Lost}
	for sym, want := range cases {
		got, err := remote.CheckWinner(context.Background(), b, sym)
		if err != nil || got != want {
			t.Fatalf("%v: got %v %v, want %v", sym, got, err, want)
		}
	}
	empty, _ := board.NewEmpty(4)
	if got, err := remote.CheckWinner(context.Background(), empty, board.X); err != nil || got != game.Undecided {
		t.Fatalf("empty board: got %v %v", got, err)
	}
}

func TestEngineGRPCRestoresDomainErrors(t *testing.T) {
	remote := startEngine(t, gameuc.Options{MaxBoardSize: 3})
	full := mustGrid(t, [][]string{
		{"X", "O", "X"},
		{"O", "X", "O"},
		{"O", "X", "O"},
	})
	if _, err := remote.MakeMove(context.Background(), full, 1, board.X); !errors.Is(err, errs.ErrNoLegalMove) {
		t.Fatalf("expected ErrNoLegalMove, got %v", err)
	}
	large, _ := board.NewEmpty(4)
	if _, err := remote.MakeMove(context.Background(), large, 1, board.X); !errors.Is(err, errs.ErrBoardTooLarge) {
		t.Fatalf("expected ErrBoardTooLarge, got %v", err)
	}
	small, _ := board.NewEmpty(3)
	if _, err := remote.MakeMove(context.Background(), small, -2, board.X); !errors.Is(err, errs.ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}
