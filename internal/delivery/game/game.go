package game

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nxn_tictactoe/internal/domain/board"
	"nxn_tictactoe/internal/domain/game"
	errs "nxn_tictactoe/internal/errors"
	"nxn_tictactoe/internal/httpresponse"
	ownMiddleware "nxn_tictactoe/internal/middleware"
	gameuc "nxn_tictactoe/internal/usecase/game"
	"nxn_tictactoe/internal/utils"
)

// GameService is implemented by the local use case and by the remote engine client.
type GameService interface {
	MakeMove(ctx context.Context, b board.Board, difficulty int, human board.Cell) (board.Board, error)
	CheckWinner(ctx context.Context, b board.Board, human board.Cell) (game.Outcome, error)
}

type GameHandler struct {
	log           *zap.SugaredLogger
	gameUC        GameService
	wsReadTimeout time.Duration
	maxBoardSize  int
	upgrader      websocket.Upgrader
}

// NewGameHandler builds the handlers. Boards wider than maxBoardSize are
// rejected before they are decoded into cells; maxBoardSize <= 0 disables the check.
func NewGameHandler(log *zap.SugaredLogger, gameUC GameService, wsReadTimeout time.Duration, maxBoardSize int) *GameHandler {
	return &GameHandler{
		log:           log,
		gameUC:        gameUC,
		wsReadTimeout: wsReadTimeout,
		maxBoardSize:  maxBoardSize,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (g *GameHandler) HandleMakeMove(w http.ResponseWriter, r *http.Request) {
	var req game.MakeMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(g.log, w, http.StatusBadRequest, err.Error())
		return
	}

	next, err := g.makeMove(r.Context(), req)
	if err != nil {
		g.writeServiceError(w, r, err)
		return
	}
	httpresponse.WriteJSON(g.log, w, http.StatusOK, game.MakeMoveResponse{Board: next.Grid()})
}

func (g *GameHandler) HandleIsWinner(w http.ResponseWriter, r *http.Request) {
	var req game.IsWinnerRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteError(g.log, w, http.StatusBadRequest, err.Error())
		return
	}

	b, human, err := parseBoardAndSymbol(req.Board, req.Symbol, g.maxBoardSize)
	if err != nil {
		g.writeServiceError(w, r, err)
		return
	}
	outcome, err := g.gameUC.CheckWinner(r.Context(), b, human)
	if err != nil {
		g.writeServiceError(w, r, err)
		return
	}
	httpresponse.WriteJSON(g.log, w, http.StatusOK, game.IsWinnerResponse{Result: outcome.Result()})
}

// HandlePlay keeps one game session on a websocket. Every frame is a make_move
// request; the reply carries the new board and the result for the human symbol.
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log := g.log.With("session", sessionID)
	log.Info("play session opened")
	defer log.Info("play session closed")

	ctx := r.Context()
	for {
		if g.wsReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(g.wsReadTimeout)); err != nil {
				log.Errorf("set read deadline: %v", err)
				return
			}
		}

		_, frame, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debugf("read error: %v", err)
			}
			return
		}

		resp := g.play(ctx, frame)
		resp.SessionID = sessionID
		if resp.Error != "" {
			log.Debugf("request rejected: %s", resp.Error)
		}
		if err = conn.WriteJSON(resp); err != nil {
			log.Errorf("write error: %v", err)
			return
		}
	}
}

func (g *GameHandler) play(ctx context.Context, frame []byte) game.PlayResponse {
	var req game.MakeMoveRequest
	if err := utils.DecodeJSON(frame, &req); err != nil {
		return game.PlayResponse{Error: err.Error()}
	}
	next, err := g.makeMove(ctx, req)
	if err != nil {
		return game.PlayResponse{Error: err.Error()}
	}
	human, _ := board.ParseSymbol(req.Symbol)
	outcome, err := g.gameUC.CheckWinner(ctx, next, human)
	if err != nil {
		return game.PlayResponse{Error: err.Error()}
	}
	return game.PlayResponse{Board: next.Grid(), Result: outcome.Result()}
}

func (g *GameHandler) makeMove(ctx context.Context, req game.MakeMoveRequest) (board.Board, error) {
	if req.DifficultyLevel == nil {
		return board.Board{}, errs.ErrInvalidDifficulty
	}
	b, human, err := parseBoardAndSymbol(req.Board, req.Symbol, g.maxBoardSize)
	if err != nil {
		return board.Board{}, err
	}
	return g.gameUC.MakeMove(ctx, b, *req.DifficultyLevel, human)
}

func (g *GameHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		g.log.Errorf("request %s failed: %v", ownMiddleware.GetRequestID(r.Context()), err)
		httpresponse.WriteError(g.log, w, status, "Internal server error")
		return
	}
	httpresponse.WriteError(g.log, w, status, err.Error())
}

// StatusFromError maps a domain error to the HTTP status reported for it.
func StatusFromError(err error) int {
	switch {
	case gameuc.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrIllegalMove), errors.Is(err, errs.ErrNoLegalMove):
		return http.StatusConflict
	case errors.Is(err, errs.ErrSearchTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrRulesNotArchived):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
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
