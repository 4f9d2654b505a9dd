package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/ludo-backend/internal/entity"
	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
	"github.com/rocketscienceinc/ludo-backend/internal/service"
	"github.com/rocketscienceinc/ludo-backend/pkg/handlers"
)

type uGame interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	CreateMatch(ctx context.Context, playerID, matchType string, difficulty service.Difficulty) (*entity.Match, error)
	JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error)
	GetMatchState(ctx context.Context, matchID string) (*entity.Match, error)

	RollDice(ctx context.Context, playerID string) (int, *entity.Match, error)
	LegalMoves(ctx context.Context, playerID string) ([]ludo.Move, error)
	MovePiece(ctx context.Context, playerID string, pieceIndex int) (*entity.Match, error)
	PassTurn(ctx context.Context, playerID string) (*entity.Match, error)

	ResetMatch(ctx context.Context, matchID string) (*entity.Match, error)
	RecentEvents(ctx context.Context, matchID string) ([]ludo.Event, error)
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger,
		uGame:  uGame,
	}
}

// Start - starts the HTTP server.
func (that *Server) Start(port string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/players", that.handleConnectPlayer)

	mux.HandleFunc("POST /api/matches", that.handleCreateMatch)
	mux.HandleFunc("POST /api/matches/join", that.handleJoinMatch)
	mux.HandleFunc("GET /api/matches/{id}", that.handleMatchState)
	mux.HandleFunc("GET /api/matches/{id}/events", that.handleRecentEvents)
	mux.HandleFunc("POST /api/matches/{id}/reset", that.handleResetMatch)

	mux.HandleFunc("POST /api/game/roll", that.handleRollDice)
	mux.HandleFunc("GET /api/game/moves", that.handleLegalMoves)
	mux.HandleFunc("POST /api/game/move", that.handleMovePiece)
	mux.HandleFunc("POST /api/game/pass", that.handlePassTurn)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
