package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/ludo-backend/internal/entity"
	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
	"github.com/rocketscienceinc/ludo-backend/internal/service"
)

// GameUseCase is the single surface the transport talks to.
type GameUseCase interface {
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

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
}

type gameUseCase struct {
	playerService   playerService
	gamePlayService service.GamePlayService
}

func NewGameUseCase(playerService playerService, gamePlayService service.GamePlayService) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		gamePlayService: gamePlayService,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerService.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("could not get or create player: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) CreateMatch(ctx context.Context, playerID, matchType string, difficulty service.Difficulty) (*entity.Match, error) {
	match, err := that.gamePlayService.CreateMatch(ctx, playerID, matchType, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error) {
	match, err := that.gamePlayService.JoinMatch(ctx, matchID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join match: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) GetMatchState(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.gamePlayService.GetMatchState(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match state: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) RollDice(ctx context.Context, playerID string) (int, *entity.Match, error) {
	value, match, err := that.gamePlayService.RollDice(ctx, playerID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to roll dice: %w", err)
	}

	return value, match, nil
}

func (that *gameUseCase) LegalMoves(ctx context.Context, playerID string) ([]ludo.Move, error) {
	moves, err := that.gamePlayService.LegalMoves(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate moves: %w", err)
	}

	return moves, nil
}

func (that *gameUseCase) MovePiece(ctx context.Context, playerID string, pieceIndex int) (*entity.Match, error) {
	match, err := that.gamePlayService.MovePiece(ctx, playerID, pieceIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to move piece: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) PassTurn(ctx context.Context, playerID string) (*entity.Match, error) {
	match, err := that.gamePlayService.PassTurn(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to pass turn: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) ResetMatch(ctx context.Context, matchID string) (*entity.Match, error) {
	match, err := that.gamePlayService.ResetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset match: %w", err)
	}

	return match, nil
}

func (that *gameUseCase) RecentEvents(ctx context.Context, matchID string) ([]ludo.Event, error) {
	events, err := that.gamePlayService.RecentEvents(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent events: %w", err)
	}

	return events, nil
}
