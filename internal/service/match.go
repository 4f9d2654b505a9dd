package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/ludo-backend/internal/entity"
	"github.com/rocketscienceinc/ludo-backend/internal/pkg"
)

type MatchService interface {
	CreateMatch(ctx context.Context, matchType string) (*entity.Match, error)
	GetMatchByID(ctx context.Context, id string) (*entity.Match, error)
	UpdateMatch(ctx context.Context, match *entity.Match) error
	DeleteMatch(ctx context.Context, id string) error
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error
}

type matchService struct {
	matchRepo matchRepo
}

func NewMatchService(matchRepo matchRepo) MatchService {
	return &matchService{
		matchRepo: matchRepo,
	}
}

func (that *matchService) CreateMatch(ctx context.Context, matchType string) (*entity.Match, error) {
	matchID, err := pkg.GenerateMatchID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate match id: %w", err)
	}

	match := entity.NewMatch(matchID, matchType)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

func (that *matchService) GetMatchByID(ctx context.Context, id string) (*entity.Match, error) {
	match, err := that.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve match: %w", err)
	}

	return match, nil
}

func (that *matchService) UpdateMatch(ctx context.Context, match *entity.Match) error {
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	return nil
}

func (that *matchService) DeleteMatch(ctx context.Context, id string) error {
	if err := that.matchRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	return nil
}
