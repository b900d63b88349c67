package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/league"
)

type LeagueService struct {
	leagueRepo league.Repository
}

func NewLeagueService(leagueRepo league.Repository) *LeagueService {
	return &LeagueService{leagueRepo: leagueRepo}
}

type CreateLeagueInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (s *LeagueService) CreateLeague(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	l := league.League{
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.leagueRepo.GetByName(ctx, l.Name)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by name: %w", err)
	}
	if exists {
		return league.League{}, fmt.Errorf("%w: league name %q is already taken", ErrInvalidInput, l.Name)
	}

	created, err := s.leagueRepo.Create(ctx, l)
	if err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}
	return created, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID int64) (league.League, error) {
	if leagueID <= 0 {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}
	return l, nil
}
