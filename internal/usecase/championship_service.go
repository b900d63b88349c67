package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/championship"
	"github.com/peladahub/pickup-league/internal/domain/player"
)

type ChampionshipService struct {
	championshipRepo championship.Repository
	playerRepo       player.Repository
}

func NewChampionshipService(championshipRepo championship.Repository, playerRepo player.Repository) *ChampionshipService {
	return &ChampionshipService{
		championshipRepo: championshipRepo,
		playerRepo:       playerRepo,
	}
}

type CreateChampionshipInput struct {
	Name string
	Date time.Time
}

func (s *ChampionshipService) CreateChampionship(ctx context.Context, input CreateChampionshipInput) (championship.Championship, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.CreateChampionship")
	defer span.End()

	c := championship.Championship{
		Name: strings.TrimSpace(input.Name),
		Date: normalizeRoundDate(input.Date),
	}
	if err := c.Validate(); err != nil {
		return championship.Championship{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.championshipRepo.Create(ctx, c)
	if err != nil {
		return championship.Championship{}, fmt.Errorf("create championship: %w", err)
	}
	return created, nil
}

func (s *ChampionshipService) ListChampionships(ctx context.Context) ([]championship.Championship, error) {
	championships, err := s.championshipRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list championships: %w", err)
	}
	return championships, nil
}

// AddWinners credits one title per listed player. Every player must
// already exist; winners are entered after the cup, never auto-created.
func (s *ChampionshipService) AddWinners(ctx context.Context, championshipID int64, playerIDs []int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.AddWinners")
	defer span.End()

	if championshipID <= 0 {
		return fmt.Errorf("%w: championship id is required", ErrInvalidInput)
	}
	if len(playerIDs) == 0 {
		return fmt.Errorf("%w: winners list cannot be empty", ErrInvalidInput)
	}

	_, exists, err := s.championshipRepo.GetByID(ctx, championshipID)
	if err != nil {
		return fmt.Errorf("get championship: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: championship=%d", ErrNotFound, championshipID)
	}

	seen := make(map[int64]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		if playerID <= 0 {
			return fmt.Errorf("%w: player id must be > 0", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return fmt.Errorf("%w: player=%d is listed twice", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}

		_, found, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: player=%d does not exist", ErrInvalidInput, playerID)
		}
	}

	if err := s.championshipRepo.AddWinners(ctx, championshipID, playerIDs); err != nil {
		return fmt.Errorf("add winners: %w", err)
	}
	return nil
}

func (s *ChampionshipService) TitleCounts(ctx context.Context) ([]championship.TitleCount, error) {
	counts, err := s.championshipRepo.TitleCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}
	return counts, nil
}
