package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/peladahub/pickup-league/internal/domain/player"
)

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

type CreatePlayerInput struct {
	Name    string
	Role    string
	Defends bool
	Level   int
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	role := player.Role(strings.TrimSpace(input.Role))
	if role == "" {
		role = player.RolePlayer
	}

	p := player.Player{
		Name:    strings.TrimSpace(input.Name),
		Role:    role,
		Defends: input.Defends,
		Level:   input.Level,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.playerRepo.GetByName(ctx, p.Name)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by name: %w", err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: player name %q is already taken", ErrInvalidInput, p.Name)
	}

	created, err := s.playerRepo.Create(ctx, p)
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return created, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return p, nil
}

type UpdatePlayerInput struct {
	PlayerID int64
	Name     string
	Role     string
	Defends  bool
	Level    int
}

// UpdatePlayer overwrites the player's admin-managed attributes. The name
// still has to stay unique, case-insensitively.
func (s *PlayerService) UpdatePlayer(ctx context.Context, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	existing, err := s.GetPlayer(ctx, input.PlayerID)
	if err != nil {
		return player.Player{}, err
	}

	updated := player.Player{
		ID:      existing.ID,
		Name:    strings.TrimSpace(input.Name),
		Role:    player.Role(strings.TrimSpace(input.Role)),
		Defends: input.Defends,
		Level:   input.Level,
	}
	if err := updated.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !strings.EqualFold(updated.Name, existing.Name) {
		_, taken, err := s.playerRepo.GetByName(ctx, updated.Name)
		if err != nil {
			return player.Player{}, fmt.Errorf("get player by name: %w", err)
		}
		if taken {
			return player.Player{}, fmt.Errorf("%w: player name %q is already taken", ErrInvalidInput, updated.Name)
		}
	}

	if err := s.playerRepo.Update(ctx, updated); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	return updated, nil
}
