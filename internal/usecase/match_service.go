package usecase

import (
	"context"
	"fmt"

	"github.com/peladahub/pickup-league/internal/domain/match"
	"github.com/peladahub/pickup-league/internal/domain/round"
)

type MatchService struct {
	matchRepo match.Repository
	roundRepo round.Repository
}

func NewMatchService(matchRepo match.Repository, roundRepo round.Repository) *MatchService {
	return &MatchService{
		matchRepo: matchRepo,
		roundRepo: roundRepo,
	}
}

type CreateMatchInput struct {
	RoundID     int64
	Team1Number int
	Team2Number int
}

// CreateMatch opens an empty match between two of the round's teams.
// Scores and the result ledger come later through RecordResult.
func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	item, err := s.openRound(ctx, input.RoundID)
	if err != nil {
		return match.Match{}, err
	}
	if input.Team1Number < 1 || input.Team2Number < 1 {
		return match.Match{}, fmt.Errorf("%w: team numbers must be >= 1", ErrInvalidInput)
	}
	if input.Team1Number == input.Team2Number {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	created, err := s.matchRepo.Create(ctx, match.Match{
		RoundID:     item.ID,
		Team1Number: input.Team1Number,
		Team2Number: input.Team2Number,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return created, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID int64) (match.Match, error) {
	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) ListMatches(ctx context.Context, roundID int64) ([]match.Match, error) {
	if roundID <= 0 {
		return nil, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	if _, exists, err := s.roundRepo.GetByID(ctx, roundID); err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: round=%d", ErrNotFound, roundID)
	}

	matches, err := s.matchRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) ListResults(ctx context.Context, matchID int64) ([]match.Result, error) {
	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	rows, err := s.matchRepo.ListResults(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}
	return rows, nil
}

type PlayerLine struct {
	PlayerID int64
	Side     int
	Goals    int
	Assists  int
	Warnings int
}

type RecordResultInput struct {
	MatchID         int64
	Score1          int
	Score2          int
	DurationSeconds int
	Lines           []PlayerLine
}

// RecordResult closes a match: it stores the final score and writes one
// ledger row per listed player. Win/draw/loss and clean-sheet flags are
// derived from the score and the player's side, never taken from the
// caller. Recording again replaces the previous rows wholesale, which
// also discards own goals registered against the earlier recording.
func (s *MatchService) RecordResult(ctx context.Context, input RecordResultInput) ([]match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	m, err := s.GetMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.openRound(ctx, m.RoundID); err != nil {
		return nil, err
	}

	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}
	if input.DurationSeconds < 0 {
		return nil, fmt.Errorf("%w: duration must be >= 0", ErrInvalidInput)
	}

	roster, err := s.roundRepo.ListRoster(ctx, m.RoundID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	rostered := make(map[int64]struct{}, len(roster))
	for _, p := range roster {
		rostered[p.ID] = struct{}{}
	}

	win1, draw1, loss1, clean1 := match.DeriveOutcome(input.Score1, input.Score2)
	win2, draw2, loss2, clean2 := match.DeriveOutcome(input.Score2, input.Score1)

	seen := make(map[int64]struct{}, len(input.Lines))
	rows := make([]match.Result, 0, len(input.Lines))
	var side1, side2 int
	for _, line := range input.Lines {
		if line.Side != 1 && line.Side != 2 {
			return nil, fmt.Errorf("%w: player=%d side must be 1 or 2", ErrInvalidInput, line.PlayerID)
		}
		if line.Goals < 0 || line.Assists < 0 || line.Warnings < 0 {
			return nil, fmt.Errorf("%w: player=%d stats must be >= 0", ErrInvalidInput, line.PlayerID)
		}
		if _, ok := rostered[line.PlayerID]; !ok {
			return nil, fmt.Errorf("%w: player=%d is not on the round roster", ErrInvalidInput, line.PlayerID)
		}
		if _, dup := seen[line.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player=%d is listed twice", ErrInvalidInput, line.PlayerID)
		}
		seen[line.PlayerID] = struct{}{}

		row := match.Result{
			MatchID:   m.ID,
			PlayerID:  line.PlayerID,
			TeamLabel: match.SideLabel(line.Side),
			Goals:     line.Goals,
			Assists:   line.Assists,
			Warnings:  line.Warnings,
		}
		if line.Side == 1 {
			row.Wins, row.Draws, row.Losses, row.CleanSheets = win1, draw1, loss1, clean1
			side1++
		} else {
			row.Wins, row.Draws, row.Losses, row.CleanSheets = win2, draw2, loss2, clean2
			side2++
		}
		rows = append(rows, row)
	}
	if side1 == 0 || side2 == 0 {
		return nil, fmt.Errorf("%w: both sides need at least one listed player", ErrInvalidInput)
	}

	m.Score1 = input.Score1
	m.Score2 = input.Score2
	m.DurationSeconds = input.DurationSeconds
	if err := s.matchRepo.ReplaceResult(ctx, m, rows); err != nil {
		return nil, fmt.Errorf("replace match result: %w", err)
	}

	stored, err := s.matchRepo.ListResults(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}
	return stored, nil
}

// RegisterOwnGoal credits the opposing side with a goal and marks the own
// goal on the player's ledger row, creating a minimal row when the player
// has none yet.
func (s *MatchService) RegisterOwnGoal(ctx context.Context, matchID, playerID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RegisterOwnGoal")
	defer span.End()

	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if _, err := s.openRound(ctx, m.RoundID); err != nil {
		return match.Match{}, err
	}

	playerSide, err := s.resolvePlayerSide(ctx, m, playerID)
	if err != nil {
		return match.Match{}, err
	}
	scoringSide := 3 - playerSide

	if err := s.matchRepo.RegisterOwnGoal(ctx, matchID, playerID, scoringSide, playerSide); err != nil {
		return match.Match{}, fmt.Errorf("register own goal: %w", err)
	}

	updated, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	return updated, nil
}

// resolvePlayerSide finds which side of the match the player plays on,
// first from an existing ledger row, then from the round's team split.
func (s *MatchService) resolvePlayerSide(ctx context.Context, m match.Match, playerID int64) (int, error) {
	if playerID <= 0 {
		return 0, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	rows, err := s.matchRepo.ListResults(ctx, m.ID)
	if err != nil {
		return 0, fmt.Errorf("list match results: %w", err)
	}
	for _, row := range rows {
		if row.PlayerID != playerID {
			continue
		}
		switch row.TeamLabel {
		case match.SideLabel(1):
			return 1, nil
		case match.SideLabel(2):
			return 2, nil
		}
	}

	assignments, err := s.roundRepo.ListTeamAssignments(ctx, m.RoundID)
	if err != nil {
		return 0, fmt.Errorf("list team assignments: %w", err)
	}
	for _, assignment := range assignments {
		if assignment.PlayerID != playerID {
			continue
		}
		switch assignment.TeamNumber {
		case m.Team1Number:
			return 1, nil
		case m.Team2Number:
			return 2, nil
		}
		return 0, fmt.Errorf("%w: player=%d is not on either team of this match", ErrInvalidInput, playerID)
	}

	return 0, fmt.Errorf("%w: cannot resolve the side of player=%d", ErrInvalidInput, playerID)
}

func (s *MatchService) openRound(ctx context.Context, roundID int64) (round.Round, error) {
	if roundID <= 0 {
		return round.Round{}, fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	item, exists, err := s.roundRepo.GetByID(ctx, roundID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, roundID)
	}
	if item.Status == round.StatusFinalized {
		return round.Round{}, round.ErrAlreadyFinalized
	}
	return item, nil
}
