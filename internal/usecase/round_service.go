package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/league"
	"github.com/peladahub/pickup-league/internal/domain/match"
	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	"github.com/sourcegraph/conc/pool"
)

type RoundService struct {
	roundRepo  round.Repository
	leagueRepo league.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	engine     scoring.Engine
}

func NewRoundService(
	roundRepo round.Repository,
	leagueRepo league.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	engine scoring.Engine,
) *RoundService {
	return &RoundService{
		roundRepo:  roundRepo,
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		engine:     engine,
	}
}

type CreateRoundInput struct {
	LeagueID int64
	Date     time.Time
}

func (s *RoundService) CreateRound(ctx context.Context, input CreateRoundInput) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CreateRound")
	defer span.End()

	if input.LeagueID <= 0 {
		return round.Round{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return round.Round{}, fmt.Errorf("%w: round date is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return round.Round{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: league=%d", ErrNotFound, input.LeagueID)
	}

	date := normalizeRoundDate(input.Date)
	if !l.ContainsDate(date) {
		return round.Round{}, fmt.Errorf("%w: round date %s is outside the league window", ErrInvalidInput, date.Format("2006-01-02"))
	}

	_, taken, err := s.roundRepo.GetByLeagueAndDate(ctx, input.LeagueID, date)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round by date: %w", err)
	}
	if taken {
		return round.Round{}, round.ErrDuplicateDate
	}

	created, err := s.roundRepo.Create(ctx, round.Round{
		LeagueID: input.LeagueID,
		Date:     date,
		Status:   round.StatusOpen,
	})
	if err != nil {
		return round.Round{}, fmt.Errorf("create round: %w", err)
	}
	return created, nil
}

func (s *RoundService) GetRound(ctx context.Context, roundID int64) (round.Round, error) {
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
	return item, nil
}

func (s *RoundService) ListRounds(ctx context.Context, leagueID int64) ([]round.Round, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	rounds, err := s.roundRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return rounds, nil
}

// SyncRoster replaces the round's roster from a list of player names.
// Unknown names are registered as new players on the spot, matching
// existing players case-insensitively so "ana" and "Ana" stay one person.
func (s *RoundService) SyncRoster(ctx context.Context, roundID int64, names []string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SyncRoster")
	defer span.End()

	item, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if item.Status == round.StatusFinalized {
		return nil, round.ErrAlreadyFinalized
	}

	seen := make(map[string]struct{}, len(names))
	roster := make([]player.Player, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("%w: roster names must not be blank", ErrInvalidInput)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		p, exists, err := s.playerRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("get player by name: %w", err)
		}
		if !exists {
			p, err = s.playerRepo.Create(ctx, player.Player{
				Name: name,
				Role: player.RolePlayer,
			})
			if err != nil {
				return nil, fmt.Errorf("create player %q: %w", name, err)
			}
		}
		roster = append(roster, p)
	}

	playerIDs := make([]int64, 0, len(roster))
	for _, p := range roster {
		playerIDs = append(playerIDs, p.ID)
	}
	if err := s.roundRepo.ReplaceRoster(ctx, roundID, playerIDs); err != nil {
		return nil, fmt.Errorf("replace roster: %w", err)
	}

	return roster, nil
}

func (s *RoundService) ListRoster(ctx context.Context, roundID int64) ([]player.Player, error) {
	if _, err := s.GetRound(ctx, roundID); err != nil {
		return nil, err
	}

	roster, err := s.roundRepo.ListRoster(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return roster, nil
}

// SaveTeamAssignments replaces the round's team split wholesale. Every
// assigned player must already be on the roster.
func (s *RoundService) SaveTeamAssignments(ctx context.Context, roundID int64, items []round.TeamAssignment) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SaveTeamAssignments")
	defer span.End()

	item, err := s.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if item.Status == round.StatusFinalized {
		return round.ErrAlreadyFinalized
	}

	roster, err := s.roundRepo.ListRoster(ctx, roundID)
	if err != nil {
		return fmt.Errorf("list roster: %w", err)
	}
	rostered := make(map[int64]struct{}, len(roster))
	for _, p := range roster {
		rostered[p.ID] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(items))
	for _, assignment := range items {
		if assignment.TeamNumber < 1 {
			return fmt.Errorf("%w: team number must be >= 1", ErrInvalidInput)
		}
		if _, ok := rostered[assignment.PlayerID]; !ok {
			return fmt.Errorf("%w: player=%d is not on the roster", ErrInvalidInput, assignment.PlayerID)
		}
		if _, dup := seen[assignment.PlayerID]; dup {
			return fmt.Errorf("%w: player=%d is assigned twice", ErrInvalidInput, assignment.PlayerID)
		}
		seen[assignment.PlayerID] = struct{}{}
	}

	if err := s.roundRepo.ReplaceTeamAssignments(ctx, roundID, items); err != nil {
		return fmt.Errorf("replace team assignments: %w", err)
	}
	return nil
}

func (s *RoundService) ListTeamAssignments(ctx context.Context, roundID int64) ([]round.TeamAssignment, error) {
	if _, err := s.GetRound(ctx, roundID); err != nil {
		return nil, err
	}

	items, err := s.roundRepo.ListTeamAssignments(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list team assignments: %w", err)
	}
	return items, nil
}

type RoundDetail struct {
	Round   round.Round
	Roster  []player.Player
	Teams   []round.TeamAssignment
	Matches []match.Match
}

// RoundDetail assembles the round page in one call, fetching the
// independent reads concurrently.
func (s *RoundService) RoundDetail(ctx context.Context, roundID int64) (RoundDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.RoundDetail")
	defer span.End()

	item, err := s.GetRound(ctx, roundID)
	if err != nil {
		return RoundDetail{}, err
	}

	detail := RoundDetail{Round: item}
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		roster, err := s.roundRepo.ListRoster(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		detail.Roster = roster
		return nil
	})
	p.Go(func(ctx context.Context) error {
		teams, err := s.roundRepo.ListTeamAssignments(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list team assignments: %w", err)
		}
		detail.Teams = teams
		return nil
	})
	p.Go(func(ctx context.Context) error {
		matches, err := s.matchRepo.ListByRound(ctx, roundID)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		detail.Matches = matches
		return nil
	})
	if err := p.Wait(); err != nil {
		return RoundDetail{}, err
	}

	return detail, nil
}

// LiveResults scores the round's current totals without touching its
// status. Works the same for open and finalized rounds.
func (s *RoundService) LiveResults(ctx context.Context, roundID int64) ([]round.PlayerResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.LiveResults")
	defer span.End()

	if _, err := s.GetRound(ctx, roundID); err != nil {
		return nil, err
	}

	totals, err := s.roundRepo.AggregateTotals(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("aggregate totals: %w", err)
	}

	results := make([]round.PlayerResult, 0, len(totals))
	for _, t := range totals {
		results = append(results, round.PlayerResult{
			PlayerID: t.PlayerID,
			Name:     t.Name,
			Defends:  t.Defends,
			Stats:    t.Stats,
			Points:   s.engine.Score(t.Stats, t.Defends),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		return results[i].PlayerID < results[j].PlayerID
	})

	return results, nil
}

// Finalize closes the round. The repository runs the terminal transition
// atomically, so a concurrent double-finalize loses with ErrAlreadyFinalized.
func (s *RoundService) Finalize(ctx context.Context, roundID int64) (round.FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.Finalize")
	defer span.End()

	if _, err := s.GetRound(ctx, roundID); err != nil {
		return round.FinalizeResult{}, err
	}

	result, err := s.roundRepo.Finalize(ctx, roundID, s.engine)
	if err != nil {
		if errors.Is(err, round.ErrAlreadyFinalized) {
			return round.FinalizeResult{}, err
		}
		return round.FinalizeResult{}, fmt.Errorf("finalize round: %w", err)
	}
	return result, nil
}

func (s *RoundService) ListAwards(ctx context.Context, roundID int64) ([]round.Award, error) {
	if _, err := s.GetRound(ctx, roundID); err != nil {
		return nil, err
	}

	awards, err := s.roundRepo.ListAwards(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}

func normalizeRoundDate(value time.Time) time.Time {
	value = value.UTC()
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
