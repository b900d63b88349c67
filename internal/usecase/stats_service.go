package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/peladahub/pickup-league/internal/domain/league"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	"github.com/peladahub/pickup-league/internal/domain/stats"
	"github.com/peladahub/pickup-league/internal/platform/resilience"
)

type StatsService struct {
	statsRepo  stats.Repository
	leagueRepo league.Repository
	engine     scoring.Engine
	maxWorkers int

	overviewFlight resilience.SingleFlight
}

func NewStatsService(statsRepo stats.Repository, leagueRepo league.Repository, engine scoring.Engine, maxWorkers int) *StatsService {
	if maxWorkers < 1 {
		maxWorkers = 4
	}
	return &StatsService{
		statsRepo:  statsRepo,
		leagueRepo: leagueRepo,
		engine:     engine,
		maxWorkers: maxWorkers,
	}
}

// LeagueOverview builds the league standings page: accumulated points per
// player across finalized rounds plus award counts. Concurrent requests
// for the same league share one computation.
func (s *StatsService) LeagueOverview(ctx context.Context, leagueID int64) (stats.LeagueOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.LeagueOverview")
	defer span.End()

	if leagueID <= 0 {
		return stats.LeagueOverview{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return stats.LeagueOverview{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return stats.LeagueOverview{}, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	value, err, _ := s.overviewFlight.Do(fmt.Sprintf("league-overview-%d", leagueID), func() (any, error) {
		return s.buildOverview(ctx, leagueID)
	})
	if err != nil {
		return stats.LeagueOverview{}, err
	}

	overview, ok := value.(stats.LeagueOverview)
	if !ok {
		return stats.LeagueOverview{}, fmt.Errorf("unexpected overview result type %T", value)
	}
	return overview, nil
}

func (s *StatsService) buildOverview(ctx context.Context, leagueID int64) (stats.LeagueOverview, error) {
	roundIDs, err := s.statsRepo.ListFinalizedRoundIDs(ctx, leagueID)
	if err != nil {
		return stats.LeagueOverview{}, fmt.Errorf("list finalized rounds: %w", err)
	}

	totalsByRound, err := s.aggregateRounds(ctx, roundIDs)
	if err != nil {
		return stats.LeagueOverview{}, err
	}

	type accumulator struct {
		name   string
		points float64
		rounds int
	}
	accumulators := make(map[int64]*accumulator)
	for _, roundID := range roundIDs {
		for _, t := range totalsByRound[roundID] {
			acc, ok := accumulators[t.PlayerID]
			if !ok {
				acc = &accumulator{name: t.Name}
				accumulators[t.PlayerID] = acc
			}
			acc.points += s.engine.Score(t.Stats, t.Defends)
			acc.rounds++
		}
	}

	ranking := make([]stats.RankingEntry, 0, len(accumulators))
	for playerID, acc := range accumulators {
		ranking = append(ranking, stats.RankingEntry{
			PlayerID: playerID,
			Name:     acc.name,
			Points:   acc.points,
			Rounds:   acc.rounds,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].PlayerID < ranking[j].PlayerID
	})

	tallies, err := s.statsRepo.ListAwardTallies(ctx, leagueID)
	if err != nil {
		return stats.LeagueOverview{}, fmt.Errorf("list award tallies: %w", err)
	}

	return stats.LeagueOverview{
		LeagueID: leagueID,
		Ranking:  ranking,
		Awards:   tallies,
	}, nil
}

// aggregateRounds fans the per-round aggregation out over a bounded
// worker pool. Order of the result map does not matter; callers walk it
// by round id.
func (s *StatsService) aggregateRounds(ctx context.Context, roundIDs []int64) (map[int64][]round.PlayerTotals, error) {
	out := make(map[int64][]round.PlayerTotals, len(roundIDs))
	if len(roundIDs) == 0 {
		return out, nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(roundIDs) {
		workerCount = len(roundIDs)
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var mu sync.Mutex
	var firstErr error
	var workers sync.WaitGroup
	for _, roundID := range roundIDs {
		roundID := roundID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			totals, err := s.statsRepo.AggregateRoundTotals(ctx, roundID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("aggregate round %d totals: %w", roundID, err)
				}
				return
			}
			out[roundID] = totals
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
