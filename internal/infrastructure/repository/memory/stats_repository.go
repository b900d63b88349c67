package memory

import (
	"context"
	"sort"

	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/stats"
)

type StatsRepository struct {
	store *Store
}

func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

func (r *StatsRepository) ListFinalizedRoundIDs(_ context.Context, leagueID int64) ([]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rounds := make([]round.Round, 0)
	for _, id := range r.store.roundOrder {
		item := r.store.rounds[id]
		if item.LeagueID == leagueID && item.Status == round.StatusFinalized {
			rounds = append(rounds, item)
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Date.Before(rounds[j].Date) })

	ids := make([]int64, 0, len(rounds))
	for _, item := range rounds {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func (r *StatsRepository) AggregateRoundTotals(_ context.Context, roundID int64) ([]round.PlayerTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.aggregateTotalsLocked(roundID), nil
}

func (r *StatsRepository) ListAwardTallies(_ context.Context, leagueID int64) ([]stats.AwardTally, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tallies := make(map[int64]*stats.AwardTally)
	for _, roundID := range r.store.roundOrder {
		item := r.store.rounds[roundID]
		if item.LeagueID != leagueID {
			continue
		}
		for _, award := range r.store.awards[roundID] {
			tally, ok := tallies[award.PlayerID]
			if !ok {
				p := r.store.players[award.PlayerID]
				tally = &stats.AwardTally{PlayerID: award.PlayerID, Name: p.Name}
				tallies[award.PlayerID] = tally
			}
			switch award.Kind {
			case round.AwardTop:
				tally.Top++
			case round.AwardBottom:
				tally.Bottom++
			}
		}
	}

	out := make([]stats.AwardTally, 0, len(tallies))
	for _, tally := range tallies {
		out = append(out, *tally)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Top != out[j].Top {
			return out[i].Top > out[j].Top
		}
		if out[i].Bottom != out[j].Bottom {
			return out[i].Bottom < out[j].Bottom
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}
