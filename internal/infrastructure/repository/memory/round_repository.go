package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
)

type RoundRepository struct {
	store *Store
}

func NewRoundRepository(store *Store) *RoundRepository {
	return &RoundRepository{store: store}
}

func (r *RoundRepository) Create(_ context.Context, item round.Round) (round.Round, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range r.store.roundOrder {
		existing := r.store.rounds[id]
		if existing.LeagueID == item.LeagueID && existing.Date.Equal(item.Date) {
			return round.Round{}, round.ErrDuplicateDate
		}
	}

	item.ID = r.store.nextSequence()
	r.store.rounds[item.ID] = item
	r.store.roundOrder = append(r.store.roundOrder, item.ID)

	return item, nil
}

func (r *RoundRepository) GetByID(_ context.Context, roundID int64) (round.Round, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.rounds[roundID]
	if !ok {
		return round.Round{}, false, nil
	}
	return item, true, nil
}

func (r *RoundRepository) ListByLeague(_ context.Context, leagueID int64) ([]round.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]round.Round, 0)
	for _, id := range r.store.roundOrder {
		if r.store.rounds[id].LeagueID == leagueID {
			out = append(out, r.store.rounds[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out, nil
}

func (r *RoundRepository) GetByLeagueAndDate(_ context.Context, leagueID int64, date time.Time) (round.Round, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.roundOrder {
		item := r.store.rounds[id]
		if item.LeagueID == leagueID && item.Date.Equal(date) {
			return item, true, nil
		}
	}
	return round.Round{}, false, nil
}

func (r *RoundRepository) ReplaceRoster(_ context.Context, roundID int64, playerIDs []int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.rosters[roundID] = append([]int64(nil), playerIDs...)

	rostered := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		rostered[id] = struct{}{}
	}
	kept := r.store.teams[roundID][:0]
	for _, item := range r.store.teams[roundID] {
		if _, ok := rostered[item.PlayerID]; ok {
			kept = append(kept, item)
		}
	}
	r.store.teams[roundID] = kept

	return nil
}

func (r *RoundRepository) ListRoster(_ context.Context, roundID int64) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := append([]int64(nil), r.store.rosters[roundID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.store.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *RoundRepository) ReplaceTeamAssignments(_ context.Context, roundID int64, items []round.TeamAssignment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.teams[roundID] = append([]round.TeamAssignment(nil), items...)
	return nil
}

func (r *RoundRepository) ListTeamAssignments(_ context.Context, roundID int64) ([]round.TeamAssignment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := append([]round.TeamAssignment(nil), r.store.teams[roundID]...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamNumber != out[j].TeamNumber {
			return out[i].TeamNumber < out[j].TeamNumber
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *RoundRepository) AggregateTotals(_ context.Context, roundID int64) ([]round.PlayerTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.aggregateTotalsLocked(roundID), nil
}

func (r *RoundRepository) ListAwards(_ context.Context, roundID int64) ([]round.Award, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := append([]round.Award(nil), r.store.awards[roundID]...)
	return out, nil
}

// Finalize holds the store lock for the whole transition, so concurrent
// callers serialize the same way the row lock serializes them in postgres.
func (r *RoundRepository) Finalize(_ context.Context, roundID int64, engine scoring.Engine) (round.FinalizeResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.rounds[roundID]
	if !ok {
		return round.FinalizeResult{}, fmt.Errorf("round %d not found", roundID)
	}
	if item.Status == round.StatusFinalized {
		return round.FinalizeResult{}, round.ErrAlreadyFinalized
	}

	totals := r.store.aggregateTotalsLocked(roundID)
	result := round.SelectAwardees(totals, engine)

	for _, res := range result.Top {
		r.store.awards[roundID] = append(r.store.awards[roundID], round.Award{
			ID:       r.store.nextSequence(),
			RoundID:  roundID,
			PlayerID: res.PlayerID,
			Kind:     round.AwardTop,
			Points:   res.Points,
		})
	}
	for _, res := range result.Bottom {
		r.store.awards[roundID] = append(r.store.awards[roundID], round.Award{
			ID:       r.store.nextSequence(),
			RoundID:  roundID,
			PlayerID: res.PlayerID,
			Kind:     round.AwardBottom,
			Points:   res.Points,
		})
	}

	item.Status = round.StatusFinalized
	r.store.rounds[roundID] = item

	return result, nil
}
