package memory

import (
	"context"
	"fmt"

	"github.com/peladahub/pickup-league/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m.ID = r.store.nextSequence()
	r.store.matches[m.ID] = m
	r.store.matchOrder = append(r.store.matchOrder, m.ID)

	return m, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return m, true, nil
}

func (r *MatchRepository) ListByRound(_ context.Context, roundID int64) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.store.matchOrder {
		if r.store.matches[id].RoundID == roundID {
			out = append(out, r.store.matches[id])
		}
	}
	return out, nil
}

func (r *MatchRepository) ListResults(_ context.Context, matchID int64) ([]match.Result, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]match.Result(nil), r.store.results[matchID]...), nil
}

func (r *MatchRepository) ReplaceResult(_ context.Context, m match.Match, rows []match.Result) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matches[m.ID]; !ok {
		return fmt.Errorf("match %d not found", m.ID)
	}

	stored := r.store.matches[m.ID]
	stored.Score1 = m.Score1
	stored.Score2 = m.Score2
	stored.DurationSeconds = m.DurationSeconds
	stored.Team1Number = m.Team1Number
	stored.Team2Number = m.Team2Number
	r.store.matches[m.ID] = stored

	replaced := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		row.ID = r.store.nextSequence()
		row.MatchID = m.ID
		replaced = append(replaced, row)
	}
	r.store.results[m.ID] = replaced

	return nil
}

func (r *MatchRepository) RegisterOwnGoal(_ context.Context, matchID, playerID int64, scoringSide, playerSide int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.matches[matchID]
	if !ok {
		return fmt.Errorf("match %d not found", matchID)
	}

	if scoringSide == 2 {
		m.Score2++
	} else {
		m.Score1++
	}
	r.store.matches[matchID] = m

	for i, row := range r.store.results[matchID] {
		if row.PlayerID == playerID {
			r.store.results[matchID][i].OwnGoals++
			return nil
		}
	}

	r.store.results[matchID] = append(r.store.results[matchID], match.Result{
		ID:        r.store.nextSequence(),
		MatchID:   matchID,
		PlayerID:  playerID,
		TeamLabel: match.SideLabel(playerSide),
		OwnGoals:  1,
	})

	return nil
}
