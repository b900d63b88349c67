package memory

import (
	"context"

	"github.com/peladahub/pickup-league/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League) (league.League, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l.ID = r.store.nextSequence()
	r.store.leagues[l.ID] = l
	r.store.leagueOrder = append(r.store.leagueOrder, l.ID)

	return l, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]league.League, 0, len(r.store.leagueOrder))
	for _, id := range r.store.leagueOrder {
		out = append(out, r.store.leagues[id])
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.leagues[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return l, true, nil
}

func (r *LeagueRepository) GetByName(_ context.Context, name string) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.leagueOrder {
		if r.store.leagues[id].Name == name {
			return r.store.leagues[id], true, nil
		}
	}
	return league.League{}, false, nil
}
