package memory

import (
	"context"
	"sort"

	"github.com/peladahub/pickup-league/internal/domain/championship"
)

type ChampionshipRepository struct {
	store *Store
}

func NewChampionshipRepository(store *Store) *ChampionshipRepository {
	return &ChampionshipRepository{store: store}
}

func (r *ChampionshipRepository) Create(_ context.Context, c championship.Championship) (championship.Championship, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = r.store.nextSequence()
	r.store.championships[c.ID] = c
	r.store.championshipOrder = append(r.store.championshipOrder, c.ID)

	return c, nil
}

func (r *ChampionshipRepository) List(_ context.Context) ([]championship.Championship, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]championship.Championship, 0, len(r.store.championshipOrder))
	for _, id := range r.store.championshipOrder {
		out = append(out, r.store.championships[id])
	}
	return out, nil
}

func (r *ChampionshipRepository) GetByID(_ context.Context, championshipID int64) (championship.Championship, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.championships[championshipID]
	if !ok {
		return championship.Championship{}, false, nil
	}
	return c, true, nil
}

func (r *ChampionshipRepository) AddWinners(_ context.Context, championshipID int64, playerIDs []int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	holders := r.store.titleHolders[championshipID]
	credited := make(map[int64]struct{}, len(holders))
	for _, id := range holders {
		credited[id] = struct{}{}
	}
	for _, id := range playerIDs {
		if _, dup := credited[id]; dup {
			return championship.ErrDuplicateWinner
		}
		credited[id] = struct{}{}
	}

	r.store.titleHolders[championshipID] = append(holders, playerIDs...)
	return nil
}

func (r *ChampionshipRepository) TitleCounts(_ context.Context) ([]championship.TitleCount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[int64]int)
	for _, holders := range r.store.titleHolders {
		for _, playerID := range holders {
			counts[playerID]++
		}
	}

	out := make([]championship.TitleCount, 0, len(counts))
	for playerID, titles := range counts {
		out = append(out, championship.TitleCount{
			PlayerID: playerID,
			Name:     r.store.players[playerID].Name,
			Titles:   titles,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Titles != out[j].Titles {
			return out[i].Titles > out[j].Titles
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}
