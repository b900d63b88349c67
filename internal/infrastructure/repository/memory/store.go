package memory

import (
	"sort"
	"sync"

	"github.com/peladahub/pickup-league/internal/domain/championship"
	"github.com/peladahub/pickup-league/internal/domain/league"
	"github.com/peladahub/pickup-league/internal/domain/match"
	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
)

// Store backs the in-memory repositories used by tests and local runs.
// Everything shares one lock because round aggregation reads across
// players, matches and results in a single pass.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	players     map[int64]player.Player
	playerOrder []int64

	leagues     map[int64]league.League
	leagueOrder []int64

	rounds     map[int64]round.Round
	roundOrder []int64
	rosters    map[int64][]int64
	teams      map[int64][]round.TeamAssignment
	awards     map[int64][]round.Award

	matches    map[int64]match.Match
	matchOrder []int64
	results    map[int64][]match.Result

	championships     map[int64]championship.Championship
	championshipOrder []int64
	titleHolders      map[int64][]int64
}

func NewStore() *Store {
	return &Store{
		players: make(map[int64]player.Player),
		leagues: make(map[int64]league.League),
		rounds:  make(map[int64]round.Round),
		rosters: make(map[int64][]int64),
		teams:   make(map[int64][]round.TeamAssignment),
		awards:  make(map[int64][]round.Award),
		matches: make(map[int64]match.Match),
		results: make(map[int64][]match.Result),

		championships: make(map[int64]championship.Championship),
		titleHolders:  make(map[int64][]int64),
	}
}

// callers must hold mu
func (s *Store) nextSequence() int64 {
	s.nextID++
	return s.nextID
}

// callers must hold mu at least for reading
func (s *Store) aggregateTotalsLocked(roundID int64) []round.PlayerTotals {
	roster := append([]int64(nil), s.rosters[roundID]...)
	sort.Slice(roster, func(i, j int) bool { return roster[i] < roster[j] })

	totals := make([]round.PlayerTotals, 0, len(roster))
	index := make(map[int64]int, len(roster))
	for _, playerID := range roster {
		p := s.players[playerID]
		index[playerID] = len(totals)
		totals = append(totals, round.PlayerTotals{
			PlayerID: playerID,
			Name:     p.Name,
			Defends:  p.Defends,
		})
	}

	for _, matchID := range s.matchOrder {
		m := s.matches[matchID]
		if m.RoundID != roundID {
			continue
		}
		for _, row := range s.results[matchID] {
			i, ok := index[row.PlayerID]
			if !ok {
				continue
			}
			totals[i].Stats.Goals += row.Goals
			totals[i].Stats.Assists += row.Assists
			totals[i].Stats.Wins += row.Wins
			totals[i].Stats.Draws += row.Draws
			totals[i].Stats.Losses += row.Losses
			totals[i].Stats.Warnings += row.Warnings
			totals[i].Stats.OwnGoals += row.OwnGoals
			totals[i].Stats.CleanSheets += row.CleanSheets
		}
	}

	return totals
}
