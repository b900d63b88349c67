package stats

import (
	"context"

	"github.com/peladahub/pickup-league/internal/domain/round"
)

type Repository interface {
	// ListFinalizedRoundIDs returns the ids of a league's finalized rounds,
	// oldest first. Ranking aggregation fans out over these.
	ListFinalizedRoundIDs(ctx context.Context, leagueID int64) ([]int64, error)

	// AggregateRoundTotals mirrors the round aggregation for one round id;
	// exposed here so stats fan-out does not depend on the round repository.
	AggregateRoundTotals(ctx context.Context, roundID int64) ([]round.PlayerTotals, error)

	// ListAwardTallies counts top/bottom awards per player across a league's
	// finalized rounds.
	ListAwardTallies(ctx context.Context, leagueID int64) ([]AwardTally, error)
}
