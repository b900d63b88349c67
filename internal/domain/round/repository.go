package round

import (
	"context"
	"time"

	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
)

type Repository interface {
	Create(ctx context.Context, r Round) (Round, error)
	GetByID(ctx context.Context, roundID int64) (Round, bool, error)
	ListByLeague(ctx context.Context, leagueID int64) ([]Round, error)
	GetByLeagueAndDate(ctx context.Context, leagueID int64, date time.Time) (Round, bool, error)

	ReplaceRoster(ctx context.Context, roundID int64, playerIDs []int64) error
	ListRoster(ctx context.Context, roundID int64) ([]player.Player, error)

	ReplaceTeamAssignments(ctx context.Context, roundID int64, items []TeamAssignment) error
	ListTeamAssignments(ctx context.Context, roundID int64) ([]TeamAssignment, error)

	// AggregateTotals joins the roster against the match result ledger and
	// returns one summed stat line per rostered player. Read-only.
	AggregateTotals(ctx context.Context, roundID int64) ([]PlayerTotals, error)

	ListAwards(ctx context.Context, roundID int64) ([]Award, error)

	// Finalize runs the whole terminal transition in one transaction: lock
	// the round row, reject if missing or already finalized, aggregate, score
	// with the given engine, insert top/bottom awards, flip the status.
	// Concurrent callers serialize on the row lock; exactly one wins, the
	// rest observe ErrAlreadyFinalized.
	Finalize(ctx context.Context, roundID int64, engine scoring.Engine) (FinalizeResult, error)
}
