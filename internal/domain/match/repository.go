package match

import "context"

type Repository interface {
	Create(ctx context.Context, m Match) (Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	ListByRound(ctx context.Context, roundID int64) ([]Match, error)
	ListResults(ctx context.Context, matchID int64) ([]Result, error)

	// ReplaceResult closes a match in one transaction: update the match's
	// score, duration and team numbers, drop every existing ledger row for
	// the match, insert the supplied rows. Re-invocation replaces, never
	// accumulates.
	ReplaceResult(ctx context.Context, m Match, rows []Result) error

	// RegisterOwnGoal bumps the benefiting side's score and the player's
	// own-goal counter in one transaction. When the player has no ledger row
	// yet, a minimal row is inserted on playerSide with own goals = 1.
	RegisterOwnGoal(ctx context.Context, matchID, playerID int64, scoringSide, playerSide int) error
}
