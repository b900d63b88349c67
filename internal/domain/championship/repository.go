package championship

import "context"

type Repository interface {
	Create(ctx context.Context, c Championship) (Championship, error)
	List(ctx context.Context) ([]Championship, error)
	GetByID(ctx context.Context, championshipID int64) (Championship, bool, error)
	// AddWinners credits one title per listed player in a single
	// transaction. A player already credited for the championship makes
	// the whole call fail with ErrDuplicateWinner.
	AddWinners(ctx context.Context, championshipID int64, playerIDs []int64) error
	// TitleCounts returns every player holding at least one title,
	// most titles first.
	TitleCounts(ctx context.Context) ([]TitleCount, error)
}
