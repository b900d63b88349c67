package player

import "context"

type Repository interface {
	Create(ctx context.Context, p Player) (Player, error)
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	// GetByName matches case-insensitively; roster sync relies on this to
	// reuse existing players instead of creating near-duplicates.
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Update(ctx context.Context, p Player) error
}
