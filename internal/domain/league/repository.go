package league

import "context"

type Repository interface {
	Create(ctx context.Context, l League) (League, error)
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	GetByName(ctx context.Context, name string) (League, bool, error)
}
