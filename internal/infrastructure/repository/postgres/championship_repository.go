package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/peladahub/pickup-league/internal/domain/championship"
	qb "github.com/peladahub/pickup-league/internal/platform/querybuilder"
)

type ChampionshipRepository struct {
	db *sqlx.DB
}

func NewChampionshipRepository(db *sqlx.DB) *ChampionshipRepository {
	return &ChampionshipRepository{db: db}
}

func (r *ChampionshipRepository) Create(ctx context.Context, c championship.Championship) (championship.Championship, error) {
	insertModel := championshipInsertModel{
		Name:    c.Name,
		CupDate: c.Date,
	}

	query, args, err := qb.InsertModel("championships", insertModel, "RETURNING id")
	if err != nil {
		return championship.Championship{}, fmt.Errorf("build insert championship query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return championship.Championship{}, fmt.Errorf("insert championship: %w", err)
	}

	return c, nil
}

func (r *ChampionshipRepository) List(ctx context.Context) ([]championship.Championship, error) {
	query, args, err := qb.Select("*").From("championships").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list championships query: %w", err)
	}

	var rows []championshipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list championships: %w", err)
	}

	out := make([]championship.Championship, 0, len(rows))
	for _, row := range rows {
		out = append(out, championshipFromRow(row))
	}
	return out, nil
}

func (r *ChampionshipRepository) GetByID(ctx context.Context, championshipID int64) (championship.Championship, bool, error) {
	query, args, err := qb.Select("*").From("championships").
		Where(
			qb.Eq("id", championshipID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return championship.Championship{}, false, fmt.Errorf("build get championship by id query: %w", err)
	}

	var row championshipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return championship.Championship{}, false, nil
		}
		return championship.Championship{}, false, fmt.Errorf("get championship by id: %w", err)
	}

	return championshipFromRow(row), true, nil
}

func (r *ChampionshipRepository) AddWinners(ctx context.Context, championshipID int64, playerIDs []int64) error {
	if len(playerIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx add winners: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	builder := qb.InsertInto("championship_winners").Columns("championship_id", "player_id")
	for _, playerID := range playerIDs {
		builder = builder.Values(championshipID, playerID)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert winners query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return championship.ErrDuplicateWinner
		}
		return fmt.Errorf("insert winners: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add winners tx: %w", err)
	}
	return nil
}

func (r *ChampionshipRepository) TitleCounts(ctx context.Context) ([]championship.TitleCount, error) {
	query, args, err := qb.Select(
		"p.id AS player_id",
		"p.name AS name",
		"COUNT(cw.id) AS titles",
	).
		From("championship_winners cw").
		Join("players p", "p.id = cw.player_id").
		GroupBy("p.id", "p.name").
		OrderBy("titles DESC", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build title counts query: %w", err)
	}

	var rows []titleCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}

	out := make([]championship.TitleCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, championship.TitleCount{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Titles:   row.Titles,
		})
	}
	return out, nil
}

func championshipFromRow(row championshipTableModel) championship.Championship {
	return championship.Championship{
		ID:   row.ID,
		Name: row.Name,
		Date: row.CupDate,
	}
}
