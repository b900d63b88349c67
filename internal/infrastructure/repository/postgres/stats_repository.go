package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/stats"
	qb "github.com/peladahub/pickup-league/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListFinalizedRoundIDs(ctx context.Context, leagueID int64) ([]int64, error) {
	query, args, err := qb.Select("id").From("rounds").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", string(round.StatusFinalized)),
		).
		OrderBy("round_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list finalized rounds query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list finalized rounds: %w", err)
	}
	return ids, nil
}

func (r *StatsRepository) AggregateRoundTotals(ctx context.Context, roundID int64) ([]round.PlayerTotals, error) {
	return aggregateRoundTotals(ctx, r.db, roundID)
}

type awardTallyRow struct {
	PlayerID int64  `db:"player_id"`
	Name     string `db:"name"`
	Top      int    `db:"top_awards"`
	Bottom   int    `db:"bottom_awards"`
}

func (r *StatsRepository) ListAwardTallies(ctx context.Context, leagueID int64) ([]stats.AwardTally, error) {
	query, args, err := qb.Select(
		"p.id AS player_id",
		"p.name AS name",
		"COALESCE(SUM(CASE WHEN ra.kind = 'top' THEN 1 ELSE 0 END), 0) AS top_awards",
		"COALESCE(SUM(CASE WHEN ra.kind = 'bottom' THEN 1 ELSE 0 END), 0) AS bottom_awards",
	).
		From("round_awards ra").
		Join("rounds r", "r.id = ra.round_id").
		Join("players p", "p.id = ra.player_id").
		Where(qb.Eq("r.league_id", leagueID)).
		GroupBy("p.id", "p.name").
		OrderBy("top_awards DESC", "bottom_awards", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list award tallies query: %w", err)
	}

	var rows []awardTallyRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list award tallies: %w", err)
	}

	out := make([]stats.AwardTally, 0, len(rows))
	for _, row := range rows {
		out = append(out, stats.AwardTally{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Top:      row.Top,
			Bottom:   row.Bottom,
		})
	}
	return out, nil
}
