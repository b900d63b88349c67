package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	qb "github.com/peladahub/pickup-league/internal/platform/querybuilder"
)

// aggregateRoundTotals sums the match result ledger per rostered player.
// Rostered players with no ledger rows still come back, with zero stats.
// It runs against either the pool or an open transaction.
func aggregateRoundTotals(ctx context.Context, q sqlx.QueryerContext, roundID int64) ([]round.PlayerTotals, error) {
	query, args, err := qb.Select(
		"p.id AS player_id",
		"p.name AS name",
		"p.defends AS defends",
		"COALESCE(SUM(mr.goals), 0) AS goals",
		"COALESCE(SUM(mr.assists), 0) AS assists",
		"COALESCE(SUM(mr.wins), 0) AS wins",
		"COALESCE(SUM(mr.draws), 0) AS draws",
		"COALESCE(SUM(mr.losses), 0) AS losses",
		"COALESCE(SUM(mr.warnings), 0) AS warnings",
		"COALESCE(SUM(mr.own_goals), 0) AS own_goals",
		"COALESCE(SUM(mr.clean_sheets), 0) AS clean_sheets",
	).
		From("round_players rp").
		Join("players p", "p.id = rp.player_id").
		LeftJoin("matches m", "m.round_id = rp.round_id").
		LeftJoin("match_results mr", "mr.match_id = m.id AND mr.player_id = rp.player_id").
		Where(qb.Eq("rp.round_id", roundID)).
		GroupBy("p.id", "p.name", "p.defends").
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build aggregate round totals query: %w", err)
	}

	var rows []roundTotalsRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate round totals: %w", err)
	}

	out := make([]round.PlayerTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.PlayerTotals{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Defends:  row.Defends,
			Stats: scoring.StatLine{
				Goals:       row.Goals,
				Assists:     row.Assists,
				Wins:        row.Wins,
				Draws:       row.Draws,
				Losses:      row.Losses,
				Warnings:    row.Warnings,
				OwnGoals:    row.OwnGoals,
				CleanSheets: row.CleanSheets,
			},
		})
	}
	return out, nil
}
