package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/peladahub/pickup-league/internal/domain/match"
	qb "github.com/peladahub/pickup-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	insertModel := matchInsertModel{
		RoundID:         m.RoundID,
		Score1:          m.Score1,
		Score2:          m.Score2,
		DurationSeconds: m.DurationSeconds,
		Team1Number:     m.Team1Number,
		Team2Number:     m.Team2Number,
	}

	query, args, err := qb.InsertModel("matches", insertModel, "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&m.ID); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return m, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByRound(ctx context.Context, roundID int64) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by round query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches by round: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) ListResults(ctx context.Context, matchID int64) ([]match.Result, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match results query: %w", err)
	}

	var rows []matchResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match results: %w", err)
	}

	out := make([]match.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

// ReplaceResult rewrites the match and its ledger rows atomically. Recording
// twice replaces the first recording instead of stacking on top of it.
func (r *MatchRepository) ReplaceResult(ctx context.Context, m match.Match, rows []match.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("matches").
		Set("score1", m.Score1).
		Set("score2", m.Score2).
		Set("duration_seconds", m.DurationSeconds).
		Set("team1_number", m.Team1Number).
		Set("team2_number", m.Team2Number).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match %d: %w", m.ID, sql.ErrNoRows)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("match_results").
		Where(qb.Eq("match_id", m.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete match results: %w", err)
	}

	for _, row := range rows {
		insertModel := matchResultInsertModel{
			MatchID:     m.ID,
			PlayerID:    row.PlayerID,
			TeamLabel:   row.TeamLabel,
			Goals:       row.Goals,
			Assists:     row.Assists,
			Wins:        row.Wins,
			Draws:       row.Draws,
			Losses:      row.Losses,
			Warnings:    row.Warnings,
			OwnGoals:    row.OwnGoals,
			CleanSheets: row.CleanSheets,
		}
		insertQuery, insertArgs, err := qb.InsertModel("match_results", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert match result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert match result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match result tx: %w", err)
	}
	return nil
}

// RegisterOwnGoal credits the benefiting side with a goal and bumps the
// scorer's own-goal counter in one transaction. A player without a ledger
// row yet gets a minimal one on their own side.
func (r *MatchRepository) RegisterOwnGoal(ctx context.Context, matchID, playerID int64, scoringSide, playerSide int) error {
	scoreColumn := "score1"
	if scoringSide == 2 {
		scoreColumn = "score2"
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx register own goal: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("matches").
		SetExpr(scoreColumn, scoreColumn+" + 1").
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build bump match score query: %w", err)
	}

	res, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return fmt.Errorf("bump match score: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("bump match score %d: %w", matchID, sql.ErrNoRows)
	}

	upsertQuery, upsertArgs, err := qb.InsertInto("match_results").
		Columns("match_id", "player_id", "team_label", "own_goals").
		Values(matchID, playerID, match.SideLabel(playerSide), 1).
		Suffix(`ON CONFLICT (match_id, player_id)
DO UPDATE SET
    own_goals = match_results.own_goals + 1,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert own goal query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("upsert own goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register own goal tx: %w", err)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:              row.ID,
		RoundID:         row.RoundID,
		Score1:          row.Score1,
		Score2:          row.Score2,
		DurationSeconds: row.DurationSeconds,
		Team1Number:     row.Team1Number,
		Team2Number:     row.Team2Number,
	}
}

func resultFromRow(row matchResultTableModel) match.Result {
	return match.Result{
		ID:          row.ID,
		MatchID:     row.MatchID,
		PlayerID:    row.PlayerID,
		TeamLabel:   row.TeamLabel,
		Goals:       row.Goals,
		Assists:     row.Assists,
		Wins:        row.Wins,
		Draws:       row.Draws,
		Losses:      row.Losses,
		Warnings:    row.Warnings,
		OwnGoals:    row.OwnGoals,
		CleanSheets: row.CleanSheets,
	}
}
