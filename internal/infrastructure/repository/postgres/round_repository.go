package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/peladahub/pickup-league/internal/domain/player"
	"github.com/peladahub/pickup-league/internal/domain/round"
	"github.com/peladahub/pickup-league/internal/domain/scoring"
	qb "github.com/peladahub/pickup-league/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) Create(ctx context.Context, item round.Round) (round.Round, error) {
	insertModel := roundInsertModel{
		LeagueID:  item.LeagueID,
		RoundDate: item.Date,
		Status:    string(item.Status),
	}

	query, args, err := qb.InsertModel("rounds", insertModel, "RETURNING id")
	if err != nil {
		return round.Round{}, fmt.Errorf("build insert round query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return round.Round{}, round.ErrDuplicateDate
		}
		return round.Round{}, fmt.Errorf("insert round: %w", err)
	}

	return item, nil
}

func (r *RoundRepository) GetByID(ctx context.Context, roundID int64) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round by id query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by id: %w", err)
	}

	return roundFromRow(row), true, nil
}

func (r *RoundRepository) ListByLeague(ctx context.Context, leagueID int64) ([]round.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("round_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds by league query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds by league: %w", err)
	}

	out := make([]round.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) GetByLeagueAndDate(ctx context.Context, leagueID int64, date time.Time) (round.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("round_date", date),
		).
		ToSQL()
	if err != nil {
		return round.Round{}, false, fmt.Errorf("build get round by league and date query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return round.Round{}, false, nil
		}
		return round.Round{}, false, fmt.Errorf("get round by league and date: %w", err)
	}

	return roundFromRow(row), true, nil
}

// ReplaceRoster swaps the round's roster wholesale. Team assignments for
// players dropped from the roster are removed in the same transaction.
func (r *RoundRepository) ReplaceRoster(ctx context.Context, roundID int64, playerIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace roster: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("round_players").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete roster: %w", err)
	}

	if len(playerIDs) == 0 {
		teamsQuery, teamsArgs, err := qb.DeleteFrom("round_teams").
			Where(qb.Eq("round_id", roundID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete team assignments query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, teamsQuery, teamsArgs...); err != nil {
			return fmt.Errorf("delete team assignments: %w", err)
		}
	} else {
		builder := qb.InsertInto("round_players").Columns("round_id", "player_id")
		for _, playerID := range playerIDs {
			builder = builder.Values(roundID, playerID)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert roster: %w", err)
		}

		staleQuery, staleArgs, err := qb.DeleteFrom("round_teams").
			Where(
				qb.Eq("round_id", roundID),
				qb.Expr("NOT (player_id = ANY(?::bigint[]))", pq.Array(playerIDs)),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete stale team assignments query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, staleQuery, staleArgs...); err != nil {
			return fmt.Errorf("delete stale team assignments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace roster tx: %w", err)
	}
	return nil
}

func (r *RoundRepository) ListRoster(ctx context.Context, roundID int64) ([]player.Player, error) {
	query, args, err := qb.Select("p.*").
		From("round_players rp").
		Join("players p", "p.id = rp.player_id").
		Where(qb.Eq("rp.round_id", roundID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *RoundRepository) ReplaceTeamAssignments(ctx context.Context, roundID int64, items []round.TeamAssignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace team assignments: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("round_teams").
		Where(qb.Eq("round_id", roundID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team assignments query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete team assignments: %w", err)
	}

	if len(items) > 0 {
		builder := qb.InsertInto("round_teams").Columns("round_id", "player_id", "team_number")
		for _, item := range items {
			builder = builder.Values(roundID, item.PlayerID, item.TeamNumber)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert team assignments query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert team assignments: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team assignments tx: %w", err)
	}
	return nil
}

func (r *RoundRepository) ListTeamAssignments(ctx context.Context, roundID int64) ([]round.TeamAssignment, error) {
	query, args, err := qb.Select("player_id", "team_number").
		From("round_teams").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("team_number", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team assignments query: %w", err)
	}

	var rows []teamAssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team assignments: %w", err)
	}

	out := make([]round.TeamAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.TeamAssignment{
			PlayerID:   row.PlayerID,
			TeamNumber: row.TeamNumber,
		})
	}
	return out, nil
}

func (r *RoundRepository) AggregateTotals(ctx context.Context, roundID int64) ([]round.PlayerTotals, error) {
	return aggregateRoundTotals(ctx, r.db, roundID)
}

func (r *RoundRepository) ListAwards(ctx context.Context, roundID int64) ([]round.Award, error) {
	query, args, err := qb.Select("*").From("round_awards").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("kind", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list awards query: %w", err)
	}

	var rows []awardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}

	out := make([]round.Award, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.Award{
			ID:       row.ID,
			RoundID:  row.RoundID,
			PlayerID: row.PlayerID,
			Kind:     round.AwardKind(row.Kind),
			Points:   row.Points,
		})
	}
	return out, nil
}

// Finalize performs the terminal transition in one transaction. The round
// row is locked first, so concurrent finalize calls serialize: the winner
// flips the status, the rest see the finalized row and bail out.
func (r *RoundRepository) Finalize(ctx context.Context, roundID int64, engine scoring.Engine) (round.FinalizeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return round.FinalizeResult{}, fmt.Errorf("begin tx finalize round: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	lockQuery, lockArgs, err := qb.Select("*").From("rounds").
		Where(qb.Eq("id", roundID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return round.FinalizeResult{}, fmt.Errorf("build lock round query: %w", err)
	}

	var row roundTableModel
	if err := tx.GetContext(ctx, &row, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return round.FinalizeResult{}, fmt.Errorf("lock round %d: %w", roundID, sql.ErrNoRows)
		}
		return round.FinalizeResult{}, fmt.Errorf("lock round: %w", err)
	}
	if round.Status(row.Status) == round.StatusFinalized {
		return round.FinalizeResult{}, round.ErrAlreadyFinalized
	}

	totals, err := aggregateRoundTotals(ctx, tx, roundID)
	if err != nil {
		return round.FinalizeResult{}, err
	}

	result := round.SelectAwardees(totals, engine)

	if len(result.Top) > 0 || len(result.Bottom) > 0 {
		builder := qb.InsertInto("round_awards").Columns("round_id", "player_id", "kind", "points")
		for _, res := range result.Top {
			builder = builder.Values(roundID, res.PlayerID, string(round.AwardTop), res.Points)
		}
		for _, res := range result.Bottom {
			builder = builder.Values(roundID, res.PlayerID, string(round.AwardBottom), res.Points)
		}
		insertQuery, insertArgs, err := builder.ToSQL()
		if err != nil {
			return round.FinalizeResult{}, fmt.Errorf("build insert awards query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return round.FinalizeResult{}, fmt.Errorf("insert awards: %w", err)
		}
	}

	updateQuery, updateArgs, err := qb.Update("rounds").
		Set("status", string(round.StatusFinalized)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", roundID)).
		ToSQL()
	if err != nil {
		return round.FinalizeResult{}, fmt.Errorf("build finalize round query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return round.FinalizeResult{}, fmt.Errorf("finalize round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return round.FinalizeResult{}, fmt.Errorf("commit finalize round tx: %w", err)
	}
	return result, nil
}

func roundFromRow(row roundTableModel) round.Round {
	return round.Round{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		Date:     row.RoundDate,
		Status:   round.Status(row.Status),
	}
}
