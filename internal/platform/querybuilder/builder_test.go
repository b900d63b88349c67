package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("role", "player"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE role = $1 AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "player" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderJoins(t *testing.T) {
	query, args, err := Select("rp.player_id", "COALESCE(SUM(mr.goals), 0) AS goals").
		From("round_players rp").
		LeftJoin("matches m", "m.round_id = rp.round_id").
		LeftJoin("match_results mr", "mr.match_id = m.id AND mr.player_id = rp.player_id").
		Where(Eq("rp.round_id", int64(7))).
		GroupBy("rp.player_id").
		OrderBy("rp.player_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT rp.player_id, COALESCE(SUM(mr.goals), 0) AS goals " +
		"FROM round_players rp " +
		"LEFT JOIN matches m ON m.round_id = rp.round_id " +
		"LEFT JOIN match_results mr ON mr.match_id = m.id AND mr.player_id = rp.player_id " +
		"WHERE rp.round_id = $1 GROUP BY rp.player_id ORDER BY rp.player_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("leagues").
		Columns("name", "start_date").
		Values("Sunday League", "2026-01-04").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO leagues (name, start_date) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Sunday League" || args[1] != "2026-01-04" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderMultiRow(t *testing.T) {
	query, args, err := InsertInto("round_players").
		Columns("round_id", "player_id").
		Values(int64(1), int64(10)).
		Values(int64(1), int64(11)).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO round_players (round_id, player_id) VALUES ($1, $2), ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("name", "new").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET name = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "new" || args[1] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("match_results").
		Where(Eq("match_id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM match_results WHERE match_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != int64(9) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("match_results").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}
}

func TestExprConditionPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("rounds").
		Where(Eq("league_id", int64(2)), Expr("round_date >= ? AND round_date <= ?", "2026-01-01", "2026-12-31")).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM rounds WHERE league_id = $1 AND round_date >= $2 AND round_date <= $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
