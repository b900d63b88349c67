package postgres

import "time"

type roundTableModel struct {
	ID        int64     `db:"id"`
	LeagueID  int64     `db:"league_id"`
	RoundDate time.Time `db:"round_date"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type roundInsertModel struct {
	LeagueID  int64     `db:"league_id"`
	RoundDate time.Time `db:"round_date"`
	Status    string    `db:"status"`
}

type teamAssignmentRow struct {
	PlayerID   int64 `db:"player_id"`
	TeamNumber int   `db:"team_number"`
}

type awardTableModel struct {
	ID        int64     `db:"id"`
	RoundID   int64     `db:"round_id"`
	PlayerID  int64     `db:"player_id"`
	Kind      string    `db:"kind"`
	Points    float64   `db:"points"`
	CreatedAt time.Time `db:"created_at"`
}

type roundTotalsRow struct {
	PlayerID    int64  `db:"player_id"`
	Name        string `db:"name"`
	Defends     bool   `db:"defends"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	Wins        int    `db:"wins"`
	Draws       int    `db:"draws"`
	Losses      int    `db:"losses"`
	Warnings    int    `db:"warnings"`
	OwnGoals    int    `db:"own_goals"`
	CleanSheets int    `db:"clean_sheets"`
}
