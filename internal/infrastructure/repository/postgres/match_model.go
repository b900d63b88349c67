package postgres

import "time"

type matchTableModel struct {
	ID              int64     `db:"id"`
	RoundID         int64     `db:"round_id"`
	Score1          int       `db:"score1"`
	Score2          int       `db:"score2"`
	DurationSeconds int       `db:"duration_seconds"`
	Team1Number     int       `db:"team1_number"`
	Team2Number     int       `db:"team2_number"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	RoundID         int64 `db:"round_id"`
	Score1          int   `db:"score1"`
	Score2          int   `db:"score2"`
	DurationSeconds int   `db:"duration_seconds"`
	Team1Number     int   `db:"team1_number"`
	Team2Number     int   `db:"team2_number"`
}

type matchResultTableModel struct {
	ID          int64     `db:"id"`
	MatchID     int64     `db:"match_id"`
	PlayerID    int64     `db:"player_id"`
	TeamLabel   string    `db:"team_label"`
	Goals       int       `db:"goals"`
	Assists     int       `db:"assists"`
	Wins        int       `db:"wins"`
	Draws       int       `db:"draws"`
	Losses      int       `db:"losses"`
	Warnings    int       `db:"warnings"`
	OwnGoals    int       `db:"own_goals"`
	CleanSheets int       `db:"clean_sheets"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type matchResultInsertModel struct {
	MatchID     int64  `db:"match_id"`
	PlayerID    int64  `db:"player_id"`
	TeamLabel   string `db:"team_label"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	Wins        int    `db:"wins"`
	Draws       int    `db:"draws"`
	Losses      int    `db:"losses"`
	Warnings    int    `db:"warnings"`
	OwnGoals    int    `db:"own_goals"`
	CleanSheets int    `db:"clean_sheets"`
}
