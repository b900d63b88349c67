package postgres

import "time"

type championshipTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	CupDate   time.Time  `db:"cup_date"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type championshipInsertModel struct {
	Name    string    `db:"name"`
	CupDate time.Time `db:"cup_date"`
}

type titleCountRow struct {
	PlayerID int64  `db:"player_id"`
	Name     string `db:"name"`
	Titles   int    `db:"titles"`
}
