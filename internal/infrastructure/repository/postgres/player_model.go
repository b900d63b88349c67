package postgres

import "time"

type playerTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	Defends   bool       `db:"defends"`
	Level     int        `db:"level"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type playerInsertModel struct {
	Name    string `db:"name"`
	Role    string `db:"role"`
	Defends bool   `db:"defends"`
	Level   int    `db:"level"`
}
