package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	Name      string         `db:"name"`
	FilePath  sql.NullString `db:"file_path"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// teamMemberTableModel holds one roster entry. Coach and wrestler columns are
// NULL for the other kind.
type teamMemberTableModel struct {
	TeamName          string          `db:"team_name"`
	Position          int             `db:"position"`
	Kind              string          `db:"kind"`
	MemberID          string          `db:"member_id"`
	LastName          string          `db:"last_name"`
	FirstName         string          `db:"first_name"`
	Gender            string          `db:"gender"`
	School            string          `db:"school"`
	YearsOfExperience int             `db:"years_of_experience"`
	CoachType         sql.NullString  `db:"coach_type"`
	Birthdate         sql.NullTime    `db:"birthdate"`
	Weight            sql.NullFloat64 `db:"weight"`
	Wins              sql.NullInt64   `db:"wins"`
	Losses            sql.NullInt64   `db:"losses"`
	TotalPoints       sql.NullInt64   `db:"total_points"`
	WinsByPin         sql.NullInt64   `db:"wins_by_pin"`
	Status            sql.NullString  `db:"status"`
	UniformSignedOut  sql.NullBool    `db:"uniform_signed_out"`
}
