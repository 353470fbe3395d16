package postgres

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
	"github.com/riskibarqy/wrestling-roster/internal/domain/team"
)

const teamMemberColumns = `team_name, position, kind, member_id, last_name, first_name, gender, school,
years_of_experience, coach_type, birthdate, weight, wins, losses, total_points, wins_by_pin, status,
uniform_signed_out`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM teams ORDER BY created_at, name`); err != nil {
		return nil, crerr.Wrap(err, "select archived teams")
	}

	return names, nil
}

func (r *TeamRepository) Get(ctx context.Context, name string) (*team.Team, bool, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row, `SELECT name, file_path, created_at, updated_at FROM teams WHERE name = $1`, name)
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "select team %q", name)
	}

	var members []teamMemberTableModel
	query := `SELECT ` + teamMemberColumns + ` FROM team_members WHERE team_name = $1 ORDER BY position`
	if err := r.db.SelectContext(ctx, &members, query, name); err != nil {
		return nil, false, crerr.Wrapf(err, "select members of team %q", name)
	}

	item := team.New(row.Name)
	item.FilePath = row.FilePath.String
	for _, m := range members {
		decoded, err := memberFromRow(m)
		if err != nil {
			return nil, false, crerr.Wrapf(err, "team %q position %d", name, m.Position)
		}
		if err := item.AddMember(decoded.Kind(), decoded); err != nil {
			return nil, false, crerr.Wrapf(err, "team %q position %d", name, m.Position)
		}
	}

	return item, true, nil
}

// Save replaces the archived copy of the team, members included, in a single
// transaction.
func (r *TeamRepository) Save(ctx context.Context, item *team.Team) error {
	if item == nil || strings.TrimSpace(item.Name) == "" {
		return crerr.New("team name is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx save team")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO teams (name, file_path)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET
    file_path = EXCLUDED.file_path,
    updated_at = NOW()`, item.Name, nullString(item.FilePath)); err != nil {
		return crerr.Wrapf(err, "upsert team %q", item.Name)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM team_members WHERE team_name = $1`, item.Name); err != nil {
		return crerr.Wrapf(err, "clear members of team %q", item.Name)
	}

	for position, m := range item.All() {
		row := memberToRow(item.Name, position, m)
		query, args, err := sqlx.Named(`
INSERT INTO team_members (`+teamMemberColumns+`)
VALUES (:team_name, :position, :kind, :member_id, :last_name, :first_name, :gender, :school,
:years_of_experience, :coach_type, :birthdate, :weight, :wins, :losses, :total_points, :wins_by_pin,
:status, :uniform_signed_out)`, row)
		if err != nil {
			return crerr.Wrapf(err, "bind member %d of team %q", position, item.Name)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return crerr.Wrapf(err, "insert member %d of team %q", position, item.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit save team")
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE name = $1`, name); err != nil {
		return crerr.Wrapf(err, "delete team %q", name)
	}
	return nil
}

func memberToRow(teamName string, position int, m *member.Member) teamMemberTableModel {
	row := teamMemberTableModel{
		TeamName:          teamName,
		Position:          position,
		Kind:              string(m.Kind()),
		MemberID:          m.ID,
		LastName:          m.LastName,
		FirstName:         m.FirstName,
		Gender:            m.Gender.String(),
		School:            m.School,
		YearsOfExperience: m.YearsOfExperience,
	}

	switch m.Kind() {
	case member.KindCoach:
		row.CoachType = nullString(m.Coach.Type.String())
	case member.KindWrestler:
		w := m.Wrestler
		row.Birthdate.Time, row.Birthdate.Valid = w.Birthdate, !w.Birthdate.IsZero()
		row.Weight.Float64, row.Weight.Valid = w.Weight, true
		row.Wins = nullInt(w.Wins)
		row.Losses = nullInt(w.Losses)
		row.TotalPoints = nullInt(w.TotalPoints)
		row.WinsByPin = nullInt(w.WinsByPin)
		row.Status = nullString(w.Status.String())
		row.UniformSignedOut.Bool, row.UniformSignedOut.Valid = w.UniformSignedOut, true
	}

	return row
}

func memberFromRow(row teamMemberTableModel) (*member.Member, error) {
	gender, err := member.ParseGender(row.Gender)
	if err != nil {
		return nil, err
	}
	base := member.Base{
		ID:                row.MemberID,
		FirstName:         row.FirstName,
		LastName:          row.LastName,
		Gender:            gender,
		School:            row.School,
		YearsOfExperience: row.YearsOfExperience,
	}

	kind, err := member.ParseKind(row.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case member.KindCoach:
		coachType, err := member.ParseCoachType(row.CoachType.String)
		if err != nil {
			return nil, err
		}
		return member.NewCoach(base, member.Coach{Type: coachType}), nil
	default:
		status, err := member.ParseWrestlerStatus(row.Status.String)
		if err != nil {
			return nil, err
		}
		return member.NewWrestler(base, member.Wrestler{
			Birthdate:        row.Birthdate.Time,
			Weight:           row.Weight.Float64,
			Wins:             int(row.Wins.Int64),
			Losses:           int(row.Losses.Int64),
			TotalPoints:      int(row.TotalPoints.Int64),
			WinsByPin:        int(row.WinsByPin.Int64),
			Status:           status,
			UniformSignedOut: row.UniformSignedOut.Bool,
		}), nil
	}
}
