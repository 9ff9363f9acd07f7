// internal/colleges/repository.go
package colleges

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"college-match-workers/internal/scoring"

	"github.com/lib/pq"
)

// Repository reads college admission and aid statistics from PostgreSQL.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const collegeColumns = `
	name, state, campus_setting,
	acceptance_rate, median_gpa, sat_25th, sat_75th,
	tuition_in_state, tuition_out_of_state, tuition_international,
	avg_aid_package, meets_full_need, need_blind_domestic, need_blind_international`

// GetByName loads a single college's stats. Returns sql.ErrNoRows when the
// college is unknown.
func (r *Repository) GetByName(ctx context.Context, name string) (*scoring.UniversityData, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+collegeColumns+`
		FROM colleges WHERE LOWER(name) = LOWER($1)`, name)

	u, err := scanCollege(row)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByNames loads stats for a batch of colleges in one round trip. Colleges
// missing from the table are simply absent from the result; the caller decides
// whether that is an error.
func (r *Repository) GetByNames(ctx context.Context, names []string) (map[string]*scoring.UniversityData, error) {
	if len(names) == 0 {
		return map[string]*scoring.UniversityData{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT`+collegeColumns+`
		FROM colleges WHERE LOWER(name) = ANY($1)`, pq.Array(lowered(names)))
	if err != nil {
		return nil, fmt.Errorf("batch college query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*scoring.UniversityData, len(names))
	for rows.Next() {
		u, err := scanCollege(rows)
		if err != nil {
			return nil, err
		}
		out[u.Name] = u
	}
	return out, rows.Err()
}

// Upsert writes a college record so later lookups are served locally. Used
// to ingest colleges discovered through the Scorecard API.
func (r *Repository) Upsert(ctx context.Context, u *scoring.UniversityData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO colleges (`+collegeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (name) DO UPDATE SET
			state = EXCLUDED.state,
			campus_setting = EXCLUDED.campus_setting,
			acceptance_rate = EXCLUDED.acceptance_rate,
			median_gpa = EXCLUDED.median_gpa,
			sat_25th = EXCLUDED.sat_25th,
			sat_75th = EXCLUDED.sat_75th,
			tuition_in_state = EXCLUDED.tuition_in_state,
			tuition_out_of_state = EXCLUDED.tuition_out_of_state,
			tuition_international = EXCLUDED.tuition_international,
			avg_aid_package = EXCLUDED.avg_aid_package,
			meets_full_need = EXCLUDED.meets_full_need,
			need_blind_domestic = EXCLUDED.need_blind_domestic,
			need_blind_international = EXCLUDED.need_blind_international`,
		u.Name, nullString(u.State), nullString(u.CampusSetting),
		u.AcceptanceRate, u.MedianGPA, u.SAT25th, u.SAT75th,
		u.TuitionInState, u.TuitionOutOfState, u.TuitionInternational,
		u.AvgAidPackage, u.MeetsFullNeed, u.NeedBlindDomestic, u.NeedBlindInternational,
	)
	if err != nil {
		return fmt.Errorf("college upsert: %w", err)
	}
	return nil
}

// MajorRanking returns the college's national ranking for a program, if one
// is recorded.
func (r *Repository) MajorRanking(ctx context.Context, collegeName, major string) (*int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT ranking FROM college_major_rankings
		WHERE LOWER(college_name) = LOWER($1) AND LOWER(major) = LOWER($2)`,
		collegeName, major)

	var ranking int
	switch err := row.Scan(&ranking); err {
	case nil:
		return &ranking, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, fmt.Errorf("major ranking query: %w", err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCollege(row rowScanner) (*scoring.UniversityData, error) {
	var (
		u            scoring.UniversityData
		state        sql.NullString
		campus       sql.NullString
		acceptance   sql.NullFloat64
		medianGPA    sql.NullFloat64
		sat25, sat75 sql.NullInt64
		tuitionIn    sql.NullFloat64
		tuitionOut   sql.NullFloat64
		tuitionIntl  sql.NullFloat64
		avgAid       sql.NullFloat64
	)

	err := row.Scan(
		&u.Name, &state, &campus,
		&acceptance, &medianGPA, &sat25, &sat75,
		&tuitionIn, &tuitionOut, &tuitionIntl,
		&avgAid, &u.MeetsFullNeed, &u.NeedBlindDomestic, &u.NeedBlindInternational,
	)
	if err != nil {
		return nil, err
	}

	// The colleges table carries no per-program data; assume the major is
	// offered until the rankings table says otherwise.
	u.HasMajor = true

	u.State = state.String
	u.CampusSetting = campus.String
	if acceptance.Valid {
		u.AcceptanceRate = &acceptance.Float64
	}
	if medianGPA.Valid {
		u.MedianGPA = &medianGPA.Float64
	}
	if sat25.Valid {
		v := int(sat25.Int64)
		u.SAT25th = &v
	}
	if sat75.Valid {
		v := int(sat75.Int64)
		u.SAT75th = &v
	}
	if tuitionIn.Valid {
		u.TuitionInState = &tuitionIn.Float64
	}
	if tuitionOut.Valid {
		u.TuitionOutOfState = &tuitionOut.Float64
	}
	if tuitionIntl.Valid {
		u.TuitionInternational = &tuitionIntl.Float64
	}
	if avgAid.Valid {
		u.AvgAidPackage = &avgAid.Float64
	}

	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func lowered(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
