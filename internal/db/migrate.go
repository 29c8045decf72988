package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillGradePoints(db); err != nil {
		return fmt.Errorf("backfilling grade points: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id                           TEXT PRIMARY KEY,
		name                         TEXT NOT NULL,
		email                        TEXT NOT NULL DEFAULT '',
		is_international             INTEGER NOT NULL DEFAULT 0,
		sevis_updated                INTEGER NOT NULL DEFAULT 0,
		diploma_name                 TEXT NOT NULL DEFAULT '',
		diploma_name_verified        INTEGER NOT NULL DEFAULT 0,
		mailing_address_confirmed    INTEGER NOT NULL DEFAULT 0,
		major_declared               INTEGER NOT NULL DEFAULT 0,
		minor_declared               INTEGER NOT NULL DEFAULT 0,
		financial_balance            REAL NOT NULL DEFAULT 0,
		library_clearance            INTEGER NOT NULL DEFAULT 0,
		department_clearance         INTEGER NOT NULL DEFAULT 0,
		has_federal_loans            INTEGER NOT NULL DEFAULT 0,
		exit_counseling_completed    INTEGER NOT NULL DEFAULT 0,
		academic_integrity_violation INTEGER NOT NULL DEFAULT 0,
		on_academic_plan             INTEGER NOT NULL DEFAULT 0,
		academic_plan_requirements   TEXT NOT NULL DEFAULT '[]',
		created_at                   TEXT NOT NULL,
		updated_at                   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS programs (
		id                     TEXT PRIMARY KEY,
		code                   TEXT NOT NULL UNIQUE,
		name                   TEXT NOT NULL,
		total_credits_required REAL NOT NULL DEFAULT 0,
		overall_gpa_required   REAL,
		major_gpa_required     REAL,
		created_at             TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS degree_requirements (
		id              TEXT PRIMARY KEY,
		program_id      TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		category        TEXT NOT NULL DEFAULT '',
		display_order   INTEGER NOT NULL DEFAULT 0,
		minimum_credits REAL,
		minimum_courses INTEGER,
		minimum_gpa     REAL,
		allow_sharing   INTEGER NOT NULL DEFAULT 0,
		courses_json    TEXT NOT NULL DEFAULT '[]',
		groups_json     TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_requirements_program ON degree_requirements(program_id, display_order)`,

	`CREATE TABLE IF NOT EXISTS student_programs (
		id         TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		program_id TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','completed','withdrawn')),
		created_at TEXT NOT NULL,
		UNIQUE(student_id, program_id)
	)`,

	`CREATE TABLE IF NOT EXISTS student_courses (
		id            TEXT PRIMARY KEY,
		student_id    TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id     TEXT NOT NULL,
		course_code   TEXT NOT NULL DEFAULT '',
		title         TEXT NOT NULL DEFAULT '',
		subject_code  TEXT NOT NULL DEFAULT '',
		course_number TEXT NOT NULL DEFAULT '',
		credits       REAL NOT NULL DEFAULT 0,
		grade         TEXT,
		grade_points  REAL,
		status        TEXT NOT NULL
		              CHECK(status IN ('completed','in_progress','withdrawn','failed')),
		source        TEXT NOT NULL DEFAULT 'registration'
		              CHECK(source IN ('registration','transfer','test_credit')),
		term_id       TEXT NOT NULL DEFAULT '',
		attributes    TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_student_courses_student ON student_courses(student_id)`,

	`CREATE TABLE IF NOT EXISTS holds (
		id                TEXT PRIMARY KEY,
		student_id        TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		type              TEXT NOT NULL,
		reason            TEXT NOT NULL DEFAULT '',
		blocks_graduation INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id         TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		required   INTEGER NOT NULL DEFAULT 1,
		completed  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS standing_history (
		id                          TEXT PRIMARY KEY,
		student_id                  TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		term_id                     TEXT NOT NULL,
		standing                    TEXT NOT NULL
		                            CHECK(standing IN ('good_standing','academic_warning','academic_probation',
		                                               'academic_suspension','academic_dismissal','reinstated')),
		cumulative_gpa              REAL NOT NULL DEFAULT 0,
		term_gpa                    REAL,
		consecutive_probation_terms INTEGER NOT NULL DEFAULT 0,
		total_probation_terms       INTEGER NOT NULL DEFAULT 0,
		total_suspensions           INTEGER NOT NULL DEFAULT 0,
		reason                      TEXT NOT NULL DEFAULT '',
		recorded_at                 TEXT NOT NULL,
		UNIQUE(student_id, term_id)
	)`,

	`CREATE TABLE IF NOT EXISTS sap_history (
		id                TEXT PRIMARY KEY,
		student_id        TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		term_id           TEXT NOT NULL,
		status            TEXT NOT NULL
		                  CHECK(status IN ('satisfactory','warning','probation','academic_plan','suspension','ineligible')),
		eligible_for_aid  INTEGER NOT NULL DEFAULT 0,
		gpa_met           INTEGER NOT NULL DEFAULT 0,
		pace_met          INTEGER NOT NULL DEFAULT 0,
		timeframe_met     INTEGER NOT NULL DEFAULT 0,
		attempted_credits REAL NOT NULL DEFAULT 0,
		earned_credits    REAL NOT NULL DEFAULT 0,
		cumulative_gpa    REAL,
		reason            TEXT NOT NULL DEFAULT '',
		recorded_at       TEXT NOT NULL,
		UNIQUE(student_id, term_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_standing_history_student ON standing_history(student_id, recorded_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sap_history_student ON sap_history(student_id, recorded_at)`,

	`CREATE TABLE IF NOT EXISTS conferrals (
		id                 TEXT PRIMARY KEY,
		student_program_id TEXT NOT NULL UNIQUE REFERENCES student_programs(id) ON DELETE CASCADE,
		honors             TEXT NOT NULL DEFAULT 'none',
		conferred_at       TEXT NOT NULL
	)`,

	// SAP appeal decisions arrived after the first student import format.
	`ALTER TABLE students ADD COLUMN sap_appeal_approved INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillGradePoints fills grade_points for graded rows imported
// without them, using the standard grade scale. Grades the scale does not
// know (P, CR, TR) stay NULL. Idempotent.
func migrateBackfillGradePoints(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT id, grade FROM student_courses WHERE grade IS NOT NULL AND grade != '' AND grade_points IS NULL`)
	if err != nil {
		return fmt.Errorf("listing ungraded rows: %w", err)
	}
	type pending struct {
		id     string
		points float64
	}
	var updates []pending
	for rows.Next() {
		var id, grade string
		if err := rows.Scan(&id, &grade); err != nil {
			rows.Close()
			return fmt.Errorf("scanning course row: %w", err)
		}
		if pts, ok := domain.StandardGradeScale.Points(grade); ok {
			updates = append(updates, pending{id: id, points: pts})
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating course rows: %w", err)
	}
	rows.Close()

	for _, u := range updates {
		if _, err := db.ExecContext(ctx,
			`UPDATE student_courses SET grade_points = ? WHERE id = ? AND grade_points IS NULL`, u.points, u.id); err != nil {
			return fmt.Errorf("updating grade points for %s: %w", u.id, err)
		}
	}
	return nil
}
