package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteStandingHistoryRepo implements StandingHistoryRepo using a SQLite database.
type SQLiteStandingHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteStandingHistoryRepo(conn db.DBTX) *SQLiteStandingHistoryRepo {
	return &SQLiteStandingHistoryRepo{db: conn}
}

func (r *SQLiteStandingHistoryRepo) Record(ctx context.Context, e *domain.StandingHistoryEntry) error {
	query := `INSERT INTO standing_history (id, student_id, term_id, standing, cumulative_gpa, term_gpa,
		consecutive_probation_terms, total_probation_terms, total_suspensions, reason, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id, term_id) DO UPDATE SET
			standing = excluded.standing,
			cumulative_gpa = excluded.cumulative_gpa,
			term_gpa = excluded.term_gpa,
			consecutive_probation_terms = excluded.consecutive_probation_terms,
			total_probation_terms = excluded.total_probation_terms,
			total_suspensions = excluded.total_suspensions,
			reason = excluded.reason`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.StudentID,
		e.TermID,
		string(e.Standing),
		e.CumulativeGPA,
		nullableFloat(e.TermGPA),
		e.ConsecutiveProbationTerms,
		e.TotalProbationTerms,
		e.TotalSuspensions,
		e.Reason,
		formatTime(e.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("recording standing history: %w", err)
	}
	return nil
}

// ListByStudent returns entries in the order their terms were first
// recorded, the order the standing evaluator expects. Recording a term again
// updates it in place and keeps its recorded_at.
func (r *SQLiteStandingHistoryRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.StandingHistoryEntry, error) {
	query := `SELECT id, student_id, term_id, standing, cumulative_gpa, term_gpa,
		consecutive_probation_terms, total_probation_terms, total_suspensions, reason, recorded_at
		FROM standing_history WHERE student_id = ? ORDER BY recorded_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing standing history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StandingHistoryEntry
	for rows.Next() {
		var e domain.StandingHistoryEntry
		var standing, recordedAt string
		var termGPA sql.NullFloat64
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.TermID, &standing, &e.CumulativeGPA, &termGPA,
			&e.ConsecutiveProbationTerms, &e.TotalProbationTerms, &e.TotalSuspensions, &e.Reason, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning standing history row: %w", err)
		}
		e.Standing = domain.Standing(standing)
		e.TermGPA = floatPtr(termGPA)
		if e.RecordedAt, err = parseTime(recordedAt, "recorded_at"); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating standing history: %w", err)
	}
	return entries, nil
}

// SQLiteSapHistoryRepo implements SapHistoryRepo using a SQLite database.
type SQLiteSapHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteSapHistoryRepo(conn db.DBTX) *SQLiteSapHistoryRepo {
	return &SQLiteSapHistoryRepo{db: conn}
}

const sapHistoryColumns = `id, student_id, term_id, status, eligible_for_aid, gpa_met, pace_met, timeframe_met,
	attempted_credits, earned_credits, cumulative_gpa, reason, recorded_at`

func (r *SQLiteSapHistoryRepo) Record(ctx context.Context, e *domain.SapHistoryEntry) error {
	query := `INSERT INTO sap_history (` + sapHistoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id, term_id) DO UPDATE SET
			status = excluded.status,
			eligible_for_aid = excluded.eligible_for_aid,
			gpa_met = excluded.gpa_met,
			pace_met = excluded.pace_met,
			timeframe_met = excluded.timeframe_met,
			attempted_credits = excluded.attempted_credits,
			earned_credits = excluded.earned_credits,
			cumulative_gpa = excluded.cumulative_gpa,
			reason = excluded.reason`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.StudentID,
		e.TermID,
		string(e.Status),
		boolToInt(e.EligibleForAid),
		boolToInt(e.GPAMet),
		boolToInt(e.PaceMet),
		boolToInt(e.TimeframeMet),
		e.AttemptedCredits,
		e.EarnedCredits,
		nullableFloat(e.CumulativeGPA),
		e.Reason,
		formatTime(e.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("recording sap history: %w", err)
	}
	return nil
}

func (r *SQLiteSapHistoryRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.SapHistoryEntry, error) {
	query := `SELECT ` + sapHistoryColumns + ` FROM sap_history WHERE student_id = ? ORDER BY recorded_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing sap history: %w", err)
	}
	defer rows.Close()

	var entries []domain.SapHistoryEntry
	for rows.Next() {
		e, err := scanSapEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sap history: %w", err)
	}
	return entries, nil
}

func (r *SQLiteSapHistoryRepo) Latest(ctx context.Context, studentID string) (*domain.SapHistoryEntry, error) {
	query := `SELECT ` + sapHistoryColumns + ` FROM sap_history WHERE student_id = ?
		ORDER BY recorded_at DESC, rowid DESC LIMIT 1`
	e, err := scanSapEntry(r.db.QueryRowContext(ctx, query, studentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sap history for %s: %w", studentID, ErrNotFound)
	}
	return e, err
}

func scanSapEntry(row scanner) (*domain.SapHistoryEntry, error) {
	var e domain.SapHistoryEntry
	var status, recordedAt string
	var eligible, gpaMet, paceMet, timeframeMet int
	var gpa sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.StudentID, &e.TermID, &status, &eligible, &gpaMet, &paceMet, &timeframeMet,
		&e.AttemptedCredits, &e.EarnedCredits, &gpa, &e.Reason, &recordedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sap history: %w", err)
	}
	e.Status = domain.SapStatus(status)
	e.EligibleForAid = intToBool(eligible)
	e.GPAMet = intToBool(gpaMet)
	e.PaceMet = intToBool(paceMet)
	e.TimeframeMet = intToBool(timeframeMet)
	e.CumulativeGPA = floatPtr(gpa)
	if e.RecordedAt, err = parseTime(recordedAt, "recorded_at"); err != nil {
		return nil, err
	}
	return &e, nil
}
