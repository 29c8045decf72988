package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteStudentProgramRepo implements StudentProgramRepo using a SQLite database.
type SQLiteStudentProgramRepo struct {
	db db.DBTX
}

func NewSQLiteStudentProgramRepo(conn db.DBTX) *SQLiteStudentProgramRepo {
	return &SQLiteStudentProgramRepo{db: conn}
}

func (r *SQLiteStudentProgramRepo) Create(ctx context.Context, sp *domain.StudentProgram) error {
	status := sp.Status
	if status == "" {
		status = domain.EnrollmentActive
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO student_programs (id, student_id, program_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		sp.ID, sp.StudentID, sp.ProgramID, string(status), formatTime(sp.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting student program: %w", err)
	}
	return nil
}

func (r *SQLiteStudentProgramRepo) GetByID(ctx context.Context, id string) (*domain.StudentProgram, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, student_id, program_id, status, created_at FROM student_programs WHERE id = ?`, id)
	sp, err := scanStudentProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student program %s: %w", id, ErrNotFound)
	}
	return sp, err
}

func (r *SQLiteStudentProgramRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.StudentProgram, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, program_id, status, created_at FROM student_programs
		WHERE student_id = ? ORDER BY created_at, id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing student programs: %w", err)
	}
	defer rows.Close()

	var out []*domain.StudentProgram
	for rows.Next() {
		sp, err := scanStudentProgram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating student programs: %w", err)
	}
	return out, nil
}

func (r *SQLiteStudentProgramRepo) UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE student_programs SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating student program status: %w", err)
	}
	return requireAffected(res, "student program "+id)
}

func scanStudentProgram(row scanner) (*domain.StudentProgram, error) {
	var sp domain.StudentProgram
	var status, createdAt string
	if err := row.Scan(&sp.ID, &sp.StudentID, &sp.ProgramID, &status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning student program: %w", err)
	}
	sp.Status = domain.EnrollmentStatus(status)
	var err error
	if sp.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &sp, nil
}

// SQLiteConferralRepo implements ConferralRepo using a SQLite database.
type SQLiteConferralRepo struct {
	db db.DBTX
}

func NewSQLiteConferralRepo(conn db.DBTX) *SQLiteConferralRepo {
	return &SQLiteConferralRepo{db: conn}
}

func (r *SQLiteConferralRepo) Create(ctx context.Context, c *domain.Conferral) error {
	honors := c.Honors
	if honors == "" {
		honors = domain.HonorsNone
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conferrals (id, student_program_id, honors, conferred_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.StudentProgramID, string(honors), formatTime(c.ConferredAt))
	if err != nil {
		return fmt.Errorf("inserting conferral: %w", err)
	}
	return nil
}

func (r *SQLiteConferralRepo) GetByStudentProgram(ctx context.Context, studentProgramID string) (*domain.Conferral, error) {
	var c domain.Conferral
	var honors, conferredAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, student_program_id, honors, conferred_at FROM conferrals WHERE student_program_id = ?`,
		studentProgramID).Scan(&c.ID, &c.StudentProgramID, &honors, &conferredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conferral for %s: %w", studentProgramID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning conferral: %w", err)
	}
	c.Honors = domain.HonorsDesignation(honors)
	if c.ConferredAt, err = parseTime(conferredAt, "conferred_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
