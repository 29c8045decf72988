package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteHoldRepo implements HoldRepo using a SQLite database.
type SQLiteHoldRepo struct {
	db db.DBTX
}

func NewSQLiteHoldRepo(conn db.DBTX) *SQLiteHoldRepo {
	return &SQLiteHoldRepo{db: conn}
}

func (r *SQLiteHoldRepo) Create(ctx context.Context, h *domain.Hold) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO holds (id, student_id, type, reason, blocks_graduation) VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.StudentID, h.Type, h.Reason, boolToInt(h.BlocksGraduation))
	if err != nil {
		return fmt.Errorf("inserting hold: %w", err)
	}
	return nil
}

func (r *SQLiteHoldRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Hold, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, type, reason, blocks_graduation FROM holds WHERE student_id = ? ORDER BY type, id`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("listing holds: %w", err)
	}
	defer rows.Close()

	var holds []domain.Hold
	for rows.Next() {
		var h domain.Hold
		var blocks int
		if err := rows.Scan(&h.ID, &h.StudentID, &h.Type, &h.Reason, &blocks); err != nil {
			return nil, fmt.Errorf("scanning hold row: %w", err)
		}
		h.BlocksGraduation = intToBool(blocks)
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holds: %w", err)
	}
	return holds, nil
}

func (r *SQLiteHoldRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holds WHERE student_id = ?`, studentID); err != nil {
		return fmt.Errorf("deleting holds: %w", err)
	}
	return nil
}

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (id, student_id, name, required, completed) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.StudentID, m.Name, boolToInt(m.Required), boolToInt(m.Completed))
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, name, required, completed FROM milestones WHERE student_id = ? ORDER BY name, id`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var required, completed int
		if err := rows.Scan(&m.ID, &m.StudentID, &m.Name, &required, &completed); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		m.Required = intToBool(required)
		m.Completed = intToBool(completed)
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return milestones, nil
}

func (r *SQLiteMilestoneRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE student_id = ?`, studentID); err != nil {
		return fmt.Errorf("deleting milestones: %w", err)
	}
	return nil
}
