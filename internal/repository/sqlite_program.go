package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteProgramRepo implements ProgramRepo. Requirement course lists and
// groups are stored as JSON columns on degree_requirements; they are only
// ever read whole.
type SQLiteProgramRepo struct {
	db db.DBTX
}

func NewSQLiteProgramRepo(conn db.DBTX) *SQLiteProgramRepo {
	return &SQLiteProgramRepo{db: conn}
}

const programColumns = `id, code, name, total_credits_required, overall_gpa_required, major_gpa_required`

func (r *SQLiteProgramRepo) Create(ctx context.Context, p *domain.Program) error {
	query := `INSERT INTO programs (` + programColumns + `, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Name,
		p.TotalCreditsRequired,
		nullableFloat(p.OverallGPARequired),
		nullableFloat(p.MajorGPARequired),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

func (r *SQLiteProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	return scanProgramRow(row, "program "+id)
}

func (r *SQLiteProgramRepo) GetByCode(ctx context.Context, code string) (*domain.Program, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE UPPER(code) = UPPER(?)`, code)
	return scanProgramRow(row, "program "+code)
}

func (r *SQLiteProgramRepo) List(ctx context.Context) ([]*domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+programColumns+` FROM programs ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*domain.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}
	return programs, nil
}

func (r *SQLiteProgramRepo) Update(ctx context.Context, p *domain.Program) error {
	query := `UPDATE programs SET code = ?, name = ?, total_credits_required = ?,
		overall_gpa_required = ?, major_gpa_required = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.TotalCreditsRequired,
		nullableFloat(p.OverallGPARequired),
		nullableFloat(p.MajorGPARequired),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	return requireAffected(res, "program "+p.ID)
}

// ReplaceRequirements deletes the program's requirements and inserts reqs.
// Callers run it inside a UnitOfWork so a failed insert keeps the old set.
func (r *SQLiteProgramRepo) ReplaceRequirements(ctx context.Context, programID string, reqs []domain.DegreeRequirement) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM degree_requirements WHERE program_id = ?`, programID); err != nil {
		return fmt.Errorf("clearing requirements: %w", err)
	}

	query := `INSERT INTO degree_requirements (id, program_id, name, category, display_order,
		minimum_credits, minimum_courses, minimum_gpa, allow_sharing, courses_json, groups_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, req := range reqs {
		courses, err := encodeJSON(req.Courses)
		if err != nil {
			return fmt.Errorf("encoding courses for requirement %s: %w", req.ID, err)
		}
		groups, err := encodeJSON(req.Groups)
		if err != nil {
			return fmt.Errorf("encoding groups for requirement %s: %w", req.ID, err)
		}
		_, err = r.db.ExecContext(ctx, query,
			req.ID,
			programID,
			req.Name,
			req.Category,
			req.DisplayOrder,
			nullableFloat(req.MinimumCredits),
			nullableInt(req.MinimumCourses),
			nullableFloat(req.MinimumGPA),
			boolToInt(req.AllowSharing),
			courses,
			groups,
		)
		if err != nil {
			return fmt.Errorf("inserting requirement %s: %w", req.ID, err)
		}
	}
	return nil
}

func (r *SQLiteProgramRepo) ListRequirements(ctx context.Context, programID string) ([]domain.DegreeRequirement, error) {
	query := `SELECT id, program_id, name, category, display_order,
		minimum_credits, minimum_courses, minimum_gpa, allow_sharing, courses_json, groups_json
		FROM degree_requirements WHERE program_id = ? ORDER BY display_order, id`
	rows, err := r.db.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("listing requirements: %w", err)
	}
	defer rows.Close()

	var reqs []domain.DegreeRequirement
	for rows.Next() {
		var req domain.DegreeRequirement
		var minCredits, minGPA sql.NullFloat64
		var minCourses sql.NullInt64
		var sharing int
		var courses, groups string
		if err := rows.Scan(
			&req.ID, &req.ProgramID, &req.Name, &req.Category, &req.DisplayOrder,
			&minCredits, &minCourses, &minGPA, &sharing, &courses, &groups,
		); err != nil {
			return nil, fmt.Errorf("scanning requirement row: %w", err)
		}
		req.MinimumCredits = floatPtr(minCredits)
		req.MinimumCourses = intPtr(minCourses)
		req.MinimumGPA = floatPtr(minGPA)
		req.AllowSharing = intToBool(sharing)
		if err := decodeJSON(courses, &req.Courses, "courses_json"); err != nil {
			return nil, err
		}
		if err := decodeJSON(groups, &req.Groups, "groups_json"); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requirements: %w", err)
	}
	return reqs, nil
}

func scanProgramRow(row *sql.Row, what string) (*domain.Program, error) {
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return p, err
}

func scanProgram(row scanner) (*domain.Program, error) {
	var p domain.Program
	var overall, major sql.NullFloat64
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.TotalCreditsRequired, &overall, &major); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning program: %w", err)
	}
	p.OverallGPARequired = floatPtr(overall)
	p.MajorGPARequired = floatPtr(major)
	return &p, nil
}
