package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteStudentRepo implements StudentRepo using a SQLite database.
type SQLiteStudentRepo struct {
	db db.DBTX
}

func NewSQLiteStudentRepo(conn db.DBTX) *SQLiteStudentRepo {
	return &SQLiteStudentRepo{db: conn}
}

const studentColumns = `id, name, email, is_international, sevis_updated,
	diploma_name, diploma_name_verified, mailing_address_confirmed, major_declared, minor_declared,
	financial_balance, library_clearance, department_clearance, has_federal_loans, exit_counseling_completed,
	academic_integrity_violation, on_academic_plan, academic_plan_requirements, sap_appeal_approved,
	created_at, updated_at`

func (r *SQLiteStudentRepo) Create(ctx context.Context, s *domain.Student) error {
	planReqs, err := encodeJSON(s.AcademicPlanRequirements)
	if err != nil {
		return fmt.Errorf("encoding academic plan requirements: %w", err)
	}
	query := `INSERT INTO students (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Email,
		boolToInt(s.IsInternational),
		boolToInt(s.SevisUpdated),
		s.DiplomaName,
		boolToInt(s.DiplomaNameVerified),
		boolToInt(s.MailingAddressConfirmed),
		boolToInt(s.MajorDeclared),
		boolToInt(s.MinorDeclared),
		s.FinancialBalance,
		boolToInt(s.LibraryClearance),
		boolToInt(s.DepartmentClearance),
		boolToInt(s.HasFederalLoans),
		boolToInt(s.ExitCounselingCompleted),
		boolToInt(s.AcademicIntegrityViolation),
		boolToInt(s.OnAcademicPlan),
		planReqs,
		boolToInt(s.SapAppealApproved),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}
	return nil
}

func (r *SQLiteStudentRepo) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	s, err := scanStudent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStudentRepo) List(ctx context.Context) ([]*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var students []*domain.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return students, nil
}

func (r *SQLiteStudentRepo) Update(ctx context.Context, s *domain.Student) error {
	planReqs, err := encodeJSON(s.AcademicPlanRequirements)
	if err != nil {
		return fmt.Errorf("encoding academic plan requirements: %w", err)
	}
	query := `UPDATE students SET name = ?, email = ?, is_international = ?, sevis_updated = ?,
		diploma_name = ?, diploma_name_verified = ?, mailing_address_confirmed = ?, major_declared = ?, minor_declared = ?,
		financial_balance = ?, library_clearance = ?, department_clearance = ?, has_federal_loans = ?,
		exit_counseling_completed = ?, academic_integrity_violation = ?, on_academic_plan = ?,
		academic_plan_requirements = ?, sap_appeal_approved = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Email,
		boolToInt(s.IsInternational),
		boolToInt(s.SevisUpdated),
		s.DiplomaName,
		boolToInt(s.DiplomaNameVerified),
		boolToInt(s.MailingAddressConfirmed),
		boolToInt(s.MajorDeclared),
		boolToInt(s.MinorDeclared),
		s.FinancialBalance,
		boolToInt(s.LibraryClearance),
		boolToInt(s.DepartmentClearance),
		boolToInt(s.HasFederalLoans),
		boolToInt(s.ExitCounselingCompleted),
		boolToInt(s.AcademicIntegrityViolation),
		boolToInt(s.OnAcademicPlan),
		planReqs,
		boolToInt(s.SapAppealApproved),
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating student: %w", err)
	}
	return requireAffected(res, "student "+s.ID)
}

func (r *SQLiteStudentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	return requireAffected(res, "student "+id)
}

func scanStudent(row scanner) (*domain.Student, error) {
	var s domain.Student
	var intl, sevis, nameVerified, addrConfirmed, major, minor int
	var library, department, loans, exitCounseling, integrity, onPlan, appeal int
	var planReqs, createdAt, updatedAt string

	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &intl, &sevis,
		&s.DiplomaName, &nameVerified, &addrConfirmed, &major, &minor,
		&s.FinancialBalance, &library, &department, &loans, &exitCounseling,
		&integrity, &onPlan, &planReqs, &appeal,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning student: %w", err)
	}

	s.IsInternational = intToBool(intl)
	s.SevisUpdated = intToBool(sevis)
	s.DiplomaNameVerified = intToBool(nameVerified)
	s.MailingAddressConfirmed = intToBool(addrConfirmed)
	s.MajorDeclared = intToBool(major)
	s.MinorDeclared = intToBool(minor)
	s.LibraryClearance = intToBool(library)
	s.DepartmentClearance = intToBool(department)
	s.HasFederalLoans = intToBool(loans)
	s.ExitCounselingCompleted = intToBool(exitCounseling)
	s.AcademicIntegrityViolation = intToBool(integrity)
	s.OnAcademicPlan = intToBool(onPlan)
	s.SapAppealApproved = intToBool(appeal)

	if err := decodeJSON(planReqs, &s.AcademicPlanRequirements, "academic_plan_requirements"); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}

// requireAffected turns a write that matched nothing into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
