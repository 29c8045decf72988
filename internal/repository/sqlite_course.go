package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.StudentCourse) error {
	attrs, err := encodeJSON(c.Attributes)
	if err != nil {
		return fmt.Errorf("encoding course attributes: %w", err)
	}
	source := c.Source
	if source == "" {
		source = domain.SourceRegistration
	}
	query := `INSERT INTO student_courses (id, student_id, course_id, course_code, title, subject_code,
		course_number, credits, grade, grade_points, status, source, term_id, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.ID,
		c.StudentID,
		c.CourseID,
		c.CourseCode,
		c.Title,
		c.SubjectCode,
		c.CourseNumber,
		c.Credits,
		nullableString(c.Grade),
		nullableFloat(c.GradePoints),
		string(c.Status),
		string(source),
		c.TermID,
		attrs,
	)
	if err != nil {
		return fmt.Errorf("inserting student course: %w", err)
	}
	return nil
}

// ListByStudent returns the student's attempts in term order. Evaluators do
// not depend on this order, but reports read better with it.
func (r *SQLiteCourseRepo) ListByStudent(ctx context.Context, studentID string) ([]domain.StudentCourse, error) {
	query := `SELECT id, student_id, course_id, course_code, title, subject_code, course_number,
		credits, grade, grade_points, status, source, term_id, attributes
		FROM student_courses WHERE student_id = ? ORDER BY term_id, course_id, id`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing student courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.StudentCourse
	for rows.Next() {
		var c domain.StudentCourse
		var grade sql.NullString
		var points sql.NullFloat64
		var status, source, attrs string
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.CourseID, &c.CourseCode, &c.Title, &c.SubjectCode, &c.CourseNumber,
			&c.Credits, &grade, &points, &status, &source, &c.TermID, &attrs,
		); err != nil {
			return nil, fmt.Errorf("scanning student course row: %w", err)
		}
		c.Grade = stringPtr(grade)
		c.GradePoints = floatPtr(points)
		c.Status = domain.CourseStatus(status)
		c.Source = domain.CourseSource(source)
		if err := decodeJSON(attrs, &c.Attributes, "attributes"); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating student courses: %w", err)
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) DeleteByStudent(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM student_courses WHERE student_id = ?`, studentID); err != nil {
		return fmt.Errorf("deleting student courses: %w", err)
	}
	return nil
}
