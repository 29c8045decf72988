package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/google/uuid"
)

var testCourseCounter atomic.Int64

func FloatPtr(v float64) *float64 { return &v }
func IntPtr(v int) *int           { return &v }
func StrPtr(v string) *string     { return &v }

// Student options
type StudentOption func(*domain.Student)

func WithInternational(sevisUpdated bool) StudentOption {
	return func(s *domain.Student) {
		s.IsInternational = true
		s.SevisUpdated = sevisUpdated
	}
}

func WithBalance(amount float64) StudentOption {
	return func(s *domain.Student) {
		s.FinancialBalance = amount
	}
}

func WithFederalLoans(counselingDone bool) StudentOption {
	return func(s *domain.Student) {
		s.HasFederalLoans = true
		s.ExitCounselingCompleted = counselingDone
	}
}

func WithIntegrityViolation() StudentOption {
	return func(s *domain.Student) {
		s.AcademicIntegrityViolation = true
	}
}

func WithAcademicPlan(reqs ...string) StudentOption {
	return func(s *domain.Student) {
		s.OnAcademicPlan = true
		s.AcademicPlanRequirements = reqs
	}
}

func WithStudentMutation(fn func(*domain.Student)) StudentOption {
	return fn
}

// NewTestStudent returns a student with every administrative check cleared.
func NewTestStudent(name string, opts ...StudentOption) *domain.Student {
	now := time.Now().UTC()
	s := &domain.Student{
		ID:                      uuid.New().String(),
		Name:                    name,
		Email:                   strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.edu",
		DiplomaName:             name,
		DiplomaNameVerified:     true,
		MailingAddressConfirmed: true,
		MajorDeclared:           true,
		LibraryClearance:        true,
		DepartmentClearance:     true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StudentCourse options
type CourseOption func(*domain.StudentCourse)

// WithGrade marks the attempt completed with the grade and its standard points.
func WithGrade(grade string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.Status = domain.CourseCompleted
		c.Grade = &grade
		if pts, ok := domain.StandardGradeScale.Points(grade); ok {
			c.GradePoints = &pts
		} else {
			c.GradePoints = nil
		}
	}
}

func WithInProgress() CourseOption {
	return func(c *domain.StudentCourse) {
		c.Status = domain.CourseInProgress
		c.Grade = nil
		c.GradePoints = nil
	}
}

func WithCourseStatus(s domain.CourseStatus) CourseOption {
	return func(c *domain.StudentCourse) {
		c.Status = s
	}
}

func WithStudentCourseID(id string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.ID = id
	}
}

func WithCourseID(id string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.CourseID = id
	}
}

func WithAttributes(tags ...string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.Attributes = tags
	}
}

func WithSource(src domain.CourseSource) CourseOption {
	return func(c *domain.StudentCourse) {
		c.Source = src
	}
}

func WithTerm(termID string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.TermID = termID
	}
}

func WithOwner(studentID string) CourseOption {
	return func(c *domain.StudentCourse) {
		c.StudentID = studentID
	}
}

// NewTestCourse builds a completed registration attempt from a code such as
// "CS 101". CourseID defaults to the code without spaces and the student
// course ID to a sequential "sc-NNN" value, so sort order follows creation.
func NewTestCourse(code string, credits float64, opts ...CourseOption) domain.StudentCourse {
	subject, number, _ := strings.Cut(code, " ")
	n := testCourseCounter.Add(1)
	c := domain.StudentCourse{
		ID:           fmt.Sprintf("sc-%03d", n),
		CourseID:     strings.ReplaceAll(code, " ", ""),
		CourseCode:   code,
		Title:        code,
		SubjectCode:  subject,
		CourseNumber: number,
		Credits:      credits,
		Status:       domain.CourseCompleted,
		Source:       domain.SourceRegistration,
		TermID:       "2025FA",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DegreeRequirement options
type RequirementOption func(*domain.DegreeRequirement)

func WithRequiredCourse(courseID string, minimumGrade ...string) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		rc := domain.RequirementCourse{CourseID: courseID, CourseCode: courseID, IsRequired: true}
		if len(minimumGrade) > 0 {
			rc.MinimumGrade = &minimumGrade[0]
		}
		r.Courses = append(r.Courses, rc)
	}
}

func WithOptionalCourse(courseID string) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.Courses = append(r.Courses, domain.RequirementCourse{CourseID: courseID, CourseCode: courseID})
	}
}

func WithGroup(g domain.RequirementCourseGroup) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		if g.ID == "" {
			g.ID = fmt.Sprintf("%s-g%d", r.ID, len(r.Groups)+1)
		}
		r.Groups = append(r.Groups, g)
	}
}

func WithMinimumCredits(v float64) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.MinimumCredits = &v
	}
}

func WithMinimumCourses(v int) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.MinimumCourses = &v
	}
}

func WithMinimumGPA(v float64) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.MinimumGPA = &v
	}
}

func WithSharing() RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.AllowSharing = true
	}
}

func WithDisplayOrder(n int) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.DisplayOrder = n
	}
}

func WithCategory(cat string) RequirementOption {
	return func(r *domain.DegreeRequirement) {
		r.Category = cat
	}
}

// NewTestRequirement builds a requirement whose ID is derived from its name.
func NewTestRequirement(name string, opts ...RequirementOption) domain.DegreeRequirement {
	r := domain.DegreeRequirement{
		ID:       "req-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:     name,
		Category: "general",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// SubjectGroup is a group filled by any course in the subject.
func SubjectGroup(subject string, minCredits float64) domain.RequirementCourseGroup {
	return domain.RequirementCourseGroup{
		Name:           subject + " electives",
		MinimumCredits: &minCredits,
		Rule:           &domain.CourseSelectionRule{SubjectCodes: []string{subject}},
	}
}

// NewTestProgram returns a program with the given credit total and no GPA floors.
func NewTestProgram(code string, totalCredits float64) *domain.Program {
	return &domain.Program{
		ID:                   uuid.New().String(),
		Code:                 code,
		Name:                 code + " program",
		TotalCreditsRequired: totalCredits,
	}
}
