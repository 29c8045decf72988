package repository

import (
	"context"

	"github.com/alexanderramin/provost/internal/domain"
)

type StudentRepo interface {
	Create(ctx context.Context, s *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	List(ctx context.Context) ([]*domain.Student, error)
	Update(ctx context.Context, s *domain.Student) error
	Delete(ctx context.Context, id string) error
}

// ProgramRepo stores programs together with their requirement definitions.
type ProgramRepo interface {
	Create(ctx context.Context, p *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	GetByCode(ctx context.Context, code string) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Update(ctx context.Context, p *domain.Program) error
	ReplaceRequirements(ctx context.Context, programID string, reqs []domain.DegreeRequirement) error
	ListRequirements(ctx context.Context, programID string) ([]domain.DegreeRequirement, error)
}

type StudentProgramRepo interface {
	Create(ctx context.Context, sp *domain.StudentProgram) error
	GetByID(ctx context.Context, id string) (*domain.StudentProgram, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.StudentProgram, error)
	UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus) error
}

type CourseRepo interface {
	Create(ctx context.Context, c *domain.StudentCourse) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.StudentCourse, error)
	DeleteByStudent(ctx context.Context, studentID string) error
}

type HoldRepo interface {
	Create(ctx context.Context, h *domain.Hold) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Hold, error)
	DeleteByStudent(ctx context.Context, studentID string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Milestone, error)
	DeleteByStudent(ctx context.Context, studentID string) error
}

// StandingHistoryRepo keeps one standing entry per student and term.
// Recording a term that already has an entry replaces it.
type StandingHistoryRepo interface {
	Record(ctx context.Context, e *domain.StandingHistoryEntry) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.StandingHistoryEntry, error)
}

// SapHistoryRepo keeps one SAP entry per student and term.
type SapHistoryRepo interface {
	Record(ctx context.Context, e *domain.SapHistoryEntry) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.SapHistoryEntry, error)
	Latest(ctx context.Context, studentID string) (*domain.SapHistoryEntry, error)
}

type ConferralRepo interface {
	Create(ctx context.Context, c *domain.Conferral) error
	GetByStudentProgram(ctx context.Context, studentProgramID string) (*domain.Conferral, error)
}
