package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/transcript"
)

// studentSnapshot is the slice of stored state an evaluation reads. It is
// loaded once per use case and passed to the pure evaluators by value.
type studentSnapshot struct {
	student    *domain.Student
	courses    []domain.StudentCourse
	holds      []domain.Hold
	milestones []domain.Milestone
	summary    transcript.Summary
}

func loadSnapshot(ctx context.Context, repos Repositories, grades domain.GradeScale, studentID string) (*studentSnapshot, error) {
	student, err := repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courses, err := repos.Courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading courses for %s: %w", studentID, err)
	}
	holds, err := repos.Holds.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading holds for %s: %w", studentID, err)
	}
	milestones, err := repos.Milestones.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading milestones for %s: %w", studentID, err)
	}
	return &studentSnapshot{
		student:    student,
		courses:    courses,
		holds:      holds,
		milestones: milestones,
		summary:    transcript.Summarize(courses, grades),
	}, nil
}

// activeEnrollment returns the student's earliest active enrollment and its
// program.
func activeEnrollment(ctx context.Context, repos Repositories, studentID string) (*domain.StudentProgram, *domain.Program, error) {
	enrollments, err := repos.Enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading enrollments for %s: %w", studentID, err)
	}
	for _, sp := range enrollments {
		if sp.Status != domain.EnrollmentActive {
			continue
		}
		program, err := repos.Programs.GetByID(ctx, sp.ProgramID)
		if err != nil {
			return nil, nil, err
		}
		return sp, program, nil
	}
	return nil, nil, fmt.Errorf("student %s: %w", studentID, ErrNoActiveProgram)
}

// priorTerms returns the entries recorded before termID and the index of
// termID's own entry, or -1 when the term is new. History is kept in the
// order terms were first recorded and a re-evaluated term keeps its slot, so
// everything from that slot on is left out of the prior history.
func priorTerms[E any](entries []E, termID string, term func(E) string) ([]E, int) {
	for i, e := range entries {
		if term(e) == termID {
			return entries[:i:i], i
		}
	}
	return entries, -1
}
