package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/audit"
	"github.com/alexanderramin/provost/internal/domain"
)

type auditService struct {
	repos    Repositories
	grades   domain.GradeScale
	now      func() time.Time
	observer UseCaseObserver
}

func NewAuditService(repos Repositories, observers ...UseCaseObserver) AuditService {
	return &auditService{
		repos:    repos,
		grades:   domain.StandardGradeScale,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *auditService) AuditStudentProgram(ctx context.Context, studentProgramID string) (report *app.AuditReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_program_id": studentProgramID}
	defer observe(ctx, s.observer, "audit", startedAt, fields, &err)

	sp, err := s.repos.Enrollments.GetByID(ctx, studentProgramID)
	if err != nil {
		return nil, err
	}
	program, err := s.repos.Programs.GetByID(ctx, sp.ProgramID)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, s.repos, s.grades, sp.StudentID)
	if err != nil {
		return nil, err
	}

	report, err = runAudit(ctx, s.repos, s.grades, sp, program, snap, s.now())
	if err != nil {
		return nil, err
	}
	fields["status"] = string(report.Audit.Status)
	fields["completion_pct"] = report.Audit.CompletionPercentage
	return report, nil
}

// runAudit loads the program's requirements and audits the snapshot
// against them. The audit computes its own GPA from the course list.
func runAudit(ctx context.Context, repos Repositories, grades domain.GradeScale, sp *domain.StudentProgram, program *domain.Program, snap *studentSnapshot, at time.Time) (*app.AuditReport, error) {
	reqs, err := repos.Programs.ListRequirements(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("loading requirements for %s: %w", program.Code, err)
	}

	result := audit.RunDegreeAudit(audit.DegreeAuditInput{
		StudentID:            sp.StudentID,
		StudentProgramID:     sp.ID,
		ProgramID:            program.ID,
		TotalCreditsRequired: program.TotalCreditsRequired,
		OverallGPARequired:   program.OverallGPARequired,
		MajorGPARequired:     program.MajorGPARequired,
		Requirements:         reqs,
		StudentCourses:       snap.courses,
		AuditDate:            at,
	}, grades)

	return &app.AuditReport{
		Student: snap.student,
		Program: program,
		Audit:   result,
		Summary: snap.summary,
	}, nil
}
