package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/graduation"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/google/uuid"
)

type graduationService struct {
	repos       Repositories
	uow         db.UnitOfWork
	policy      domain.GraduationPolicyConfig
	honors      domain.LatinHonorsConfig
	grades      domain.GradeScale
	concurrency int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewGraduationService(
	repos Repositories,
	uow db.UnitOfWork,
	policy domain.GraduationPolicyConfig,
	honors domain.LatinHonorsConfig,
	concurrency int,
	observers ...UseCaseObserver,
) GraduationService {
	return &graduationService{
		repos:       repos,
		uow:         uow,
		policy:      policy,
		honors:      honors,
		grades:      domain.StandardGradeScale,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *graduationService) CheckEligibility(ctx context.Context, studentID string) (report *app.GraduationReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": studentID}
	defer observe(ctx, s.observer, "graduation", startedAt, fields, &err)

	report, input, _, err := s.prepare(ctx, studentID)
	if err != nil {
		return nil, err
	}
	report.Result = graduation.ValidateEligibility(input, s.policy)
	fields["eligible"] = report.Result.IsEligible
	return report, nil
}

// CheckConferral runs the stricter conferral checklist and the honors
// calculation. When the request asks to record and the check passes, the
// conferral is stored and the enrollment marked completed in one
// transaction.
func (s *graduationService) CheckConferral(ctx context.Context, req app.ConferralRequest) (report *app.ConferralReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": req.StudentID, "record": req.Record}
	defer observe(ctx, s.observer, "conferral", startedAt, fields, &err)

	base, input, snap, err := s.prepare(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	base.Result = graduation.CanConfer(input, s.policy)
	report = &app.ConferralReport{
		GraduationReport: *base,
		Honors:           graduation.CalculateLatinHonors(honorsInput(snap), s.honors),
	}
	fields["eligible"] = base.Result.IsEligible
	if !req.Record || !base.Result.IsEligible {
		return report, nil
	}

	conferral := &domain.Conferral{
		ID:               uuid.New().String(),
		StudentProgramID: base.StudentProgramID,
		Honors:           report.Honors.Designation,
		ConferredAt:      s.now(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		conferrals := repository.NewSQLiteConferralRepo(tx)
		if _, err := conferrals.GetByStudentProgram(ctx, conferral.StudentProgramID); err == nil {
			return ErrAlreadyConferred
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := conferrals.Create(ctx, conferral); err != nil {
			return err
		}
		return repository.NewSQLiteStudentProgramRepo(tx).UpdateStatus(ctx, conferral.StudentProgramID, domain.EnrollmentCompleted)
	})
	if err != nil {
		return nil, err
	}
	report.Conferral = conferral
	fields["honors"] = string(conferral.Honors)
	return report, nil
}

func (s *graduationService) LatinHonors(ctx context.Context, studentID string) (result *graduation.LatinHonorsResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": studentID}
	defer observe(ctx, s.observer, "honors", startedAt, fields, &err)

	snap, err := loadSnapshot(ctx, s.repos, s.grades, studentID)
	if err != nil {
		return nil, err
	}
	honors := graduation.CalculateLatinHonors(honorsInput(snap), s.honors)
	fields["designation"] = string(honors.Designation)
	return &honors, nil
}

func (s *graduationService) BatchCheckEligibility(ctx context.Context, studentIDs []string) *app.BatchResult[app.GraduationReport] {
	result := runBatch(ctx, batchRun[app.GraduationReport]{
		name:     "graduation",
		limit:    s.concurrency,
		observer: s.observer,
		ids:      studentIDs,
		eval: func(ctx context.Context, i int) (*app.GraduationReport, error) {
			return s.CheckEligibility(ctx, studentIDs[i])
		},
	})
	result.Tally(func(r *app.GraduationReport) string {
		if r.Result.IsEligible {
			return "eligible"
		}
		return "not_eligible"
	})
	return result
}

// prepare audits the student's active program and builds the checklist
// input shared by the eligibility and conferral checks.
func (s *graduationService) prepare(ctx context.Context, studentID string) (*app.GraduationReport, graduation.GraduationEligibilityInput, *studentSnapshot, error) {
	var input graduation.GraduationEligibilityInput
	snap, err := loadSnapshot(ctx, s.repos, s.grades, studentID)
	if err != nil {
		return nil, input, nil, err
	}
	sp, program, err := activeEnrollment(ctx, s.repos, studentID)
	if err != nil {
		return nil, input, nil, err
	}
	audited, err := runAudit(ctx, s.repos, s.grades, sp, program, snap, s.now())
	if err != nil {
		return nil, input, nil, err
	}

	summary := graduation.AuditSummary{
		CompletionPercentage:    audited.Audit.CompletionPercentage,
		AllRequirementsComplete: audited.Audit.AllRequirementsComplete(),
		RequirementsTotal:       audited.Audit.RequirementsTotal,
		RequirementsComplete:    audited.Audit.RequirementsComplete,
	}
	st := snap.student
	input = graduation.GraduationEligibilityInput{
		StudentID:               studentID,
		Audit:                   summary,
		TotalCredits:            snap.summary.EarnedCredits,
		InstitutionalCredits:    snap.summary.InstitutionalCredits,
		CumulativeGPA:           snap.summary.CumulativeGPA,
		IncompleteGrades:        snap.summary.IncompleteGrades,
		PendingGrades:           snap.summary.PendingGrades,
		Milestones:              snap.milestones,
		Holds:                   snap.holds,
		FinancialBalance:        st.FinancialBalance,
		LibraryClearance:        st.LibraryClearance,
		DepartmentClearance:     st.DepartmentClearance,
		HasFederalLoans:         st.HasFederalLoans,
		ExitCounselingCompleted: st.ExitCounselingCompleted,
		IsInternational:         st.IsInternational,
		SevisUpdated:            st.SevisUpdated,
		DiplomaName:             st.DiplomaName,
		DiplomaNameVerified:     st.DiplomaNameVerified,
		MailingAddressConfirmed: st.MailingAddressConfirmed,
		MajorDeclared:           st.MajorDeclared,
		MinorDeclared:           st.MinorDeclared,
	}
	report := &app.GraduationReport{
		StudentID:        studentID,
		StudentProgramID: sp.ID,
		ProgramCode:      program.Code,
		Audit:            summary,
		Summary:          snap.summary,
	}
	return report, input, snap, nil
}

func honorsInput(snap *studentSnapshot) graduation.LatinHonorsInput {
	return graduation.LatinHonorsInput{
		StudentID:                  snap.student.ID,
		CumulativeGPA:              snap.summary.CumulativeGPA,
		InstitutionalGPA:           snap.summary.InstitutionalGPA,
		TotalCredits:               snap.summary.EarnedCredits,
		InstitutionalCredits:       snap.summary.InstitutionalCredits,
		AcademicIntegrityViolation: snap.student.AcademicIntegrityViolation,
	}
}
