package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/alexanderramin/provost/internal/sap"
	"github.com/google/uuid"
)

type sapService struct {
	repos       Repositories
	uow         db.UnitOfWork
	policy      domain.SapPolicy
	grades      domain.GradeScale
	concurrency int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewSapService(repos Repositories, uow db.UnitOfWork, policy domain.SapPolicy, concurrency int, observers ...UseCaseObserver) SapService {
	return &sapService{
		repos:       repos,
		uow:         uow,
		policy:      policy,
		grades:      domain.StandardGradeScale,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		observer:    useCaseObserverOrNoop(observers),
	}
}

// EvaluateTerm measures the student's satisfactory academic progress for
// the term. The maximum timeframe comes from the active program; a student
// with no active program is evaluated with an unknown program length.
func (s *sapService) EvaluateTerm(ctx context.Context, req app.TermRequest) (result *sap.SapResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": req.StudentID, "term_id": req.TermID}
	defer observe(ctx, s.observer, "sap", startedAt, fields, &err)

	if req.TermID == "" {
		return nil, app.NewValidationError("sap request", []error{fmt.Errorf("term_id is required")})
	}
	snap, err := loadSnapshot(ctx, s.repos, s.grades, req.StudentID)
	if err != nil {
		return nil, err
	}

	var programCredits float64
	_, program, err := activeEnrollment(ctx, s.repos, req.StudentID)
	switch {
	case errors.Is(err, ErrNoActiveProgram):
	case err != nil:
		return nil, err
	default:
		programCredits = program.TotalCreditsRequired
	}

	history, err := s.repos.SapHistory.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	stored := history
	history, slot := priorTerms(stored, req.TermID, func(e domain.SapHistoryEntry) string { return e.TermID })
	var previous *domain.SapStatus
	if len(history) > 0 {
		status := history[len(history)-1].Status
		previous = &status
	}

	evaluated := sap.Evaluate(sap.SapInput{
		StudentID:                  req.StudentID,
		TermID:                     req.TermID,
		CumulativeAttemptedCredits: snap.summary.AttemptedCredits,
		CumulativeEarnedCredits:    snap.summary.EarnedCredits,
		CumulativeGPA:              snap.summary.CumulativeGPA,
		ProgramCredits:             programCredits,
		PreviousSapStatus:          previous,
		AppealApproved:             snap.student.SapAppealApproved,
		OnAcademicPlan:             snap.student.OnAcademicPlan,
		AcademicPlanRequirements:   snap.student.AcademicPlanRequirements,
		TimeframeReinstated:        req.ReinstatementApproved,
	}, s.policy)
	evaluated.HistoryEntry.ID = uuid.New().String()
	evaluated.HistoryEntry.RecordedAt = s.now()
	if slot >= 0 {
		evaluated.HistoryEntry.ID = stored[slot].ID
		evaluated.HistoryEntry.RecordedAt = stored[slot].RecordedAt
	}
	fields["status"] = string(evaluated.Status)

	if req.DryRun {
		return &evaluated, nil
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSapHistoryRepo(tx).Record(ctx, &evaluated.HistoryEntry)
	})
	if err != nil {
		return nil, err
	}
	return &evaluated, nil
}

func (s *sapService) BatchEvaluate(ctx context.Context, reqs []app.TermRequest) *app.BatchResult[sap.SapResult] {
	result := runBatch(ctx, batchRun[sap.SapResult]{
		name:     "sap",
		limit:    s.concurrency,
		observer: s.observer,
		ids:      termRequestIDs(reqs),
		eval: func(ctx context.Context, i int) (*sap.SapResult, error) {
			return s.EvaluateTerm(ctx, reqs[i])
		},
	})
	result.Tally(func(r *sap.SapResult) string { return string(r.Status) })
	return result
}
