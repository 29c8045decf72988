package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/alexanderramin/provost/internal/standing"
	"github.com/google/uuid"
)

type standingService struct {
	repos       Repositories
	uow         db.UnitOfWork
	policy      domain.AcademicStandingPolicy
	grades      domain.GradeScale
	concurrency int
	now         func() time.Time
	observer    UseCaseObserver
}

func NewStandingService(repos Repositories, uow db.UnitOfWork, policy domain.AcademicStandingPolicy, concurrency int, observers ...UseCaseObserver) StandingService {
	return &standingService{
		repos:       repos,
		uow:         uow,
		policy:      policy,
		grades:      domain.StandardGradeScale,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		observer:    useCaseObserverOrNoop(observers),
	}
}

// EvaluateTerm computes the student's standing for the term from the stored
// transcript and the history of earlier terms, then records the entry.
// Re-evaluating a term replaces its entry in place and reads only the terms
// recorded before it.
func (s *standingService) EvaluateTerm(ctx context.Context, req app.TermRequest) (result *standing.AcademicStandingResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": req.StudentID, "term_id": req.TermID}
	defer observe(ctx, s.observer, "standing", startedAt, fields, &err)

	if req.TermID == "" {
		return nil, app.NewValidationError("standing request", []error{fmt.Errorf("term_id is required")})
	}
	snap, err := loadSnapshot(ctx, s.repos, s.grades, req.StudentID)
	if err != nil {
		return nil, err
	}
	if snap.summary.CumulativeGPA == nil {
		return nil, app.NewValidationError("standing request",
			[]error{fmt.Errorf("student %s has no graded coursework", req.StudentID)})
	}
	history, err := s.repos.StandingHistory.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	stored := history
	history, slot := priorTerms(stored, req.TermID, func(e domain.StandingHistoryEntry) string { return e.TermID })

	evaluated := standing.Evaluate(standing.AcademicStandingInput{
		StudentID:             req.StudentID,
		TermID:                req.TermID,
		CumulativeGPA:         *snap.summary.CumulativeGPA,
		TermGPA:               req.TermGPA,
		CreditsCompleted:      snap.summary.EarnedCredits,
		CreditsAttempted:      snap.summary.AttemptedCredits,
		PreviousHistory:       history,
		ReinstatementApproved: req.ReinstatementApproved,
		Policy:                s.policy,
	})
	evaluated.HistoryEntry.ID = uuid.New().String()
	evaluated.HistoryEntry.RecordedAt = s.now()
	if slot >= 0 {
		evaluated.HistoryEntry.ID = stored[slot].ID
		evaluated.HistoryEntry.RecordedAt = stored[slot].RecordedAt
	}
	fields["standing"] = string(evaluated.Standing)

	if req.DryRun {
		return &evaluated, nil
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStandingHistoryRepo(tx).Record(ctx, &evaluated.HistoryEntry)
	})
	if err != nil {
		return nil, err
	}
	return &evaluated, nil
}

func (s *standingService) BatchEvaluate(ctx context.Context, reqs []app.TermRequest) *app.BatchResult[standing.AcademicStandingResult] {
	result := runBatch(ctx, batchRun[standing.AcademicStandingResult]{
		name:     "standing",
		limit:    s.concurrency,
		observer: s.observer,
		ids:      termRequestIDs(reqs),
		eval: func(ctx context.Context, i int) (*standing.AcademicStandingResult, error) {
			return s.EvaluateTerm(ctx, reqs[i])
		},
	})
	result.Tally(func(r *standing.AcademicStandingResult) string { return string(r.Standing) })
	return result
}

func termRequestIDs(reqs []app.TermRequest) []string {
	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.StudentID
	}
	return ids
}
