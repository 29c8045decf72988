package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingEvaluateTerm_RecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.importFixtures(t)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1)

	result, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: fixtureStudent, TermID: "2025FA"})
	require.NoError(t, err)

	assert.Equal(t, domain.StandingGood, result.Standing)
	require.NotNil(t, result.PreviousStanding)
	assert.Equal(t, domain.StandingGood, *result.PreviousStanding)
	assert.False(t, result.Changed)
	// (3*4.0 + 3*3.3) / 6; the pass-graded transfer course carries no points.
	assert.InDelta(t, 3.65, result.HistoryEntry.CumulativeGPA, 1e-9)
	assert.NotEmpty(t, result.HistoryEntry.ID)
	assert.False(t, result.HistoryEntry.RecordedAt.IsZero())

	history, err := env.repos.StandingHistory.ListByStudent(ctx, fixtureStudent)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2025FA", history[2].TermID)
}

func TestStandingEvaluateTerm_ReevaluationReplacesTerm(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.importFixtures(t)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1)

	req := app.TermRequest{StudentID: fixtureStudent, TermID: "2025FA"}
	_, err := svc.EvaluateTerm(ctx, req)
	require.NoError(t, err)
	again, err := svc.EvaluateTerm(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, domain.StandingGood, *again.PreviousStanding, "the term's own entry is not its predecessor")
	history, err := env.repos.StandingHistory.ListByStudent(ctx, fixtureStudent)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestStandingEvaluateTerm_DryRunRecordsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.importFixtures(t)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1)

	_, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: fixtureStudent, TermID: "2025FA", DryRun: true})
	require.NoError(t, err)

	history, err := env.repos.StandingHistory.ListByStudent(ctx, fixtureStudent)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestStandingEvaluateTerm_LowGPALeavesGoodStanding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.seedStudent(t, "Low Gpa",
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C")),
		testutil.NewTestCourse("MATH 101", 3, testutil.WithGrade("D")),
	)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1)

	result, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: student.ID, TermID: "2025FA"})
	require.NoError(t, err)

	assert.NotEqual(t, domain.StandingGood, result.Standing)
	assert.InDelta(t, 1.5, result.HistoryEntry.CumulativeGPA, 1e-9)
	assert.NotEmpty(t, result.ActionItems)
}

func TestStandingEvaluateTerm_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ungraded := env.seedStudent(t, "New Student", testutil.NewTestCourse("CS 101", 3, testutil.WithInProgress()))
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1)

	_, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: ungraded.ID})
	var verr *app.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "term_id is required")

	_, err = svc.EvaluateTerm(ctx, app.TermRequest{StudentID: ungraded.ID, TermID: "2025FA"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "no graded coursework")

	_, err = svc.EvaluateTerm(ctx, app.TermRequest{StudentID: "missing", TermID: "2025FA"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStandingEvaluateTerm_RollbackLeavesNoHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.importFixtures(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 1, Err: errors.New("injected history failure")}
	svc := NewStandingService(env.repos, failUoW, domain.DefaultStandingPolicy(), 1)

	_, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: fixtureStudent, TermID: "2025FA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected history failure")

	history, err := env.repos.StandingHistory.ListByStudent(ctx, fixtureStudent)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestStandingEvaluateTerm_UsesInjectedClock(t *testing.T) {
	env := newTestEnv(t)
	env.importFixtures(t)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1).(*standingService)
	fixed := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.EvaluateTerm(context.Background(), app.TermRequest{StudentID: fixtureStudent, TermID: "2025FA"})
	require.NoError(t, err)

	assert.Equal(t, fixed, result.HistoryEntry.RecordedAt)
	history, err := env.repos.StandingHistory.ListByStudent(context.Background(), fixtureStudent)
	require.NoError(t, err)
	assert.True(t, history[2].RecordedAt.Equal(fixed))
}

func TestStandingEvaluateTerm_ReevaluatingOlderTermKeepsOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := env.seedStudent(t, "Low Gpa",
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C")),
		testutil.NewTestCourse("MATH 101", 3, testutil.WithGrade("D")),
	)
	svc := NewStandingService(env.repos, env.uow, domain.DefaultStandingPolicy(), 1).(*standingService)
	clock := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Hour)
		return clock
	}

	for _, term := range []string{"2025SP", "2025FA", "2026SP"} {
		_, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: student.ID, TermID: term})
		require.NoError(t, err)
	}
	before, err := env.repos.StandingHistory.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, before, 3)
	assert.Equal(t, domain.StandingSuspension, before[2].Standing)

	again, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: student.ID, TermID: "2025FA"})
	require.NoError(t, err)
	require.NotNil(t, again.PreviousStanding)
	assert.Equal(t, domain.StandingProbation, *again.PreviousStanding, "threads from 2025SP, not the later suspension")
	assert.Equal(t, domain.StandingProbation, again.Standing)
	assert.Equal(t, 2, again.ConsecutiveProbationTerms)
	assert.Equal(t, 2, again.TotalProbationTerms)
	assert.Equal(t, before[1].ID, again.HistoryEntry.ID)

	after, err := env.repos.StandingHistory.ListByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, []string{"2025SP", "2025FA", "2026SP"},
		[]string{after[0].TermID, after[1].TermID, after[2].TermID})
	assert.True(t, after[1].RecordedAt.Equal(before[1].RecordedAt))

	latest, err := svc.EvaluateTerm(ctx, app.TermRequest{StudentID: student.ID, TermID: "2026SP"})
	require.NoError(t, err)
	assert.Equal(t, domain.StandingSuspension, latest.Standing, "2026SP still threads from 2025FA")
	assert.Equal(t, 1, latest.TotalSuspensions)
}
