package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/graduation"
	"github.com/alexanderramin/provost/internal/repository"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEligibility_FixtureStudentIsBlocked(t *testing.T) {
	env := newTestEnv(t)
	env.importFixtures(t)
	svc := NewGraduationService(env.repos, env.uow, domain.DefaultGraduationPolicy(), domain.DefaultLatinHonorsConfig(), 1)

	report, err := svc.CheckEligibility(context.Background(), fixtureStudent)
	require.NoError(t, err)

	assert.Equal(t, "BS-CS", report.ProgramCode)
	assert.False(t, report.Result.IsEligible)
	assert.False(t, report.Audit.AllRequirementsComplete)
	assert.Equal(t, 3, report.Audit.RequirementsTotal)
	assert.InDelta(t, 8.33, report.Audit.CompletionPercentage, 1e-9)
	for _, code := range []graduation.IssueCode{
		graduation.IssueAuditIncomplete,
		graduation.IssueTotalCreditsShort,
		graduation.IssueInstitutionalCreditsShort,
		graduation.IssueMilestoneIncomplete,
		graduation.IssueBlockingHold,
		graduation.IssueExitCounseling,
	} {
		assert.True(t, graduation.HasIssue(report.Result.Blockers, code), "missing blocker %s", code)
	}
	assert.True(t, graduation.HasIssue(report.Result.Warnings, graduation.IssueAdvisoryHold))
	assert.Equal(t, 10.0, report.Summary.EarnedCredits)
}

func TestCheckEligibility_NoActiveProgram(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedStudent(t, "Unenrolled")
	svc := NewGraduationService(env.repos, env.uow, domain.DefaultGraduationPolicy(), domain.DefaultLatinHonorsConfig(), 1)

	_, err := svc.CheckEligibility(context.Background(), student.ID)

	assert.ErrorIs(t, err, ErrNoActiveProgram)
}

func TestCheckConferral_RecordsDegree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, sp := env.seedGraduate(t)
	svc := NewGraduationService(env.repos, env.uow, graduatePolicy(), domain.DefaultLatinHonorsConfig(), 1)

	report, err := svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})
	require.NoError(t, err)

	assert.True(t, report.Result.IsEligible, "blockers: %v", report.Result.Blockers)
	assert.Equal(t, domain.HonorsNone, report.Honors.Designation, "six credits is below the honors floor")
	require.NotNil(t, report.Conferral)
	assert.Equal(t, sp.ID, report.Conferral.StudentProgramID)

	stored, err := env.repos.Conferrals.GetByStudentProgram(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Conferral.ID, stored.ID)
	enrollment, err := env.repos.Enrollments.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentCompleted, enrollment.Status)

	_, err = svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})
	assert.ErrorIs(t, err, ErrNoActiveProgram, "a completed enrollment is not evaluated again")
}

func TestCheckConferral_WithoutRecordWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, sp := env.seedGraduate(t)
	svc := NewGraduationService(env.repos, env.uow, graduatePolicy(), domain.DefaultLatinHonorsConfig(), 1)

	report, err := svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID})
	require.NoError(t, err)

	assert.True(t, report.Result.IsEligible)
	assert.Nil(t, report.Conferral)
	enrollment, err := env.repos.Enrollments.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, enrollment.Status)
}

func TestCheckConferral_DataIssuesBlock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, sp := env.seedGraduate(t)
	student.DiplomaNameVerified = false
	require.NoError(t, env.repos.Students.Update(ctx, student))
	svc := NewGraduationService(env.repos, env.uow, graduatePolicy(), domain.DefaultLatinHonorsConfig(), 1)

	eligibility, err := svc.CheckEligibility(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, eligibility.Result.IsEligible)

	report, err := svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})
	require.NoError(t, err)
	assert.False(t, report.Result.IsEligible)
	assert.True(t, graduation.HasIssue(report.Result.Blockers, graduation.IssueDiplomaNameUnverified))
	assert.Nil(t, report.Conferral)

	enrollment, err := env.repos.Enrollments.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, enrollment.Status)
}

func TestCheckConferral_AlreadyConferred(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, sp := env.seedGraduate(t)
	svc := NewGraduationService(env.repos, env.uow, graduatePolicy(), domain.DefaultLatinHonorsConfig(), 1)
	_, err := svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})
	require.NoError(t, err)
	require.NoError(t, env.repos.Enrollments.UpdateStatus(ctx, sp.ID, domain.EnrollmentActive))

	_, err = svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})

	assert.ErrorIs(t, err, ErrAlreadyConferred)
}

func TestLatinHonors_FromTranscript(t *testing.T) {
	env := newTestEnv(t)
	env.importFixtures(t)
	svc := NewGraduationService(env.repos, env.uow, domain.DefaultGraduationPolicy(), domain.DefaultLatinHonorsConfig(), 1)

	result, err := svc.LatinHonors(context.Background(), fixtureStudent)
	require.NoError(t, err)

	assert.Equal(t, domain.HonorsNone, result.Designation)
	assert.False(t, result.Qualified)
	assert.Contains(t, result.Reason, "total credits")
}

func TestCheckConferral_StatusFailureRollsBackConferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student, sp := env.seedGraduate(t)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 1,
		Match:  "UPDATE student_programs",
		Err:    errors.New("injected status failure"),
	}
	svc := NewGraduationService(env.repos, failUoW, graduatePolicy(), domain.DefaultLatinHonorsConfig(), 1)

	_, err := svc.CheckConferral(ctx, app.ConferralRequest{StudentID: student.ID, Record: true})
	require.ErrorContains(t, err, "injected status failure")

	_, err = env.repos.Conferrals.GetByStudentProgram(ctx, sp.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "conferral insert is rolled back")
	stored, err := env.repos.Enrollments.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, stored.Status)
}
