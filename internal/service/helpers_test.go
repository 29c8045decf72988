package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/db"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	programFixture = "../importer/testdata/program_bscs.json"
	studentFixture = "../importer/testdata/student_record.json"
	fixtureStudent = "stu-0001"
)

type testEnv struct {
	db    *sql.DB
	repos Repositories
	uow   db.UnitOfWork
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:    database,
		repos: NewSQLiteRepositories(database),
		uow:   testutil.NewTestUoW(database),
	}
}

// importFixtures loads the BS-CS program and Ada's record from the
// importer testdata.
func (e *testEnv) importFixtures(t *testing.T) *app.ImportStudentResult {
	t.Helper()
	ctx := context.Background()
	svc := NewImportService(e.uow)
	_, err := svc.ImportProgram(ctx, programFixture)
	require.NoError(t, err)
	result, err := svc.ImportStudent(ctx, studentFixture)
	require.NoError(t, err)
	return result
}

// seedStudent stores a student with the given courses and no enrollment.
func (e *testEnv) seedStudent(t *testing.T, name string, courses ...domain.StudentCourse) *domain.Student {
	t.Helper()
	ctx := context.Background()
	student := testutil.NewTestStudent(name)
	require.NoError(t, e.repos.Students.Create(ctx, student))
	for _, c := range courses {
		c.StudentID = student.ID
		require.NoError(t, e.repos.Courses.Create(ctx, &c))
	}
	return student
}

// seedGraduate stores a six-credit program and a student who has finished
// it, enrolled and ready to confer under graduatePolicy.
func (e *testEnv) seedGraduate(t *testing.T) (*domain.Student, *domain.StudentProgram) {
	t.Helper()
	ctx := context.Background()

	program := testutil.NewTestProgram("BA-TEST", 6)
	require.NoError(t, e.repos.Programs.Create(ctx, program))
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"), testutil.WithRequiredCourse("CS102")),
	}
	require.NoError(t, e.repos.Programs.ReplaceRequirements(ctx, program.ID, reqs))

	student := e.seedStudent(t, "Grace Hopper",
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A")),
		testutil.NewTestCourse("CS 102", 3, testutil.WithGrade("B")),
	)
	sp := &domain.StudentProgram{
		ID:        uuid.New().String(),
		StudentID: student.ID,
		ProgramID: program.ID,
		Status:    domain.EnrollmentActive,
	}
	require.NoError(t, e.repos.Enrollments.Create(ctx, sp))
	return student, sp
}

func graduatePolicy() domain.GraduationPolicyConfig {
	return domain.GraduationPolicyConfig{
		MinimumTotalCredits:         6,
		MinimumInstitutionalCredits: 6,
		MinimumCumulativeGPA:        2.0,
	}
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
