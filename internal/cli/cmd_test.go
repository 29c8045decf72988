package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/provost/internal/app"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/sap"
	"github.com/alexanderramin/provost/internal/service"
	"github.com/alexanderramin/provost/internal/standing"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	programFixture = "../importer/testdata/program_bscs.json"
	studentFixture = "../importer/testdata/student_record.json"
	fixtureStudent = "stu-0001"
)

// testApp wires a full App backed by an in-memory DB, rendering text as if
// stdout were a terminal.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := service.NewSQLiteRepositories(database)
	uow := testutil.NewTestUoW(database)
	metrics := service.NewMetricsObserver()

	return &App{
		Import:     service.NewImportService(uow),
		Audit:      service.NewAuditService(repos),
		Standing:   service.NewStandingService(repos, uow, domain.DefaultStandingPolicy(), 2, metrics),
		Sap:        service.NewSapService(repos, uow, domain.DefaultSapPolicy(), 2, metrics),
		Graduation: service.NewGraduationService(repos, uow, domain.DefaultGraduationPolicy(), domain.DefaultLatinHonorsConfig(), 2, metrics),
		History:    service.NewHistoryService(repos),
		Metrics:    metrics,
		IsTerminal: func() bool { return true },
	}
}

// seedFixtures imports the BS-CS program and Ada's record and returns her
// enrollment ID.
func seedFixtures(t *testing.T, a *App) string {
	t.Helper()
	ctx := context.Background()
	_, err := a.Import.ImportProgram(ctx, programFixture)
	require.NoError(t, err)
	result, err := a.Import.ImportStudent(ctx, studentFixture)
	require.NoError(t, err)
	require.Len(t, result.Enrollments, 1)
	return result.Enrollments[0].ID
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestImportCmd(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "import", "program", programFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "BS-CS")

	out, err = executeCmd(t, a, "import", "student", studentFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "stu-0001")

	out, err = executeCmd(t, a, "import", "student", studentFixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")
}

func TestImportCmd_MissingFile(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "import", "student", filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

func TestAuditCmd(t *testing.T) {
	a := testApp(t)
	enrollmentID := seedFixtures(t, a)

	out, err := executeCmd(t, a, "audit", enrollmentID)
	require.NoError(t, err)

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "CS Major Core")
	assert.Contains(t, out, "REQUIREMENTS")
}

func TestAuditCmd_JSON(t *testing.T) {
	a := testApp(t)
	enrollmentID := seedFixtures(t, a)

	out, err := executeCmd(t, a, "audit", enrollmentID, "--json")
	require.NoError(t, err)

	var report app.AuditReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, fixtureStudent, report.Audit.StudentID)
	assert.Equal(t, 8.33, report.Audit.CompletionPercentage)
}

func TestOutput_JSONWhenNotATerminal(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)
	a.IsTerminal = func() bool { return false }

	out, err := executeCmd(t, a, "honors", fixtureStudent)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, fixtureStudent, decoded["student_id"])
}

func TestStandingCmd(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	out, err := executeCmd(t, a, "standing", fixtureStudent, "--term", "2025FA", "--term-gpa", "3.8")
	require.NoError(t, err)
	assert.Contains(t, out, "Good standing")

	history, err := a.History.StudentHistory(context.Background(), fixtureStudent)
	require.NoError(t, err)
	require.Len(t, history.Standing, 3)
	last := history.Standing[2]
	assert.Equal(t, "2025FA", last.TermID)
	require.NotNil(t, last.TermGPA)
	assert.Equal(t, 3.8, *last.TermGPA)
}

func TestStandingCmd_DryRunAndRequiredTerm(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	_, err := executeCmd(t, a, "standing", fixtureStudent)
	assert.ErrorContains(t, err, `required flag(s) "term" not set`)

	_, err = executeCmd(t, a, "standing", fixtureStudent, "--term", "2025FA", "--dry-run")
	require.NoError(t, err)
	history, err := a.History.StudentHistory(context.Background(), fixtureStudent)
	require.NoError(t, err)
	assert.Len(t, history.Standing, 2)
}

func TestSapCmd(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	out, err := executeCmd(t, a, "sap", fixtureStudent, "--term", "2025FA", "--json")
	require.NoError(t, err)

	var result sap.SapResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.SapSatisfactory, result.Status)
	assert.Equal(t, 180.0, result.Timeframe.MaxCredits)
}

func TestGraduationCmd(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	out, err := executeCmd(t, a, "graduation", fixtureStudent)
	require.NoError(t, err)
	assert.Contains(t, out, "Not eligible")
	assert.Contains(t, out, "BLOCKING_HOLD")

	out, err = executeCmd(t, a, "graduation", fixtureStudent, "--confer")
	require.NoError(t, err)
	assert.Contains(t, out, "DEGREE CONFERRAL")
	assert.NotContains(t, out, "Conferred")
}

func TestGraduationCmd_UnknownStudent(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "graduation", "missing")

	assert.ErrorContains(t, err, "not found")
}

func TestBatchStandingCmd_AllStoredStudents(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)
	a.MetricsFile = filepath.Join(t.TempDir(), "provost.prom")

	out, err := executeCmd(t, a, "batch", "standing", "--term", "2025FA", "--json")
	require.NoError(t, err)

	var result app.BatchResult[standing.AcademicStandingResult]
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, map[string]int{"good_standing": 1}, result.StatusCounts)

	metrics, err := os.ReadFile(a.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `provost_batch_items_total{batch="standing",outcome="success"} 1`)
}

func TestBatchCmd_ReportsFailuresWithoutAborting(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	out, err := executeCmd(t, a, "batch", "sap", "--term", "2025FA", fixtureStudent, "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "1 succeeded")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "ghost")

	out, err = executeCmd(t, a, "batch", "graduation", fixtureStudent)
	require.NoError(t, err)
	assert.Contains(t, out, "blocker(s)")
}

func TestHistoryAndStudentsCmd(t *testing.T) {
	a := testApp(t)
	seedFixtures(t, a)

	out, err := executeCmd(t, a, "history", fixtureStudent)
	require.NoError(t, err)
	assert.Contains(t, out, "2024FA")
	assert.Contains(t, out, "No SAP evaluations recorded.")

	out, err = executeCmd(t, a, "students")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
}
