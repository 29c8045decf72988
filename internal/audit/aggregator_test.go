package audit

import (
	"testing"
	"time"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditDate = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func newAuditInput(total float64, reqs []domain.DegreeRequirement, courses []domain.StudentCourse) DegreeAuditInput {
	return DegreeAuditInput{
		StudentID:            "stu-1",
		StudentProgramID:     "sp-1",
		ProgramID:            "prog-1",
		TotalCreditsRequired: total,
		Requirements:         reqs,
		StudentCourses:       courses,
		AuditDate:            auditDate,
	}
}

func TestRunDegreeAudit_CompleteProgram(t *testing.T) {
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("Major Core", testutil.WithRequiredCourse("CS101"), testutil.WithCategory("major")),
		testutil.NewTestRequirement("Math", testutil.WithRequiredCourse("MATH101"), testutil.WithDisplayOrder(1)),
	}
	courses := []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A")),
		testutil.NewTestCourse("MATH 101", 3, testutil.WithGrade("B")),
	}

	result := RunDegreeAudit(newAuditInput(6, reqs, courses), nil)

	assert.Equal(t, domain.AuditComplete, result.Status)
	assert.Equal(t, auditDate, result.AuditDate)
	assert.Equal(t, 2, result.RequirementsTotal)
	assert.Equal(t, 2, result.RequirementsComplete)
	assert.Equal(t, 6.0, result.TotalCreditsEarned)
	assert.Equal(t, 100.0, result.CompletionPercentage)
	require.NotNil(t, result.OverallGPA)
	assert.InDelta(t, 3.5, *result.OverallGPA, 1e-9)
	require.NotNil(t, result.MajorGPA)
	assert.InDelta(t, 4.0, *result.MajorGPA, 1e-9)
	assert.Empty(t, result.UnusedCourses)
}

func TestRunDegreeAudit_OrdersByDisplayOrder(t *testing.T) {
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("Third", testutil.WithRequiredCourse("C"), testutil.WithDisplayOrder(3)),
		testutil.NewTestRequirement("First", testutil.WithRequiredCourse("A"), testutil.WithDisplayOrder(1)),
		testutil.NewTestRequirement("Second", testutil.WithRequiredCourse("B"), testutil.WithDisplayOrder(2)),
	}

	result := RunDegreeAudit(newAuditInput(120, reqs, nil), nil)

	require.Len(t, result.Requirements, 3)
	assert.Equal(t, "First", result.Requirements[0].RequirementName)
	assert.Equal(t, "Second", result.Requirements[1].RequirementName)
	assert.Equal(t, "Third", result.Requirements[2].RequirementName)
}

func TestRunDegreeAudit_NonSharingRequirementClaimsFirst(t *testing.T) {
	course := testutil.NewTestCourse("ENG 101", 3, testutil.WithGrade("A"))
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("Composition", testutil.WithRequiredCourse("ENG101"), testutil.WithDisplayOrder(1)),
		testutil.NewTestRequirement("Writing Intensive", testutil.WithRequiredCourse("ENG101"), testutil.WithSharing(), testutil.WithDisplayOrder(2)),
	}

	result := RunDegreeAudit(newAuditInput(120, reqs, []domain.StudentCourse{course}), nil)

	assert.Equal(t, domain.RequirementComplete, result.Requirements[0].Status)
	assert.NotEqual(t, domain.RequirementComplete, result.Requirements[1].Status)
	require.Len(t, result.AppliedCourses, 1)
	assert.Equal(t, []string{reqs[0].ID}, result.AppliedCourses[0].RequirementIDs)
}

func TestRunDegreeAudit_SharedCourseCountsForBoth(t *testing.T) {
	course := testutil.NewTestCourse("ENG 101", 3, testutil.WithGrade("A"))
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("Composition", testutil.WithRequiredCourse("ENG101"), testutil.WithSharing(), testutil.WithDisplayOrder(1)),
		testutil.NewTestRequirement("Writing Intensive", testutil.WithRequiredCourse("ENG101"), testutil.WithSharing(), testutil.WithDisplayOrder(2)),
	}

	result := RunDegreeAudit(newAuditInput(3, reqs, []domain.StudentCourse{course}), nil)

	assert.Equal(t, domain.AuditComplete, result.Status)
	require.Len(t, result.AppliedCourses, 1)
	assert.Equal(t, []string{reqs[0].ID, reqs[1].ID}, result.AppliedCourses[0].RequirementIDs)
	assert.Equal(t, 3.0, result.TotalCreditsEarned, "shared course credits count once")
}

func TestRunDegreeAudit_CompletionPercentage(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		credits  float64
		expected float64
	}{
		{"partial", 120, 30, 25},
		{"rounded to hundredths", 90, 10, 11.11},
		{"capped at 100", 60, 90, 100},
		{"unset total", 0, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := []domain.StudentCourse{testutil.NewTestCourse("GEN 100", tt.credits, testutil.WithGrade("B"))}
			result := RunDegreeAudit(newAuditInput(tt.total, nil, courses), nil)
			assert.Equal(t, tt.expected, result.CompletionPercentage)
		})
	}
}

func TestRunDegreeAudit_UnsetTotalWarns(t *testing.T) {
	result := RunDegreeAudit(newAuditInput(0, nil, nil), nil)

	assert.Contains(t, messageCodes(result.Messages), MsgTotalCreditsUnset)
	assert.Equal(t, domain.AuditIncomplete, result.Status)
}

func TestRunDegreeAudit_OverallGPAFloorBlocksCompletion(t *testing.T) {
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))}
	courses := []domain.StudentCourse{testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C"))}
	input := newAuditInput(3, reqs, courses)
	input.OverallGPARequired = testutil.FloatPtr(2.5)

	result := RunDegreeAudit(input, nil)

	assert.True(t, result.AllRequirementsComplete())
	assert.False(t, result.OverallGPAMet)
	assert.Equal(t, domain.AuditIncomplete, result.Status)
	assert.Contains(t, messageCodes(result.Messages), MsgOverallGPAShort)
}

func TestRunDegreeAudit_SuppliedOverallGPAWins(t *testing.T) {
	courses := []domain.StudentCourse{testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C"))}
	input := newAuditInput(3, nil, courses)
	input.OverallGPAActual = testutil.FloatPtr(3.2)

	result := RunDegreeAudit(input, nil)

	require.NotNil(t, result.OverallGPA)
	assert.Equal(t, 3.2, *result.OverallGPA)
}

func TestRunDegreeAudit_NegativeSuppliedGPAClamped(t *testing.T) {
	input := newAuditInput(3, nil, nil)
	input.OverallGPAActual = testutil.FloatPtr(-0.5)
	input.OverallGPARequired = testutil.FloatPtr(2.0)

	result := RunDegreeAudit(input, nil)

	require.NotNil(t, result.OverallGPA)
	assert.Equal(t, 0.0, *result.OverallGPA)
	assert.False(t, result.OverallGPAMet)
	assert.Equal(t, -0.5, *input.OverallGPAActual, "input is not modified")
}

func TestRunDegreeAudit_BlankGradeIsPending(t *testing.T) {
	blank := testutil.NewTestCourse("CS 101", 3)
	blank.Grade = testutil.StrPtr(" ")
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))}

	result := RunDegreeAudit(newAuditInput(3, reqs, []domain.StudentCourse{blank}), nil)

	assert.Equal(t, 3.0, result.TotalCreditsEarned, "counted like a completed course awaiting its grade")
	assert.Equal(t, domain.RequirementComplete, result.Requirements[0].Status)
	assert.Equal(t, " ", *blank.Grade)
}

func TestRunDegreeAudit_MissingMajorGPAWarnsOnly(t *testing.T) {
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Gen Ed", testutil.WithRequiredCourse("ENG101"))}
	courses := []domain.StudentCourse{testutil.NewTestCourse("ENG 101", 3, testutil.WithGrade("B"))}
	input := newAuditInput(3, reqs, courses)
	input.MajorGPARequired = testutil.FloatPtr(2.5)

	result := RunDegreeAudit(input, nil)

	assert.Nil(t, result.MajorGPA)
	assert.True(t, result.MajorGPAMet)
	assert.Equal(t, domain.AuditComplete, result.Status)
	assert.Contains(t, messageCodes(result.Messages), MsgMajorGPAUnavailable)
}

func TestRunDegreeAudit_InProgressStatus(t *testing.T) {
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))}
	courses := []domain.StudentCourse{testutil.NewTestCourse("CS 101", 3, testutil.WithInProgress())}

	result := RunDegreeAudit(newAuditInput(3, reqs, courses), nil)

	assert.Equal(t, domain.AuditInProgress, result.Status)
	assert.Equal(t, 0.0, result.TotalCreditsEarned)
	assert.Equal(t, 3.0, result.TotalCreditsInProgress)
}

func TestRunDegreeAudit_UnusedCourses(t *testing.T) {
	used := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A"))
	elective := testutil.NewTestCourse("ART 100", 3, testutil.WithGrade("B"))
	dropped := testutil.NewTestCourse("HIST 100", 3, testutil.WithCourseStatus(domain.CourseWithdrawn))
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))}

	result := RunDegreeAudit(newAuditInput(120, reqs, []domain.StudentCourse{used, elective, dropped}), nil)

	require.Len(t, result.UnusedCourses, 1)
	assert.Equal(t, elective.ID, result.UnusedCourses[0].ID)
	assert.Equal(t, 6.0, result.TotalCreditsEarned, "earned credits include courses no requirement used")
}

func TestRunDegreeAudit_MalformedCoursesReportedOnce(t *testing.T) {
	noID := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A"), testutil.WithStudentCourseID(""))
	negative := testutil.NewTestCourse("CS 102", -3, testutil.WithGrade("A"))
	reqs := []domain.DegreeRequirement{
		testutil.NewTestRequirement("A", testutil.WithGroup(testutil.SubjectGroup("CS", 3))),
		testutil.NewTestRequirement("B", testutil.WithGroup(testutil.SubjectGroup("CS", 3))),
	}

	result := RunDegreeAudit(newAuditInput(120, reqs, []domain.StudentCourse{noID, negative}), nil)

	count := 0
	for _, m := range result.Messages {
		if m.Code == MsgMalformedCourse {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, 0.0, result.TotalCreditsEarned)
}

func TestRunDegreeAudit_EmptyRecord(t *testing.T) {
	reqs := []domain.DegreeRequirement{testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))}

	result := RunDegreeAudit(newAuditInput(120, reqs, nil), nil)

	assert.Equal(t, domain.AuditIncomplete, result.Status)
	assert.Equal(t, domain.RequirementNotStarted, result.Requirements[0].Status)
	assert.Contains(t, messageCodes(result.Messages), MsgNoCourses)
	assert.NotNil(t, result.AppliedCourses)
	assert.NotNil(t, result.UnusedCourses)
}

func TestRunDegreeAudit_SummaryMessageLast(t *testing.T) {
	result := RunDegreeAudit(newAuditInput(120, nil, nil), nil)

	require.NotEmpty(t, result.Messages)
	last := result.Messages[len(result.Messages)-1]
	assert.Equal(t, MsgAuditSummary, last.Code)
	assert.Equal(t, "0 of 0 requirements complete; 0 of 120 credits earned (0.0%)", last.Message)
}
