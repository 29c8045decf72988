package audit

import (
	"testing"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageCodes(msgs []AuditMessage) []MessageCode {
	codes := make([]MessageCode, 0, len(msgs))
	for _, m := range msgs {
		codes = append(codes, m.Code)
	}
	return codes
}

func appliedIDs(applied []AppliedCourse) []string {
	ids := make([]string, 0, len(applied))
	for _, a := range applied {
		ids = append(ids, a.StudentCourseID)
	}
	return ids
}

func TestEvaluateRequirement_SubjectGroupSatisfiedByOneCourse(t *testing.T) {
	req := testutil.NewTestRequirement("CS Electives",
		testutil.WithGroup(testutil.SubjectGroup("CS", 3)))
	courses := []domain.StudentCourse{
		testutil.NewTestCourse("CS 210", 3, testutil.WithGrade("A")),
	}

	result := EvaluateRequirement(req, courses, NewUsageLedger(), nil)

	assert.Equal(t, domain.RequirementComplete, result.Status)
	assert.Equal(t, 3.0, result.CreditsEarned)
	require.Len(t, result.Groups, 1)
	assert.True(t, result.Groups[0].Satisfied)
	assert.Empty(t, result.MissingCourses)
	require.NotNil(t, result.GPA)
	assert.InDelta(t, 4.0, *result.GPA, 1e-9)
}

func TestEvaluateRequirement_MandatoryBeforeGroup(t *testing.T) {
	cs101 := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("B"))
	cs201 := testutil.NewTestCourse("CS 201", 3, testutil.WithGrade("A"))
	req := testutil.NewTestRequirement("Major Core",
		testutil.WithRequiredCourse("CS101"),
		testutil.WithGroup(testutil.SubjectGroup("CS", 3)))

	result := EvaluateRequirement(req, []domain.StudentCourse{cs201, cs101}, nil, nil)

	assert.Equal(t, domain.RequirementComplete, result.Status)
	assert.Equal(t, []string{cs101.ID, cs201.ID}, appliedIDs(result.AppliedCourses))
	require.Len(t, result.Groups, 1)
	assert.Equal(t, []string{cs201.ID}, result.Groups[0].StudentCourseIDs)
}

func TestEvaluateRequirement_RequiredCourseMissing(t *testing.T) {
	req := testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("MATH101"))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A")),
	}, nil, nil)

	assert.Equal(t, domain.RequirementNotStarted, result.Status)
	require.Len(t, result.MissingCourses, 1)
	assert.Equal(t, "MATH101", result.MissingCourses[0].CourseID)
	assert.True(t, result.MissingCourses[0].Required)
	assert.Contains(t, messageCodes(result.Messages), MsgRequiredCourseMissing)
}

func TestEvaluateRequirement_MinimumGradeNotMet(t *testing.T) {
	req := testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101", "B"))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C")),
	}, nil, nil)

	assert.NotEqual(t, domain.RequirementComplete, result.Status)
	assert.Empty(t, result.AppliedCourses)
	require.Len(t, result.MissingCourses, 1)
	assert.Contains(t, result.MissingCourses[0].Reason, "does not meet minimum B")
	assert.Contains(t, messageCodes(result.Messages), MsgMinimumGradeNotMet)
}

func TestEvaluateRequirement_BestAttemptWins(t *testing.T) {
	first := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("C"), testutil.WithStudentCourseID("sc-a"))
	retake := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A"), testutil.WithStudentCourseID("sc-b"))
	req := testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))

	result := EvaluateRequirement(req, []domain.StudentCourse{first, retake}, nil, nil)

	require.Len(t, result.AppliedCourses, 1)
	assert.Equal(t, "sc-b", result.AppliedCourses[0].StudentCourseID)
	assert.Equal(t, 3.0, result.CreditsEarned)
}

func TestEvaluateRequirement_InProgressCountsTentatively(t *testing.T) {
	req := testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithInProgress()),
	}, nil, nil)

	assert.Equal(t, domain.RequirementInProgress, result.Status)
	assert.True(t, result.CompletesWhenGradesPost)
	assert.Equal(t, 0.0, result.CreditsEarned)
	assert.Equal(t, 3.0, result.CreditsInProgress)
	assert.Equal(t, 1, result.CoursesInProgress)
	require.Len(t, result.AppliedCourses, 1)
	assert.True(t, result.AppliedCourses[0].MetMinimumGrade)
}

func TestEvaluateRequirement_EmptyRequirementNeverCompletes(t *testing.T) {
	req := testutil.NewTestRequirement("Placeholder")

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A")),
	}, nil, nil)

	assert.NotEqual(t, domain.RequirementComplete, result.Status)
	require.NotEmpty(t, result.Messages)
	assert.Equal(t, MsgEmptyRequirement, result.Messages[0].Code)
	assert.Equal(t, domain.MessageError, result.Messages[0].Level)
}

func TestEvaluateRequirement_GroupWithoutMinimumsNeedsOneCourse(t *testing.T) {
	req := testutil.NewTestRequirement("Lab",
		testutil.WithGroup(domain.RequirementCourseGroup{
			Name: "Any lab",
			Rule: &domain.CourseSelectionRule{Attributes: []string{"LAB"}},
		}))
	lab1 := testutil.NewTestCourse("BIO 110", 1, testutil.WithGrade("B"), testutil.WithAttributes("LAB"))
	lab2 := testutil.NewTestCourse("CHEM 110", 1, testutil.WithGrade("A"), testutil.WithAttributes("LAB"))

	result := EvaluateRequirement(req, []domain.StudentCourse{lab1, lab2}, nil, nil)

	assert.Equal(t, domain.RequirementComplete, result.Status)
	require.Len(t, result.Groups, 1)
	assert.Equal(t, 1, result.Groups[0].CoursesRequired)
	assert.Equal(t, []string{lab1.ID}, result.Groups[0].StudentCourseIDs)
}

func TestEvaluateRequirement_GroupExclusions(t *testing.T) {
	req := testutil.NewTestRequirement("Upper Division",
		testutil.WithGroup(domain.RequirementCourseGroup{
			Name:           "300-level CS",
			MinimumCredits: testutil.FloatPtr(3),
			Rule: &domain.CourseSelectionRule{
				SubjectCodes:     []string{"cs"},
				MinLevel:         testutil.IntPtr(300),
				ExcludeCourseIDs: []string{"CS390"},
			},
		}))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 390", 3, testutil.WithGrade("A")),
		testutil.NewTestCourse("CS 210", 3, testutil.WithGrade("A")),
	}, nil, nil)

	assert.Equal(t, domain.RequirementNotStarted, result.Status)
	require.Len(t, result.MissingCourses, 1)
	assert.Equal(t, "needs 3 more credits", result.MissingCourses[0].Reason)
	assert.Contains(t, messageCodes(result.Messages), MsgGroupShort)
}

func TestEvaluateRequirement_RepeatedCourseCountsOnce(t *testing.T) {
	req := testutil.NewTestRequirement("CS Electives",
		testutil.WithGroup(testutil.SubjectGroup("CS", 6)))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 250", 3, testutil.WithGrade("B")),
		testutil.NewTestCourse("CS 250", 3, testutil.WithGrade("A")),
	}, nil, nil)

	assert.Equal(t, 3.0, result.CreditsEarned)
	assert.Equal(t, domain.RequirementIncomplete, result.Status)
}

func TestEvaluateRequirement_IgnoresWithdrawnAndFailedAttempts(t *testing.T) {
	req := testutil.NewTestRequirement("Core", testutil.WithRequiredCourse("CS101"))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithCourseStatus(domain.CourseWithdrawn)),
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("F"), testutil.WithCourseStatus(domain.CourseFailed)),
	}, nil, nil)

	assert.Equal(t, domain.RequirementNotStarted, result.Status)
	assert.Empty(t, result.AppliedCourses)
}

func TestEvaluateRequirement_CompletedWithoutGrade(t *testing.T) {
	ungraded := testutil.NewTestCourse("ART 100", 3)
	tests := []struct {
		name     string
		minimum  []string
		expected domain.RequirementStatus
	}{
		{"no minimum accepts ungraded completion", nil, domain.RequirementComplete},
		{"minimum rejects ungraded completion", []string{"C"}, domain.RequirementNotStarted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewTestRequirement("Arts", testutil.WithRequiredCourse("ART100", tt.minimum...))
			result := EvaluateRequirement(req, []domain.StudentCourse{ungraded}, nil, nil)
			assert.Equal(t, tt.expected, result.Status)
		})
	}
}

func TestEvaluateRequirement_RequirementGPAFloor(t *testing.T) {
	req := testutil.NewTestRequirement("Major Core",
		testutil.WithGroup(testutil.SubjectGroup("CS", 6)),
		testutil.WithMinimumGPA(3.0))

	result := EvaluateRequirement(req, []domain.StudentCourse{
		testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("B")),
		testutil.NewTestCourse("CS 102", 3, testutil.WithGrade("C")),
	}, nil, nil)

	require.NotNil(t, result.GPA)
	assert.InDelta(t, 2.5, *result.GPA, 1e-9)
	assert.Equal(t, domain.RequirementIncomplete, result.Status)
	assert.Contains(t, messageCodes(result.Messages), MsgRequirementGPAShort)
}

func TestEvaluateRequirement_RespectsLedgerClaims(t *testing.T) {
	course := testutil.NewTestCourse("CS 101", 3, testutil.WithGrade("A"))
	first := testutil.NewTestRequirement("Major Core", testutil.WithRequiredCourse("CS101"))
	second := testutil.NewTestRequirement("Writing", testutil.WithRequiredCourse("CS101"), testutil.WithSharing())

	ledger := NewUsageLedger()
	EvaluateRequirement(first, []domain.StudentCourse{course}, ledger, nil)
	result := EvaluateRequirement(second, []domain.StudentCourse{course}, ledger, nil)

	assert.Empty(t, result.AppliedCourses)
	require.Len(t, result.MissingCourses, 1)
	assert.Contains(t, result.MissingCourses[0].Reason, first.ID)
	assert.Contains(t, messageCodes(result.Messages), MsgCourseAlreadyApplied)
}

func TestMatchesRule(t *testing.T) {
	course := testutil.NewTestCourse("CS 301L", 4, testutil.WithAttributes("LAB", "WI"))
	tests := []struct {
		name     string
		rule     domain.CourseSelectionRule
		expected bool
	}{
		{"empty rule matches nothing", domain.CourseSelectionRule{}, false},
		{"subject case-insensitive", domain.CourseSelectionRule{SubjectCodes: []string{"cs"}}, true},
		{"subject mismatch", domain.CourseSelectionRule{SubjectCodes: []string{"MATH"}}, false},
		{"level within range", domain.CourseSelectionRule{MinLevel: testutil.IntPtr(300), MaxLevel: testutil.IntPtr(399)}, true},
		{"level below floor", domain.CourseSelectionRule{MinLevel: testutil.IntPtr(400)}, false},
		{"any attribute", domain.CourseSelectionRule{Attributes: []string{"QR", "WI"}}, true},
		{"all criteria must hold", domain.CourseSelectionRule{SubjectCodes: []string{"CS"}, Attributes: []string{"QR"}}, false},
		{"explicit id", domain.CourseSelectionRule{CourseIDs: []string{"CS301L"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesRule(tt.rule, course))
		})
	}
}

func TestCourseLevel(t *testing.T) {
	level, ok := CourseLevel("301L")
	assert.True(t, ok)
	assert.Equal(t, 301, level)

	_, ok = CourseLevel("H10")
	assert.False(t, ok)
}
