package audit

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var (
	propSubjects = []string{"CS", "MATH", "ENG"}
	propGrades   = []string{"A", "B+", "B", "C", "D", "F", "P"}
	propStatuses = []domain.CourseStatus{
		domain.CourseCompleted, domain.CourseCompleted, domain.CourseCompleted,
		domain.CourseInProgress, domain.CourseWithdrawn, domain.CourseFailed,
	}
)

func randomCourses(rng *rand.Rand, n int) []domain.StudentCourse {
	courses := make([]domain.StudentCourse, 0, n)
	for i := 0; i < n; i++ {
		subject := propSubjects[rng.Intn(len(propSubjects))]
		code := fmt.Sprintf("%s %d", subject, 100+rng.Intn(4)*100+rng.Intn(3))
		opts := []testutil.CourseOption{testutil.WithStudentCourseID(fmt.Sprintf("c-%02d", i))}
		switch status := propStatuses[rng.Intn(len(propStatuses))]; status {
		case domain.CourseCompleted:
			opts = append(opts, testutil.WithGrade(propGrades[rng.Intn(len(propGrades))]))
		case domain.CourseInProgress:
			opts = append(opts, testutil.WithInProgress())
		default:
			opts = append(opts, testutil.WithCourseStatus(status))
		}
		courses = append(courses, testutil.NewTestCourse(code, float64(rng.Intn(5)), opts...))
	}
	return courses
}

func randomRequirements(rng *rand.Rand, courses []domain.StudentCourse, n int) []domain.DegreeRequirement {
	reqs := make([]domain.DegreeRequirement, 0, n)
	for i := 0; i < n; i++ {
		var opts []testutil.RequirementOption
		opts = append(opts, testutil.WithDisplayOrder(rng.Intn(3)))
		if rng.Intn(2) == 0 {
			opts = append(opts, testutil.WithSharing())
		}
		if len(courses) > 0 && rng.Intn(2) == 0 {
			opts = append(opts, testutil.WithRequiredCourse(courses[rng.Intn(len(courses))].CourseID))
		}
		if rng.Intn(2) == 0 {
			opts = append(opts, testutil.WithGroup(testutil.SubjectGroup(propSubjects[rng.Intn(len(propSubjects))], float64(rng.Intn(9)))))
		}
		if rng.Intn(3) == 0 {
			opts = append(opts, testutil.WithMinimumCredits(float64(rng.Intn(10))))
		}
		reqs = append(reqs, testutil.NewTestRequirement(fmt.Sprintf("req %d", i), opts...))
	}
	return reqs
}

// TestRunDegreeAudit_Invariants property-tests the audit against random
// records: sharing rules hold, completion bounds hold, and output is
// deterministic.
func TestRunDegreeAudit_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		courses := randomCourses(rng, rng.Intn(12))
		reqs := randomRequirements(rng, courses, rng.Intn(5)+1)
		input := newAuditInput(float64(rng.Intn(40)), reqs, courses)

		result := RunDegreeAudit(input, nil)

		sharing := make(map[string]bool, len(reqs))
		for _, r := range reqs {
			sharing[r.ID] = r.AllowSharing
		}

		// Invariant 1: a course claimed twice is only claimed by sharing requirements
		for _, ac := range result.AppliedCourses {
			if len(ac.RequirementIDs) < 2 {
				continue
			}
			for _, id := range ac.RequirementIDs {
				assert.True(t, sharing[id],
					"trial %d: course %s shared by non-sharing requirement %s", trial, ac.StudentCourseID, id)
			}
		}

		// Invariant 2: completion is bounded
		assert.GreaterOrEqual(t, result.CompletionPercentage, 0.0, "trial %d", trial)
		assert.LessOrEqual(t, result.CompletionPercentage, 100.0, "trial %d", trial)

		// Invariant 3: complete requirements meet their credit floor with earned credits
		for _, rr := range result.Requirements {
			if rr.Status == domain.RequirementComplete {
				assert.GreaterOrEqual(t, rr.CreditsEarned+creditEpsilon, rr.CreditsRequired,
					"trial %d: requirement %s complete below its credit floor", trial, rr.RequirementID)
				assert.Zero(t, rr.CoursesInProgress, "trial %d: requirement %s complete with in-progress work", trial, rr.RequirementID)
			}
		}

		// Invariant 4: only completed or in-progress attempts are ever applied
		for _, ac := range result.AppliedCourses {
			assert.Contains(t, []domain.CourseStatus{domain.CourseCompleted, domain.CourseInProgress}, ac.Status,
				"trial %d", trial)
		}

		// Invariant 5: identical input yields identical output
		assert.Equal(t, result, RunDegreeAudit(input, nil), "trial %d: audit is not deterministic", trial)
	}
}

// TestRunDegreeAudit_Monotonic checks that adding a passing completed course
// never lowers earned credits or the number of complete requirements when
// every requirement shares.
func TestRunDegreeAudit_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		courses := randomCourses(rng, rng.Intn(10))
		reqs := randomRequirements(rng, courses, rng.Intn(4)+1)
		// Requirement-level credit floors are left out: greedy group filling
		// may pick one larger course over two smaller ones.
		for i := range reqs {
			reqs[i].AllowSharing = true
			reqs[i].MinimumCredits = nil
		}
		before := RunDegreeAudit(newAuditInput(60, reqs, courses), nil)

		extra := testutil.NewTestCourse(
			fmt.Sprintf("%s 499", propSubjects[rng.Intn(len(propSubjects))]),
			float64(rng.Intn(4)+1),
			testutil.WithGrade("A"),
			testutil.WithStudentCourseID("z-extra"),
		)
		after := RunDegreeAudit(newAuditInput(60, reqs, append(append([]domain.StudentCourse(nil), courses...), extra)), nil)

		assert.GreaterOrEqual(t, after.TotalCreditsEarned, before.TotalCreditsEarned, "trial %d", trial)
		assert.GreaterOrEqual(t, after.RequirementsComplete, before.RequirementsComplete, "trial %d", trial)
	}
}
