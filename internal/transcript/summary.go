package transcript

import (
	"math"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// GradeLookup resolves letter grades. domain.GradeScale implements it.
type GradeLookup interface {
	Points(grade string) (float64, bool)
	IsPassing(grade string) bool
	IsIncomplete(grade string) bool
}

// Summary is the set of transcript figures standing, SAP and graduation
// checks are fed with.
type Summary struct {
	AttemptedCredits     float64  `json:"attempted_credits"`
	EarnedCredits        float64  `json:"earned_credits"`
	InstitutionalCredits float64  `json:"institutional_credits"`
	TransferCredits      float64  `json:"transfer_credits"`
	InProgressCredits    float64  `json:"in_progress_credits"`
	GPACredits           float64  `json:"gpa_credits"`
	QualityPoints        float64  `json:"quality_points"`
	CumulativeGPA        *float64 `json:"cumulative_gpa,omitempty"`
	InstitutionalGPA     *float64 `json:"institutional_gpa,omitempty"`
	CoursesCompleted     int      `json:"courses_completed"`
	IncompleteGrades     int      `json:"incomplete_grades"`
	PendingGrades        int      `json:"pending_grades"`
}

// Summarize totals a student's course attempts.
//
// Attempted credits include completed and failed attempts plus withdrawals
// that left a grade on the transcript. Earned credits are completed attempts
// with a passing or not-yet-required grade. Only registration attempts count
// as institutional. Pending grades are completed registration attempts with
// no grade posted.
func Summarize(courses []domain.StudentCourse, grades GradeLookup) Summary {
	if grades == nil {
		grades = domain.StandardGradeScale
	}

	var s Summary
	var instCredits, instPoints float64
	for _, c := range courses {
		credits := c.SafeCredits()
		grade := strings.TrimSpace(c.GradeString())
		institutional := c.Source == "" || c.Source == domain.SourceRegistration

		if grade != "" && grades.IsIncomplete(grade) {
			s.IncompleteGrades++
		}

		switch c.Status {
		case domain.CourseInProgress:
			s.InProgressCredits += credits
			continue
		case domain.CourseWithdrawn:
			if grade != "" {
				s.AttemptedCredits += credits
			}
			continue
		case domain.CourseCompleted, domain.CourseFailed:
			s.AttemptedCredits += credits
		default:
			continue
		}

		if c.Status == domain.CourseCompleted {
			if grade == "" && institutional {
				s.PendingGrades++
			}
			if grade == "" || grades.IsPassing(grade) {
				s.EarnedCredits += credits
				s.CoursesCompleted++
				if institutional {
					s.InstitutionalCredits += credits
				} else {
					s.TransferCredits += credits
				}
			}
		}

		points, ok := gradePoints(c, grade, grades)
		if !ok {
			continue
		}
		s.GPACredits += credits
		s.QualityPoints += credits * points
		if institutional {
			instCredits += credits
			instPoints += credits * points
		}
	}

	s.CumulativeGPA = ratio(s.QualityPoints, s.GPACredits)
	s.InstitutionalGPA = ratio(instPoints, instCredits)
	return s
}

// gradePoints prefers the recorded grade points and falls back to the scale.
func gradePoints(c domain.StudentCourse, grade string, grades GradeLookup) (float64, bool) {
	if c.GradePoints != nil {
		return math.Max(0, *c.GradePoints), true
	}
	if grade == "" {
		return 0, false
	}
	return grades.Points(grade)
}

func ratio(points, credits float64) *float64 {
	if credits <= 0 {
		return nil
	}
	v := points / credits
	return &v
}
