package domain

import "strings"

// GradeScale maps letter grades to grade points and knows which grades
// never satisfy a requirement.
type GradeScale struct {
	points        map[string]float64
	nonSatisfying map[string]bool
}

// StandardGradeScale is the 4.0 letter scale used by the registrar.
var StandardGradeScale = NewGradeScale(
	map[string]float64{
		"A+": 4.0, "A": 4.0, "A-": 3.7,
		"B+": 3.3, "B": 3.0, "B-": 2.7,
		"C+": 2.3, "C": 2.0, "C-": 1.7,
		"D+": 1.3, "D": 1.0, "D-": 0.7,
		"F": 0.0,
	},
	[]string{"F", "NP", "NC", "U", "WF", "W", "I", "E"},
)

// NewGradeScale builds a scale from grade points and non-satisfying grades.
// Grade keys are matched case-insensitively.
func NewGradeScale(points map[string]float64, nonSatisfying []string) GradeScale {
	s := GradeScale{
		points:        make(map[string]float64, len(points)),
		nonSatisfying: make(map[string]bool, len(nonSatisfying)),
	}
	for g, p := range points {
		s.points[normalizeGrade(g)] = p
	}
	for _, g := range nonSatisfying {
		s.nonSatisfying[normalizeGrade(g)] = true
	}
	return s
}

func normalizeGrade(g string) string {
	return strings.ToUpper(strings.TrimSpace(g))
}

// Points returns the grade points for a letter grade.
func (s GradeScale) Points(grade string) (float64, bool) {
	p, ok := s.points[normalizeGrade(grade)]
	return p, ok
}

// IsPassing reports whether a grade can satisfy a requirement with no
// minimum grade. Unknown non-empty grades (P, CR, S, TR) pass.
func (s GradeScale) IsPassing(grade string) bool {
	g := normalizeGrade(grade)
	if g == "" {
		return false
	}
	return !s.nonSatisfying[g]
}

// MeetsMinimum reports whether grade is at or above minimum. An unscaled
// minimum (such as "P") reduces to IsPassing; an unscaled grade never meets
// a scaled minimum.
func (s GradeScale) MeetsMinimum(grade, minimum string) bool {
	if !s.IsPassing(grade) {
		return false
	}
	floor, ok := s.Points(minimum)
	if !ok {
		return true
	}
	got, ok := s.Points(grade)
	if !ok {
		return false
	}
	return got >= floor
}

// IsIncomplete reports whether the grade marks an unfinished course.
func (s GradeScale) IsIncomplete(grade string) bool {
	g := normalizeGrade(grade)
	return g == "I" || g == "IP"
}
