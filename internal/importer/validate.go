package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/provost/internal/domain"
)

// nonPointMarks are transcript marks that carry no grade points but are
// still valid grades.
var nonPointMarks = map[string]bool{
	"P": true, "NP": true, "CR": true, "NC": true, "S": true, "U": true,
	"W": true, "WF": true, "I": true, "E": true, "TR": true,
}

const maxGradePoints = 4.3

// ValidateStudentRecord checks a student record before conversion.
// Returns a slice of all validation errors found.
func ValidateStudentRecord(schema *StudentRecordImport) []error {
	var errs []error

	s := schema.Student
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("student.name is required"))
	}
	if s.ID != "" && strings.TrimSpace(s.ID) != s.ID {
		errs = append(errs, fmt.Errorf("student.id %q must not have surrounding spaces", s.ID))
	}
	if s.FinancialBalance < 0 {
		errs = append(errs, fmt.Errorf("student.financial_balance must not be negative"))
	}

	seenPrograms := make(map[string]bool)
	for i, code := range schema.Programs {
		key := strings.ToUpper(strings.TrimSpace(code))
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("programs[%d] is empty", i))
		case seenPrograms[key]:
			errs = append(errs, fmt.Errorf("programs[%d]: duplicate program %q", i, code))
		default:
			seenPrograms[key] = true
		}
	}

	for i, c := range schema.Courses {
		errs = append(errs, validateCourse(fmt.Sprintf("courses[%d]", i), c)...)
	}
	for i, h := range schema.Holds {
		if strings.TrimSpace(h.Type) == "" {
			errs = append(errs, fmt.Errorf("holds[%d].type is required", i))
		}
	}

	seenMilestones := make(map[string]bool)
	for i, m := range schema.Milestones {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("milestones[%d].name is required", i))
		} else if seenMilestones[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("milestones[%d]: duplicate milestone %q", i, m.Name))
		} else {
			seenMilestones[strings.ToLower(name)] = true
		}
	}

	errs = append(errs, validateStandingHistory(schema.StandingHistory)...)
	return errs
}

func validateCourse(prefix string, c CourseImport) []error {
	var errs []error

	if strings.TrimSpace(c.CourseCode) == "" && strings.TrimSpace(c.CourseID) == "" {
		errs = append(errs, fmt.Errorf("%s: course_code or course_id is required", prefix))
	}
	if c.Credits < 0 {
		errs = append(errs, fmt.Errorf("%s.credits must not be negative", prefix))
	}
	if c.Status == "" {
		errs = append(errs, fmt.Errorf("%s.status is required", prefix))
	} else if !domain.ValidCourseStatuses[c.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, c.Status))
	}
	if c.Source != "" && !domain.ValidCourseSources[c.Source] {
		errs = append(errs, fmt.Errorf("%s.source: invalid value %q", prefix, c.Source))
	}
	if c.Grade != nil && !isKnownGrade(*c.Grade) {
		errs = append(errs, fmt.Errorf("%s.grade: unknown grade %q", prefix, *c.Grade))
	}
	if c.GradePoints != nil && (*c.GradePoints < 0 || *c.GradePoints > maxGradePoints) {
		errs = append(errs, fmt.Errorf("%s.grade_points %.2f out of range [0, %.1f]", prefix, *c.GradePoints, maxGradePoints))
	}
	if c.Status == string(domain.CourseInProgress) && c.Grade != nil && strings.TrimSpace(*c.Grade) != "" {
		errs = append(errs, fmt.Errorf("%s: in_progress course cannot carry grade %q", prefix, *c.Grade))
	}
	return errs
}

func isKnownGrade(grade string) bool {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g == "" {
		return true
	}
	if _, ok := domain.StandardGradeScale.Points(g); ok {
		return true
	}
	return nonPointMarks[g]
}

func validateStandingHistory(entries []StandingHistoryImport) []error {
	var errs []error
	seenTerms := make(map[string]bool)
	var prev time.Time

	for i, e := range entries {
		prefix := fmt.Sprintf("standing_history[%d]", i)
		if e.TermID == "" {
			errs = append(errs, fmt.Errorf("%s.term_id is required", prefix))
		} else if seenTerms[e.TermID] {
			errs = append(errs, fmt.Errorf("%s: duplicate term %q", prefix, e.TermID))
		} else {
			seenTerms[e.TermID] = true
		}
		if !domain.ValidStandings[e.Standing] {
			errs = append(errs, fmt.Errorf("%s.standing: invalid value %q", prefix, e.Standing))
		}
		if e.ConsecutiveProbationTerms < 0 || e.TotalProbationTerms < 0 || e.TotalSuspensions < 0 {
			errs = append(errs, fmt.Errorf("%s: counters must not be negative", prefix))
		}
		if e.ConsecutiveProbationTerms > e.TotalProbationTerms {
			errs = append(errs, fmt.Errorf("%s: consecutive_probation_terms (%d) exceeds total_probation_terms (%d)",
				prefix, e.ConsecutiveProbationTerms, e.TotalProbationTerms))
		}

		at, err := parseRecordedAt(e.RecordedAt)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.recorded_at: %w", prefix, err))
			continue
		}
		if !prev.IsZero() && at.Before(prev) {
			errs = append(errs, fmt.Errorf("%s.recorded_at %s is earlier than the previous entry (list oldest first)", prefix, e.RecordedAt))
		}
		prev = at
	}
	return errs
}

// parseRecordedAt accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseRecordedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateProgramDefinition checks a program definition before conversion.
func ValidateProgramDefinition(schema *ProgramDefinitionImport) []error {
	var errs []error

	p := schema.Program
	if strings.TrimSpace(p.Code) == "" {
		errs = append(errs, fmt.Errorf("program.code is required"))
	}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("program.name is required"))
	}
	if p.TotalCreditsRequired < 0 {
		errs = append(errs, fmt.Errorf("program.total_credits_required must not be negative"))
	}
	errs = append(errs, validateGPAFloor("program.overall_gpa_required", p.OverallGPARequired)...)
	errs = append(errs, validateGPAFloor("program.major_gpa_required", p.MajorGPARequired)...)

	if len(schema.Requirements) == 0 {
		errs = append(errs, fmt.Errorf("requirements: at least one requirement is required"))
	}
	seenNames := make(map[string]bool)
	for i, r := range schema.Requirements {
		prefix := fmt.Sprintf("requirements[%d]", i)
		name := strings.TrimSpace(r.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if seenNames[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("%s: duplicate requirement name %q", prefix, r.Name))
		} else {
			seenNames[strings.ToLower(name)] = true
		}
		errs = append(errs, validateMinimums(prefix, r.MinimumCredits, r.MinimumCourses)...)
		errs = append(errs, validateGPAFloor(prefix+".minimum_gpa", r.MinimumGPA)...)

		for j, c := range r.Courses {
			cp := fmt.Sprintf("%s.courses[%d]", prefix, j)
			if strings.TrimSpace(c.CourseID) == "" {
				errs = append(errs, fmt.Errorf("%s.course_id is required", cp))
			}
			errs = append(errs, validateMinimumGrade(cp, c.MinimumGrade)...)
		}
		for j, g := range r.Groups {
			errs = append(errs, validateGroup(fmt.Sprintf("%s.groups[%d]", prefix, j), g)...)
		}
	}
	return errs
}

func validateGroup(prefix string, g GroupImport) []error {
	var errs []error
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	errs = append(errs, validateMinimums(prefix, g.MinimumCredits, g.MinimumCourses)...)
	errs = append(errs, validateMinimumGrade(prefix, g.MinimumGrade)...)

	ruleEmpty := g.Rule == nil || toRule(g.Rule).IsEmpty()
	if len(g.CourseIDs) == 0 && ruleEmpty {
		errs = append(errs, fmt.Errorf("%s selects no courses: give course_ids or a rule", prefix))
	}
	if g.Rule != nil && g.Rule.MinLevel != nil && g.Rule.MaxLevel != nil && *g.Rule.MinLevel > *g.Rule.MaxLevel {
		errs = append(errs, fmt.Errorf("%s.rule: min_level (%d) must be <= max_level (%d)", prefix, *g.Rule.MinLevel, *g.Rule.MaxLevel))
	}
	return errs
}

func validateMinimums(prefix string, credits *float64, courses *int) []error {
	var errs []error
	if credits != nil && *credits < 0 {
		errs = append(errs, fmt.Errorf("%s.minimum_credits must not be negative", prefix))
	}
	if courses != nil && *courses < 0 {
		errs = append(errs, fmt.Errorf("%s.minimum_courses must not be negative", prefix))
	}
	return errs
}

func validateGPAFloor(field string, v *float64) []error {
	if v != nil && (*v < 0 || *v > maxGradePoints) {
		return []error{fmt.Errorf("%s %.2f out of range [0, %.1f]", field, *v, maxGradePoints)}
	}
	return nil
}

// validateMinimumGrade requires a scaled letter grade; a minimum of "P"
// could never be compared.
func validateMinimumGrade(prefix string, grade *string) []error {
	if grade == nil {
		return nil
	}
	if _, ok := domain.StandardGradeScale.Points(*grade); !ok {
		return []error{fmt.Errorf("%s.minimum_grade: %q is not a letter grade on the scale", prefix, *grade)}
	}
	return nil
}
