package audit

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// creditEpsilon absorbs float drift when summing fractional credits.
const creditEpsilon = 1e-9

// EvaluateRequirement matches a student's courses against one requirement in
// fixed precedence: mandatory explicit courses, optional explicit courses,
// then course groups. Claims are written to ledger so later requirements see
// them. It never panics; shortfalls are reported in MissingCourses and Messages.
func EvaluateRequirement(
	req domain.DegreeRequirement,
	courses []domain.StudentCourse,
	ledger *UsageLedger,
	grades GradeComparator,
) RequirementAuditResult {
	if ledger == nil {
		ledger = NewUsageLedger()
	}
	if grades == nil {
		grades = domain.StandardGradeScale
	}

	m := newRequirementMatch(req, courses, ledger, grades)
	if !m.wellFormed() {
		m.message(domain.MessageError, MsgEmptyRequirement,
			"Requirement defines no courses or course groups and cannot be satisfied")
	}

	m.applyExplicit(true)
	m.applyExplicit(false)
	for _, g := range req.Groups {
		m.applyGroup(g)
	}

	return m.finish()
}

// missReason explains why an explicit course could not be applied.
type missReason struct {
	code MessageCode
	text string
}

type requirementMatch struct {
	req    domain.DegreeRequirement
	ledger *UsageLedger
	grades GradeComparator

	active   []domain.StudentCourse
	byCourse map[string][]domain.StudentCourse

	usedHere      map[string]bool
	usedCourseIDs map[string]bool

	mandatoryDone      bool
	mandatoryProjected bool
	groupsDone         bool
	groupsProjected    bool

	result RequirementAuditResult
}

func newRequirementMatch(
	req domain.DegreeRequirement,
	courses []domain.StudentCourse,
	ledger *UsageLedger,
	grades GradeComparator,
) *requirementMatch {
	m := &requirementMatch{
		req:                req,
		ledger:             ledger,
		grades:             grades,
		byCourse:           make(map[string][]domain.StudentCourse),
		usedHere:           make(map[string]bool),
		usedCourseIDs:      make(map[string]bool),
		mandatoryDone:      true,
		mandatoryProjected: true,
		groupsDone:         true,
		groupsProjected:    true,
		result: RequirementAuditResult{
			RequirementID:   req.ID,
			RequirementName: req.Name,
			Category:        req.Category,
			AllowSharing:    req.AllowSharing,
			AppliedCourses:  []AppliedCourse{},
			MissingCourses:  []MissingCourse{},
		},
	}

	for _, c := range courses {
		if c.ID == "" {
			m.message(domain.MessageWarning, MsgMalformedCourse,
				fmt.Sprintf("Course %s has no student course id and was ignored", courseLabel(c)))
			continue
		}
		if c.Credits < 0 {
			m.message(domain.MessageWarning, MsgMalformedCourse,
				fmt.Sprintf("Course %s reports negative credits; counted as 0", courseLabel(c)))
			c.Credits = 0
		}
		if !c.IsActive() {
			continue
		}
		m.active = append(m.active, c)
		if c.CourseID != "" {
			m.byCourse[c.CourseID] = append(m.byCourse[c.CourseID], c)
		}
	}

	if len(m.active) == 0 {
		m.message(domain.MessageInfo, MsgNoCourses, "No completed or in-progress courses on record")
	}
	return m
}

func (m *requirementMatch) wellFormed() bool {
	return len(m.req.Courses) > 0 || len(m.req.Groups) > 0
}

func (m *requirementMatch) message(level domain.MessageLevel, code MessageCode, text string) {
	m.result.Messages = append(m.result.Messages, AuditMessage{
		Level:         level,
		Code:          code,
		Message:       text,
		RequirementID: m.req.ID,
	})
}

// applyExplicit applies the requirement's explicit courses whose IsRequired
// flag equals required.
func (m *requirementMatch) applyExplicit(required bool) {
	for _, rc := range m.req.Courses {
		if rc.IsRequired != required {
			continue
		}

		c, ok, miss := m.pickAttempt(rc.CourseID, rc.MinimumGrade)
		if ok {
			m.apply(c, rc.MinimumGrade)
			if required && c.Status != domain.CourseCompleted {
				m.mandatoryDone = false
			}
			continue
		}

		if !required {
			continue
		}
		m.mandatoryDone = false
		m.mandatoryProjected = false
		m.result.MissingCourses = append(m.result.MissingCourses, MissingCourse{
			CourseID:   rc.CourseID,
			CourseCode: rc.CourseCode,
			Required:   true,
			Reason:     miss.text,
		})
		m.message(domain.MessageWarning, miss.code,
			fmt.Sprintf("Required course %s: %s", domain.CoalesceStr(rc.CourseCode, rc.CourseID, "(unnamed)"), miss.text))
	}
}

// pickAttempt selects the best usable attempt of a course for this requirement.
func (m *requirementMatch) pickAttempt(courseID string, minimum *string) (domain.StudentCourse, bool, missReason) {
	if courseID == "" {
		return domain.StudentCourse{}, false, missReason{MsgRequiredCourseMissing, "course id is not set on the requirement"}
	}
	if m.usedCourseIDs[courseID] {
		return domain.StudentCourse{}, false, missReason{MsgCourseAlreadyApplied, "already counted once in this requirement"}
	}

	attempts := append([]domain.StudentCourse(nil), m.byCourse[courseID]...)
	if len(attempts) == 0 {
		return domain.StudentCourse{}, false, missReason{MsgRequiredCourseMissing, "not completed or in progress"}
	}
	sortAttempts(attempts)

	var claimedBy []string
	var short *domain.StudentCourse
	for i := range attempts {
		c := attempts[i]
		if m.usedHere[c.ID] {
			continue
		}
		if !m.ledger.CanUse(c.ID, m.req) {
			claimedBy = append(claimedBy, m.ledger.ClaimedBy(c.ID)...)
			continue
		}
		if !m.satisfies(c, minimum) {
			if short == nil {
				short = &attempts[i]
			}
			continue
		}
		return c, true, missReason{}
	}

	if short != nil {
		if minimum != nil {
			return domain.StudentCourse{}, false, missReason{MsgMinimumGradeNotMet,
				fmt.Sprintf("grade %s does not meet minimum %s", domain.CoalesceStr(short.GradeString(), "(none)"), *minimum)}
		}
		return domain.StudentCourse{}, false, missReason{MsgMinimumGradeNotMet,
			fmt.Sprintf("grade %s is not a passing grade", domain.CoalesceStr(short.GradeString(), "(none)"))}
	}
	return domain.StudentCourse{}, false, missReason{MsgCourseAlreadyApplied,
		fmt.Sprintf("already applied to %s, which does not allow sharing", strings.Join(claimedBy, ", "))}
}

// satisfies reports whether an attempt can count under an optional minimum
// grade. In-progress attempts count tentatively until a grade posts.
func (m *requirementMatch) satisfies(c domain.StudentCourse, minimum *string) bool {
	if c.Status == domain.CourseInProgress {
		return true
	}
	if c.Grade == nil {
		return minimum == nil
	}
	if minimum != nil {
		return m.grades.MeetsMinimum(*c.Grade, *minimum)
	}
	return m.grades.IsPassing(*c.Grade)
}

func (m *requirementMatch) apply(c domain.StudentCourse, minimum *string) {
	met := minimum == nil ||
		(c.Status == domain.CourseCompleted && c.Grade != nil && m.grades.MeetsMinimum(*c.Grade, *minimum))

	m.usedHere[c.ID] = true
	if c.CourseID != "" {
		m.usedCourseIDs[c.CourseID] = true
	}
	m.ledger.Claim(c.ID, m.req)

	applied := newAppliedCourse(c, met)
	applied.RequirementIDs = []string{m.req.ID}
	m.result.AppliedCourses = append(m.result.AppliedCourses, applied)

	r := &m.result
	if c.Status == domain.CourseCompleted {
		r.CreditsEarned += c.SafeCredits()
		r.CoursesCompleted++
		if c.GradePoints != nil {
			r.GPACredits += c.SafeCredits()
			r.QualityPoints += applied.QualityPoints
		}
		return
	}
	r.CreditsInProgress += c.SafeCredits()
	r.CoursesInProgress++
}

func (m *requirementMatch) applyGroup(g domain.RequirementCourseGroup) {
	excluded := make(map[string]bool)
	if g.Rule != nil {
		for _, id := range g.Rule.ExcludeCourseIDs {
			excluded[id] = true
		}
	}

	var pool []domain.StudentCourse
	for _, c := range m.active {
		listed := c.CourseID != "" && containsString(g.CourseIDs, c.CourseID)
		selected := g.Rule != nil && MatchesRule(*g.Rule, c)
		if !listed && !selected {
			continue
		}
		if c.CourseID != "" && excluded[c.CourseID] {
			continue
		}
		if m.usedHere[c.ID] || (c.CourseID != "" && m.usedCourseIDs[c.CourseID]) {
			continue
		}
		if !m.ledger.CanUse(c.ID, m.req) || !m.satisfies(c, g.MinimumGrade) {
			continue
		}
		pool = append(pool, c)
	}
	sortGroupCandidates(pool)

	needCredits := floatOrZero(g.MinimumCredits)
	needCourses := intOrZero(g.MinimumCourses)
	if needCredits <= 0 && needCourses <= 0 {
		needCourses = 1
	}

	gr := GroupAuditResult{
		GroupID:          g.ID,
		Name:             g.Name,
		CreditsRequired:  needCredits,
		CoursesRequired:  needCourses,
		StudentCourseIDs: []string{},
	}
	for _, c := range pool {
		if atLeast(gr.CreditsEarned+gr.CreditsInProgress, needCredits) &&
			gr.CoursesCompleted+gr.CoursesInProgress >= needCourses {
			break
		}
		if c.CourseID != "" && m.usedCourseIDs[c.CourseID] {
			continue
		}
		m.apply(c, g.MinimumGrade)
		gr.StudentCourseIDs = append(gr.StudentCourseIDs, c.ID)
		if c.Status == domain.CourseCompleted {
			gr.CreditsEarned += c.SafeCredits()
			gr.CoursesCompleted++
		} else {
			gr.CreditsInProgress += c.SafeCredits()
			gr.CoursesInProgress++
		}
	}

	gr.Satisfied = atLeast(gr.CreditsEarned, needCredits) && gr.CoursesCompleted >= needCourses
	projected := atLeast(gr.CreditsEarned+gr.CreditsInProgress, needCredits) &&
		gr.CoursesCompleted+gr.CoursesInProgress >= needCourses

	if !gr.Satisfied {
		m.groupsDone = false
	}
	if !projected {
		m.groupsProjected = false
		reason := groupShortfall(gr)
		m.result.MissingCourses = append(m.result.MissingCourses, MissingCourse{
			GroupID: g.ID,
			Reason:  reason,
		})
		m.message(domain.MessageWarning, MsgGroupShort,
			fmt.Sprintf("Group %s: %s", domain.CoalesceStr(g.Name, g.ID), reason))
	}
	m.result.Groups = append(m.result.Groups, gr)
}

func groupShortfall(gr GroupAuditResult) string {
	var parts []string
	if credits := gr.CreditsRequired - gr.CreditsEarned - gr.CreditsInProgress; credits > creditEpsilon {
		parts = append(parts, fmt.Sprintf("%s more credits", formatCredits(credits)))
	}
	if courses := gr.CoursesRequired - gr.CoursesCompleted - gr.CoursesInProgress; courses > 0 {
		parts = append(parts, fmt.Sprintf("%d more courses", courses))
	}
	if len(parts) == 0 {
		return "needs completed coursework"
	}
	return "needs " + strings.Join(parts, " and ")
}

func (m *requirementMatch) finish() RequirementAuditResult {
	r := &m.result
	minCredits := floatOrZero(m.req.MinimumCredits)
	minCourses := intOrZero(m.req.MinimumCourses)
	r.CreditsRequired = minCredits
	r.CoursesRequired = minCourses
	r.GPARequired = m.req.MinimumGPA
	if r.GPACredits > 0 {
		gpa := r.QualityPoints / r.GPACredits
		r.GPA = &gpa
	}

	creditsOK := atLeast(r.CreditsEarned, minCredits)
	coursesOK := r.CoursesCompleted >= minCourses
	creditsProjected := atLeast(r.CreditsEarned+r.CreditsInProgress, minCredits)
	coursesProjected := r.CoursesCompleted+r.CoursesInProgress >= minCourses

	if !creditsProjected {
		m.message(domain.MessageWarning, MsgCreditsShort,
			fmt.Sprintf("Needs %s more credits", formatCredits(minCredits-r.CreditsEarned-r.CreditsInProgress)))
	}
	if !coursesProjected {
		m.message(domain.MessageWarning, MsgCoursesShort,
			fmt.Sprintf("Needs %d more courses", minCourses-r.CoursesCompleted-r.CoursesInProgress))
	}

	gpaOK := true
	if m.req.MinimumGPA != nil {
		switch {
		case r.GPA == nil:
			if len(r.AppliedCourses) > 0 {
				m.message(domain.MessageInfo, MsgNoGradedCourses,
					"No graded coursework yet; requirement GPA not evaluated")
			}
		case *r.GPA < *m.req.MinimumGPA:
			gpaOK = false
			m.message(domain.MessageWarning, MsgRequirementGPAShort,
				fmt.Sprintf("Requirement GPA %.2f is below the %.2f minimum", *r.GPA, *m.req.MinimumGPA))
		}
	}

	complete := m.wellFormed() && creditsOK && coursesOK && m.mandatoryDone && m.groupsDone && gpaOK
	r.CompletesWhenGradesPost = !complete && m.wellFormed() && r.CoursesInProgress > 0 &&
		creditsProjected && coursesProjected && m.mandatoryProjected && m.groupsProjected && gpaOK

	switch {
	case complete:
		r.Status = domain.RequirementComplete
	case len(r.AppliedCourses) == 0:
		r.Status = domain.RequirementNotStarted
	case r.CoursesInProgress > 0 || r.CompletesWhenGradesPost:
		r.Status = domain.RequirementInProgress
	default:
		r.Status = domain.RequirementIncomplete
	}
	return *r
}

func newAppliedCourse(c domain.StudentCourse, metMinimum bool) AppliedCourse {
	applied := AppliedCourse{
		StudentCourseID: c.ID,
		CourseID:        c.CourseID,
		CourseCode:      c.CourseCode,
		Title:           c.Title,
		Credits:         c.SafeCredits(),
		Grade:           c.Grade,
		GradePoints:     c.GradePoints,
		Status:          c.Status,
		MetMinimumGrade: metMinimum,
	}
	if c.Status == domain.CourseCompleted && c.GradePoints != nil {
		applied.QualityPoints = c.SafeCredits() * gradePointsOrZero(c)
	}
	return applied
}

func courseLabel(c domain.StudentCourse) string {
	return domain.CoalesceStr(c.CourseCode, c.CourseID, c.ID, "(unknown)")
}

func atLeast(got, need float64) bool {
	return got+creditEpsilon >= need
}

func floatOrZero(p *float64) float64 {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}

func intOrZero(p *int) int {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}

func formatCredits(c float64) string {
	if c == float64(int(c)) {
		return fmt.Sprintf("%d", int(c))
	}
	return fmt.Sprintf("%.1f", c)
}
