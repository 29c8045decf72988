package audit

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// RunDegreeAudit evaluates every requirement of a program in display order
// against one shared usage ledger and merges the results. The ledger lives
// only for this call. Identical input always produces identical output.
func RunDegreeAudit(input DegreeAuditInput, grades GradeComparator) DegreeAuditResult {
	if grades == nil {
		grades = domain.StandardGradeScale
	}

	result := DegreeAuditResult{
		StudentID:            input.StudentID,
		StudentProgramID:     input.StudentProgramID,
		ProgramID:            input.ProgramID,
		AuditDate:            input.AuditDate,
		TotalCreditsRequired: math.Max(0, input.TotalCreditsRequired),
		OverallGPARequired:   input.OverallGPARequired,
		MajorGPARequired:     input.MajorGPARequired,
		Requirements:         []RequirementAuditResult{},
		AppliedCourses:       []AppliedCourse{},
		UnusedCourses:        []domain.StudentCourse{},
		Messages:             []AuditMessage{},
	}

	courses, malformed := sanitizeCourses(input.StudentCourses)
	result.Messages = append(result.Messages, malformed...)
	if len(courses) == 0 {
		result.Messages = append(result.Messages, AuditMessage{
			Level:   domain.MessageInfo,
			Code:    MsgNoCourses,
			Message: "No courses on record",
		})
	}

	requirements := orderRequirements(input.Requirements)
	ledger := NewUsageLedger()

	merged := newAppliedIndex()
	major := newGPAAccumulator()
	anyInProgress := false

	for _, req := range requirements {
		rr := EvaluateRequirement(req, courses, ledger, grades)
		result.Requirements = append(result.Requirements, rr)
		result.Messages = append(result.Messages, requirementMessages(rr)...)

		switch rr.Status {
		case domain.RequirementComplete:
			result.RequirementsComplete++
		case domain.RequirementInProgress:
			anyInProgress = true
		}

		isMajor := isMajorRequirement(req)
		for _, ac := range rr.AppliedCourses {
			merged.add(ac, req.ID)
			if isMajor {
				major.add(ac)
			}
		}
	}
	result.RequirementsTotal = len(result.Requirements)
	result.AppliedCourses = merged.list()

	for _, c := range courses {
		if !c.IsActive() || merged.has(c.ID) {
			continue
		}
		result.UnusedCourses = append(result.UnusedCourses, c)
	}

	earned, inProgress := creditTotals(courses, grades)
	result.TotalCreditsEarned = earned
	result.TotalCreditsInProgress = inProgress
	result.CompletionPercentage = completionPercentage(earned, result.TotalCreditsRequired)
	if result.TotalCreditsRequired <= 0 {
		result.Messages = append(result.Messages, AuditMessage{
			Level:   domain.MessageWarning,
			Code:    MsgTotalCreditsUnset,
			Message: "Program total credits are not configured; completion percentage cannot be computed",
		})
	}

	if input.OverallGPAActual != nil {
		gpa := math.Max(0, *input.OverallGPAActual)
		result.OverallGPA = &gpa
	} else {
		result.OverallGPA = overallGPA(courses)
	}
	result.MajorGPA = major.gpa()

	result.OverallGPAMet = gpaFloorMet(result.OverallGPA, input.OverallGPARequired)
	if !result.OverallGPAMet {
		result.Messages = append(result.Messages, gpaShortMessage(MsgOverallGPAShort, "Overall", result.OverallGPA, *input.OverallGPARequired))
	}
	result.MajorGPAMet = gpaFloorMet(result.MajorGPA, input.MajorGPARequired)
	if input.MajorGPARequired != nil && result.MajorGPA == nil {
		result.Messages = append(result.Messages, AuditMessage{
			Level:   domain.MessageWarning,
			Code:    MsgMajorGPAUnavailable,
			Message: "No graded major coursework yet; major GPA not evaluated",
		})
	} else if !result.MajorGPAMet {
		result.Messages = append(result.Messages, gpaShortMessage(MsgMajorGPAShort, "Major", result.MajorGPA, *input.MajorGPARequired))
	}

	allComplete := result.AllRequirementsComplete()
	switch {
	case allComplete && result.OverallGPAMet && result.MajorGPAMet:
		result.Status = domain.AuditComplete
	case anyInProgress:
		result.Status = domain.AuditInProgress
	default:
		result.Status = domain.AuditIncomplete
	}

	result.Messages = append(result.Messages, AuditMessage{
		Level:   domain.MessageInfo,
		Code:    MsgAuditSummary,
		Message: fmt.Sprintf("%d of %d requirements complete; %s of %s credits earned (%.1f%%)",
			result.RequirementsComplete, result.RequirementsTotal,
			formatCredits(result.TotalCreditsEarned), formatCredits(result.TotalCreditsRequired),
			result.CompletionPercentage),
	})

	return result
}

// orderRequirements returns requirements sorted by display order, keeping
// input order for ties.
func orderRequirements(reqs []domain.DegreeRequirement) []domain.DegreeRequirement {
	ordered := append([]domain.DegreeRequirement(nil), reqs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})
	return ordered
}

// sanitizeCourses drops unidentifiable courses, clamps negative numbers and
// treats a blank grade as no grade posted, reporting each correction once for
// the whole audit.
func sanitizeCourses(in []domain.StudentCourse) ([]domain.StudentCourse, []AuditMessage) {
	out := make([]domain.StudentCourse, 0, len(in))
	var msgs []AuditMessage
	seen := make(map[string]bool, len(in))
	for _, c := range in {
		if c.ID == "" {
			msgs = append(msgs, AuditMessage{
				Level:   domain.MessageWarning,
				Code:    MsgMalformedCourse,
				Message: fmt.Sprintf("Course %s has no student course id and was ignored", courseLabel(c)),
			})
			continue
		}
		if seen[c.ID] {
			msgs = append(msgs, AuditMessage{
				Level:   domain.MessageWarning,
				Code:    MsgMalformedCourse,
				Message: fmt.Sprintf("Duplicate student course id %s was ignored", c.ID),
			})
			continue
		}
		seen[c.ID] = true
		if c.Credits < 0 {
			msgs = append(msgs, AuditMessage{
				Level:   domain.MessageWarning,
				Code:    MsgMalformedCourse,
				Message: fmt.Sprintf("Course %s reports negative credits; counted as 0", courseLabel(c)),
			})
			c.Credits = 0
		}
		if c.Grade != nil && strings.TrimSpace(*c.Grade) == "" {
			c.Grade = nil
		}
		if c.GradePoints != nil && *c.GradePoints < 0 {
			zero := 0.0
			c.GradePoints = &zero
		}
		out = append(out, c)
	}
	return out, msgs
}

// requirementMessages lifts warnings and errors from a requirement result
// into the audit-level message list.
func requirementMessages(rr RequirementAuditResult) []AuditMessage {
	var out []AuditMessage
	for _, m := range rr.Messages {
		if m.Level == domain.MessageInfo {
			continue
		}
		out = append(out, m)
	}
	return out
}

// creditTotals sums credits of completed passing courses and of in-progress
// courses, whether or not any requirement used them.
func creditTotals(courses []domain.StudentCourse, grades GradeComparator) (earned, inProgress float64) {
	for _, c := range courses {
		switch c.Status {
		case domain.CourseCompleted:
			if c.Grade == nil || grades.IsPassing(*c.Grade) {
				earned += c.SafeCredits()
			}
		case domain.CourseInProgress:
			inProgress += c.SafeCredits()
		}
	}
	return earned, inProgress
}

func completionPercentage(earned, required float64) float64 {
	if required <= 0 {
		return 0
	}
	pct := math.Min(100, earned/required*100)
	return math.Round(pct*100) / 100
}

func overallGPA(courses []domain.StudentCourse) *float64 {
	acc := newGPAAccumulator()
	for _, c := range courses {
		if c.Status != domain.CourseCompleted && c.Status != domain.CourseFailed {
			continue
		}
		acc.addCourse(c.ID, c.SafeCredits(), c.GradePoints)
	}
	return acc.gpa()
}

func gpaFloorMet(actual, required *float64) bool {
	if required == nil || actual == nil {
		return true
	}
	return *actual >= *required
}

func gpaShortMessage(code MessageCode, label string, actual *float64, required float64) AuditMessage {
	return AuditMessage{
		Level:   domain.MessageError,
		Code:    code,
		Message: fmt.Sprintf("%s GPA %.2f is below the required %.2f", label, *actual, required),
	}
}

// appliedIndex merges applied courses across requirements, keeping one entry
// per student course in first-application order.
type appliedIndex struct {
	order []string
	byID  map[string]*AppliedCourse
}

func newAppliedIndex() *appliedIndex {
	return &appliedIndex{byID: make(map[string]*AppliedCourse)}
}

func (x *appliedIndex) add(ac AppliedCourse, reqID string) {
	if existing, ok := x.byID[ac.StudentCourseID]; ok {
		existing.RequirementIDs = append(existing.RequirementIDs, reqID)
		existing.MetMinimumGrade = existing.MetMinimumGrade || ac.MetMinimumGrade
		return
	}
	cp := ac
	cp.RequirementIDs = []string{reqID}
	x.byID[ac.StudentCourseID] = &cp
	x.order = append(x.order, ac.StudentCourseID)
}

func (x *appliedIndex) has(studentCourseID string) bool {
	_, ok := x.byID[studentCourseID]
	return ok
}

func (x *appliedIndex) list() []AppliedCourse {
	out := make([]AppliedCourse, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, *x.byID[id])
	}
	return out
}

// gpaAccumulator sums quality points over distinct graded courses.
type gpaAccumulator struct {
	seen          map[string]bool
	credits       float64
	qualityPoints float64
}

func newGPAAccumulator() *gpaAccumulator {
	return &gpaAccumulator{seen: make(map[string]bool)}
}

func (a *gpaAccumulator) add(ac AppliedCourse) {
	if ac.Status != domain.CourseCompleted {
		return
	}
	a.addCourse(ac.StudentCourseID, ac.Credits, ac.GradePoints)
}

func (a *gpaAccumulator) addCourse(id string, credits float64, points *float64) {
	if points == nil || a.seen[id] {
		return
	}
	a.seen[id] = true
	a.credits += credits
	a.qualityPoints += credits * math.Max(0, *points)
}

func (a *gpaAccumulator) gpa() *float64 {
	if a.credits <= 0 {
		return nil
	}
	g := a.qualityPoints / a.credits
	return &g
}
