package audit

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/alexanderramin/provost/internal/domain"
)

// MatchesRule reports whether a course satisfies every populated criterion of
// the selection rule. Exclusions are applied by the caller over the whole
// candidate pool, not here.
func MatchesRule(rule domain.CourseSelectionRule, c domain.StudentCourse) bool {
	if rule.IsEmpty() {
		return false
	}
	if len(rule.CourseIDs) > 0 && !containsString(rule.CourseIDs, c.CourseID) {
		return false
	}
	if len(rule.SubjectCodes) > 0 && !containsFold(rule.SubjectCodes, c.SubjectCode) {
		return false
	}
	if rule.MinLevel != nil || rule.MaxLevel != nil {
		level, ok := CourseLevel(c.CourseNumber)
		if !ok {
			return false
		}
		if rule.MinLevel != nil && level < *rule.MinLevel {
			return false
		}
		if rule.MaxLevel != nil && level > *rule.MaxLevel {
			return false
		}
	}
	if len(rule.Attributes) > 0 {
		matched := false
		for _, tag := range rule.Attributes {
			if c.HasAttribute(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// CourseLevel parses the leading integer of a course number ("301L" -> 301).
func CourseLevel(number string) (int, bool) {
	number = strings.TrimSpace(number)
	end := 0
	for end < len(number) && unicode.IsDigit(rune(number[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(number[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortGroupCandidates orders group candidates by the canonical tie-break:
// 1. Completed before in-progress
// 2. Credits: higher first
// 3. Student course ID: lexical ascending
func sortGroupCandidates(candidates []domain.StudentCourse) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		aDone, bDone := a.Status == domain.CourseCompleted, b.Status == domain.CourseCompleted
		if aDone != bDone {
			return aDone
		}

		if a.SafeCredits() != b.SafeCredits() {
			return a.SafeCredits() > b.SafeCredits()
		}

		return a.ID < b.ID
	})
}

// sortAttempts orders repeated attempts of one course: completed with the
// highest grade points first, then in-progress, then by student course ID.
func sortAttempts(attempts []domain.StudentCourse) {
	sort.SliceStable(attempts, func(i, j int) bool {
		a, b := attempts[i], attempts[j]

		aDone, bDone := a.Status == domain.CourseCompleted, b.Status == domain.CourseCompleted
		if aDone != bDone {
			return aDone
		}

		ap, bp := gradePointsOrZero(a), gradePointsOrZero(b)
		if ap != bp {
			return ap > bp
		}

		return a.ID < b.ID
	})
}

func gradePointsOrZero(c domain.StudentCourse) float64 {
	if c.GradePoints == nil || *c.GradePoints < 0 {
		return 0
	}
	return *c.GradePoints
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
