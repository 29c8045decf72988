package standing

import (
	"fmt"
	"math"

	"github.com/alexanderramin/provost/internal/domain"
)

type AcademicStandingInput struct {
	StudentID        string   `json:"student_id"`
	TermID           string   `json:"term_id"`
	CumulativeGPA    float64  `json:"cumulative_gpa"`
	TermGPA          *float64 `json:"term_gpa,omitempty"`
	CreditsCompleted float64  `json:"credits_completed"`
	CreditsAttempted float64  `json:"credits_attempted"`
	// CurrentStanding overrides the standing of the latest history entry.
	CurrentStanding *domain.Standing `json:"current_standing,omitempty"`
	// PreviousHistory is ordered oldest first; counters are read from the
	// last entry.
	PreviousHistory []domain.StandingHistoryEntry `json:"previous_history,omitempty"`
	// ReinstatementApproved is the explicit petition decision that moves a
	// student out of suspension or dismissal.
	ReinstatementApproved bool                          `json:"reinstatement_approved"`
	Policy                domain.AcademicStandingPolicy `json:"policy"`
}

type AcademicStandingResult struct {
	StudentID                 string                      `json:"student_id"`
	TermID                    string                      `json:"term_id"`
	PreviousStanding          *domain.Standing            `json:"previous_standing,omitempty"`
	Standing                  domain.Standing             `json:"standing"`
	Changed                   bool                        `json:"changed"`
	Reason                    string                      `json:"reason"`
	ConsecutiveProbationTerms int                         `json:"consecutive_probation_terms"`
	TotalProbationTerms       int                         `json:"total_probation_terms"`
	TotalSuspensions          int                         `json:"total_suspensions"`
	SuspensionTerms           int                         `json:"suspension_terms,omitempty"`
	Thresholds                Thresholds                  `json:"thresholds"`
	ActionItems               []string                    `json:"action_items"`
	HistoryEntry              domain.StandingHistoryEntry `json:"history_entry"`
}

// counters are the running totals threaded from one term to the next.
type counters struct {
	consecutiveProbation int
	totalProbation       int
	totalSuspensions     int
}

// Evaluate computes the standing for one term from the student's GPA, the
// policy and the most recent history entry. It is a pure function; the
// caller stamps ID and RecordedAt on the returned history entry.
func Evaluate(input AcademicStandingInput) AcademicStandingResult {
	gpa := math.Max(0, input.CumulativeGPA)
	thresholds := ResolveThresholds(input.Policy, math.Max(0, input.CreditsCompleted))
	maxProbation, maxSuspensions, suspensionTerms := policyLimits(input.Policy)

	current, prior := currentState(input)

	next, c, reason := transition(transitionInput{
		current:        current,
		prior:          prior,
		gpa:            gpa,
		thresholds:     thresholds,
		reinstate:      input.ReinstatementApproved,
		maxProbation:   maxProbation,
		maxSuspensions: maxSuspensions,
	})

	result := AcademicStandingResult{
		StudentID:                 input.StudentID,
		TermID:                    input.TermID,
		PreviousStanding:          current,
		Standing:                  next,
		Reason:                    reason,
		ConsecutiveProbationTerms: c.consecutiveProbation,
		TotalProbationTerms:       c.totalProbation,
		TotalSuspensions:          c.totalSuspensions,
		Thresholds:                thresholds,
	}
	if current == nil {
		result.Changed = next != domain.StandingGood
	} else {
		result.Changed = next != *current
	}
	if next == domain.StandingSuspension {
		result.SuspensionTerms = suspensionTerms
	}
	result.ActionItems = actionItems(next, current, actionContext{
		thresholds:         thresholds,
		probationTermsLeft: maxProbation - c.consecutiveProbation,
		suspensionTerms:    suspensionTerms,
	})

	var termGPA *float64
	if input.TermGPA != nil {
		v := math.Max(0, *input.TermGPA)
		termGPA = &v
	}
	result.HistoryEntry = domain.StandingHistoryEntry{
		StudentID:                 input.StudentID,
		TermID:                    input.TermID,
		Standing:                  next,
		CumulativeGPA:             gpa,
		TermGPA:                   termGPA,
		ConsecutiveProbationTerms: c.consecutiveProbation,
		TotalProbationTerms:       c.totalProbation,
		TotalSuspensions:          c.totalSuspensions,
		Reason:                    reason,
	}
	return result
}

func currentState(input AcademicStandingInput) (*domain.Standing, counters) {
	var prior counters
	var current *domain.Standing
	if n := len(input.PreviousHistory); n > 0 {
		last := input.PreviousHistory[n-1]
		prior = counters{
			consecutiveProbation: max(0, last.ConsecutiveProbationTerms),
			totalProbation:       max(0, last.TotalProbationTerms),
			totalSuspensions:     max(0, last.TotalSuspensions),
		}
		if last.Standing != "" {
			s := last.Standing
			current = &s
		}
	}
	if input.CurrentStanding != nil && *input.CurrentStanding != "" {
		s := *input.CurrentStanding
		current = &s
	}
	return current, prior
}

type transitionInput struct {
	current        *domain.Standing
	prior          counters
	gpa            float64
	thresholds     Thresholds
	reinstate      bool
	maxProbation   int
	maxSuspensions int
}

// transition applies the standing rules in priority order:
// 1. Approved reinstatement out of suspension or dismissal
// 2. Dismissal is terminal
// 3. Returning from suspension is always probationary
// 4. GPA at or above the good-standing floor
// 5. Below good but not below the probation floor: warning for a first
//    offense, probation holds without escalating
// 6. Below the probation floor: probation, escalating to suspension then
//    dismissal
func transition(in transitionInput) (domain.Standing, counters, string) {
	c := in.prior
	t := in.thresholds
	is := func(s domain.Standing) bool { return in.current != nil && *in.current == s }

	if in.reinstate && (is(domain.StandingSuspension) || is(domain.StandingDismissal)) {
		c.consecutiveProbation = 0
		return domain.StandingReinstated, c,
			fmt.Sprintf("Reinstatement approved from %s", *in.current)
	}

	if is(domain.StandingDismissal) {
		return domain.StandingDismissal, c,
			"Academic dismissal is final until a reinstatement petition is approved"
	}

	if is(domain.StandingSuspension) {
		c.consecutiveProbation = 1
		c.totalProbation++
		return domain.StandingProbation, c,
			fmt.Sprintf("Returning from suspension on probation (cumulative GPA %.2f)", in.gpa)
	}

	if in.gpa >= t.Good {
		c.consecutiveProbation = 0
		return domain.StandingGood, c,
			fmt.Sprintf("Cumulative GPA %.2f meets the %.2f good-standing minimum", in.gpa, t.Good)
	}

	if in.gpa >= t.Probation {
		switch {
		case in.current == nil || is(domain.StandingGood):
			return domain.StandingWarning, c,
				fmt.Sprintf("Cumulative GPA %.2f is below the %.2f good-standing minimum", in.gpa, t.Good)
		case is(domain.StandingProbation):
			return domain.StandingProbation, c,
				fmt.Sprintf("Remains on probation: cumulative GPA %.2f is above the %.2f probation minimum but below %.2f",
					in.gpa, t.Probation, t.Good)
		}
	}

	if is(domain.StandingProbation) {
		c.consecutiveProbation++
		c.totalProbation++
		if c.consecutiveProbation > in.maxProbation {
			failed := c.consecutiveProbation - 1
			c.consecutiveProbation = 0
			if c.totalSuspensions >= in.maxSuspensions {
				return domain.StandingDismissal, c,
					fmt.Sprintf("Cumulative GPA %.2f remains below %.2f after %d probation terms and %d prior suspensions",
						in.gpa, t.Probation, failed, c.totalSuspensions)
			}
			c.totalSuspensions++
			return domain.StandingSuspension, c,
				fmt.Sprintf("Cumulative GPA %.2f remains below %.2f after %d consecutive probation terms",
					in.gpa, t.Probation, failed)
		}
		return domain.StandingProbation, c,
			fmt.Sprintf("Continued probation: cumulative GPA %.2f is below %.2f (term %d of %d)",
				in.gpa, t.Probation, c.consecutiveProbation, in.maxProbation)
	}

	c.consecutiveProbation = 1
	c.totalProbation++
	if in.gpa >= t.Probation {
		return domain.StandingProbation, c,
			fmt.Sprintf("Placed on probation: cumulative GPA %.2f is still below %.2f after %s", in.gpa, t.Good, *in.current)
	}
	return domain.StandingProbation, c,
		fmt.Sprintf("Placed on probation: cumulative GPA %.2f is below the %.2f probation minimum", in.gpa, t.Probation)
}
