package sap

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

type SapInput struct {
	StudentID                  string            `json:"student_id"`
	TermID                     string            `json:"term_id"`
	CumulativeAttemptedCredits float64           `json:"cumulative_attempted_credits"`
	CumulativeEarnedCredits    float64           `json:"cumulative_earned_credits"`
	CumulativeGPA              *float64          `json:"cumulative_gpa,omitempty"`
	ProgramCredits             float64           `json:"program_credits"`
	PreviousSapStatus          *domain.SapStatus `json:"previous_sap_status,omitempty"`
	AppealApproved             bool              `json:"appeal_approved"`
	OnAcademicPlan             bool              `json:"on_academic_plan"`
	AcademicPlanRequirements   []string          `json:"academic_plan_requirements,omitempty"`
	// TimeframeReinstated is the financial aid office's decision to lift a
	// prior ineligible status. Without it ineligible carries forward.
	TimeframeReinstated bool `json:"timeframe_reinstated"`
}

type GPAComponent struct {
	Met      bool     `json:"met"`
	Actual   *float64 `json:"actual,omitempty"`
	Required float64  `json:"required"`
}

type PaceComponent struct {
	Met      bool    `json:"met"`
	Actual   float64 `json:"actual"`
	Required float64 `json:"required"`
}

type TimeframeComponent struct {
	Met              bool    `json:"met"`
	AttemptedCredits float64 `json:"attempted_credits"`
	MaxCredits       float64 `json:"max_credits"`
	// UsageRatio is attempted / max credits, 0 when the program total is unknown.
	UsageRatio float64 `json:"usage_ratio"`
}

type SapResult struct {
	StudentID       string                 `json:"student_id"`
	TermID          string                 `json:"term_id"`
	Status          domain.SapStatus       `json:"status"`
	EligibleForAid  bool                   `json:"eligible_for_aid"`
	GPA             GPAComponent           `json:"gpa"`
	Pace            PaceComponent          `json:"pace"`
	Timeframe       TimeframeComponent     `json:"timeframe"`
	Reason          string                 `json:"reason"`
	Recommendations []string               `json:"recommendations"`
	Messages        []string               `json:"messages,omitempty"`
	HistoryEntry    domain.SapHistoryEntry `json:"history_entry"`
}

// Evaluate checks the three SAP components and derives the aid status. A
// timeframe failure is terminal and outranks every other outcome: once
// ineligible, a student stays ineligible until TimeframeReinstated is set.
func Evaluate(input SapInput, policy domain.SapPolicy) SapResult {
	attempted := math.Max(0, input.CumulativeAttemptedCredits)
	earned := math.Max(0, input.CumulativeEarnedCredits)
	policy = withDefaults(policy)

	result := SapResult{
		StudentID: input.StudentID,
		TermID:    input.TermID,
		GPA:       evaluateGPA(input.CumulativeGPA, attempted, policy),
		Pace:      evaluatePace(attempted, earned, policy),
		Timeframe: evaluateTimeframe(attempted, input.ProgramCredits, policy),
	}
	if input.ProgramCredits <= 0 {
		result.Messages = append(result.Messages,
			"Program credit total is not configured; maximum timeframe was not evaluated")
	}

	result.Status, result.EligibleForAid = deriveStatus(input, policy, result)
	result.Reason = reason(result)
	result.Recommendations = recommendations(input, result)

	result.HistoryEntry = domain.SapHistoryEntry{
		StudentID:        input.StudentID,
		TermID:           input.TermID,
		Status:           result.Status,
		EligibleForAid:   result.EligibleForAid,
		GPAMet:           result.GPA.Met,
		PaceMet:          result.Pace.Met,
		TimeframeMet:     result.Timeframe.Met,
		AttemptedCredits: attempted,
		EarnedCredits:    earned,
		CumulativeGPA:    result.GPA.Actual,
		Reason:           result.Reason,
	}
	return result
}

func withDefaults(p domain.SapPolicy) domain.SapPolicy {
	if p.MinimumGPA <= 0 {
		p.MinimumGPA = domain.DefaultSapMinimumGPA
	}
	if p.MinimumPace <= 0 {
		p.MinimumPace = domain.DefaultSapMinimumPace
	}
	if p.MaxTimeframePercentage <= 0 {
		p.MaxTimeframePercentage = domain.DefaultSapMaxTimeframePct
	}
	return p
}

// RequiredGPA returns the GPA floor for a student with the given attempted
// credits: the highest tier at or below attempted, else the policy minimum.
func RequiredGPA(policy domain.SapPolicy, attempted float64) float64 {
	required := policy.MinimumGPA
	tiers := append([]domain.SapGPATier(nil), policy.GPATiers...)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinAttemptedCredits < tiers[j].MinAttemptedCredits
	})
	for _, tier := range tiers {
		if tier.MinAttemptedCredits > attempted {
			break
		}
		required = tier.MinimumGPA
	}
	return required
}

func evaluateGPA(gpa *float64, attempted float64, policy domain.SapPolicy) GPAComponent {
	c := GPAComponent{Required: RequiredGPA(policy, attempted)}
	if gpa == nil {
		// No graded coursework yet.
		c.Met = true
		return c
	}
	v := math.Max(0, *gpa)
	c.Actual = &v
	c.Met = v >= c.Required
	return c
}

func evaluatePace(attempted, earned float64, policy domain.SapPolicy) PaceComponent {
	c := PaceComponent{Actual: 1, Required: policy.MinimumPace}
	if attempted > 0 {
		c.Actual = earned / attempted
	}
	c.Met = c.Actual >= c.Required
	return c
}

func evaluateTimeframe(attempted, programCredits float64, policy domain.SapPolicy) TimeframeComponent {
	c := TimeframeComponent{Met: true, AttemptedCredits: attempted}
	if programCredits <= 0 {
		return c
	}
	c.MaxCredits = programCredits * policy.MaxTimeframePercentage
	c.UsageRatio = attempted / c.MaxCredits
	c.Met = attempted < c.MaxCredits
	return c
}

// deriveStatus applies the status rules in priority order:
// 1. Ineligible last term and not reinstated: ineligible
// 2. Timeframe exceeded: ineligible
// 3. Every component met: satisfactory
// 4. Active academic plan
// 5. Approved appeal: probation
// 6. First failure with warning periods enabled
// 7. Anything else: suspension
func deriveStatus(input SapInput, policy domain.SapPolicy, r SapResult) (domain.SapStatus, bool) {
	switch {
	case carriesIneligible(input):
		return domain.SapIneligible, false
	case !r.Timeframe.Met:
		return domain.SapIneligible, false
	case r.GPA.Met && r.Pace.Met:
		return domain.SapSatisfactory, true
	case input.OnAcademicPlan:
		return domain.SapAcademicPlan, true
	case input.AppealApproved:
		return domain.SapProbation, true
	case firstFailure(input.PreviousSapStatus) && policy.WarningPeriodEnabled:
		return domain.SapWarning, true
	default:
		return domain.SapSuspension, false
	}
}

func carriesIneligible(input SapInput) bool {
	return input.PreviousSapStatus != nil && *input.PreviousSapStatus == domain.SapIneligible && !input.TimeframeReinstated
}

func firstFailure(previous *domain.SapStatus) bool {
	return previous == nil || *previous == "" || *previous == domain.SapSatisfactory
}

func reason(r SapResult) string {
	if r.Status == domain.SapIneligible && r.Timeframe.Met {
		return "Ineligible since an earlier term for exceeding the maximum timeframe; aid resumes only after an approved reinstatement"
	}
	if r.Status == domain.SapIneligible {
		return fmt.Sprintf("Attempted credits %.1f reached the %.1f-credit maximum timeframe",
			r.Timeframe.AttemptedCredits, r.Timeframe.MaxCredits)
	}
	var failed []string
	if !r.GPA.Met {
		failed = append(failed, fmt.Sprintf("GPA %.2f below %.2f", *r.GPA.Actual, r.GPA.Required))
	}
	if !r.Pace.Met {
		failed = append(failed, fmt.Sprintf("pace %.0f%% below %.0f%%", r.Pace.Actual*100, r.Pace.Required*100))
	}
	if len(failed) == 0 {
		return "GPA, pace and maximum timeframe standards are met"
	}
	return fmt.Sprintf("SAP %s: %s", r.Status, strings.Join(failed, "; "))
}
