package sap

import (
	"fmt"
	"math"

	"github.com/alexanderramin/provost/internal/domain"
)

func recommendations(input SapInput, r SapResult) []string {
	recs := []string{}
	switch r.Status {
	case domain.SapIneligible:
		recs = append(recs,
			"Federal aid eligibility has ended because attempted credits reached the maximum timeframe",
			"Maximum timeframe failures cannot be appealed; ask the financial aid office about alternative funding",
		)
	case domain.SapAcademicPlan:
		recs = append(recs, "Follow every condition of your academic plan to keep aid eligibility")
		for _, req := range input.AcademicPlanRequirements {
			recs = append(recs, "Academic plan: "+req)
		}
	case domain.SapProbation:
		recs = append(recs,
			"Aid is approved for one probationary term under your appeal",
			"Meet with your advisor to set up an academic plan before the term ends",
		)
	case domain.SapWarning:
		recs = append(recs, "Aid continues for one warning term; SAP is re-evaluated at the end of the term")
		recs = append(recs, componentTargets(r)...)
	case domain.SapSuspension:
		recs = append(recs,
			"Federal aid is suspended",
			"Submit a SAP appeal with documentation of any extenuating circumstances",
			"You may regain eligibility by meeting SAP standards without aid",
		)
		recs = append(recs, componentTargets(r)...)
	}

	if r.Status != domain.SapIneligible && r.Timeframe.Met && r.Timeframe.UsageRatio > domain.SapTimeframeAlertRatio {
		remaining := math.Max(0, r.Timeframe.MaxCredits-r.Timeframe.AttemptedCredits)
		recs = append(recs, fmt.Sprintf(
			"You have used %.0f%% of the maximum timeframe (%.1f credits left); plan remaining coursework with an advisor",
			r.Timeframe.UsageRatio*100, remaining))
	}
	return recs
}

func componentTargets(r SapResult) []string {
	var out []string
	if !r.GPA.Met {
		out = append(out, fmt.Sprintf("Raise your cumulative GPA to at least %.2f", r.GPA.Required))
	}
	if !r.Pace.Met {
		out = append(out, fmt.Sprintf("Complete at least %.0f%% of attempted credits", r.Pace.Required*100))
	}
	return out
}
