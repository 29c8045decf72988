package standing

import (
	"fmt"

	"github.com/alexanderramin/provost/internal/domain"
)

type actionContext struct {
	thresholds         Thresholds
	probationTermsLeft int
	suspensionTerms    int
}

// actionItems lists what the student must do next. The list depends only on
// the transition, never on stored state.
func actionItems(next domain.Standing, previous *domain.Standing, ctx actionContext) []string {
	switch next {
	case domain.StandingGood:
		if previous != nil && (*previous == domain.StandingProbation || *previous == domain.StandingReinstated) {
			return []string{
				fmt.Sprintf("Keep your cumulative GPA at or above %.2f to remain in good standing", ctx.thresholds.Good),
			}
		}
		return []string{}
	case domain.StandingWarning:
		return []string{
			"Meet with your academic advisor before registering for next term",
			"Use tutoring and academic support services this term",
			fmt.Sprintf("Raise your cumulative GPA to %.2f to clear the warning", ctx.thresholds.Good),
		}
	case domain.StandingProbation:
		items := []string{
			"Complete the mandatory probation advising meeting",
			"Register for no more than 13 credits while on probation",
			fmt.Sprintf("Raise your cumulative GPA to %.2f to return to good standing", ctx.thresholds.Good),
		}
		if ctx.probationTermsLeft <= 0 {
			items = append(items, "This is your final probation term before suspension")
		} else {
			items = append(items, fmt.Sprintf("Probation terms remaining before suspension: %d", ctx.probationTermsLeft))
		}
		return items
	case domain.StandingSuspension:
		return []string{
			fmt.Sprintf("Enrollment is suspended for %d term(s)", ctx.suspensionTerms),
			"Submit an appeal to the academic standing committee if extenuating circumstances apply",
			"You will return on academic probation after the suspension",
		}
	case domain.StandingDismissal:
		return []string{
			"Enrollment has ended; returning requires an approved reinstatement petition",
			"Contact the registrar for the reinstatement petition process",
		}
	case domain.StandingReinstated:
		return []string{
			"Sign the reinstatement academic plan with your advisor",
			"Meet with your advisor within the first two weeks of term",
			fmt.Sprintf("Earn a cumulative GPA of %.2f to return to good standing", ctx.thresholds.Good),
		}
	}
	return []string{}
}
