package standing

import (
	"math"
	"sort"

	"github.com/alexanderramin/provost/internal/domain"
)

// Thresholds are the GPA floors applied for one evaluation. They always
// satisfy Probation <= Warning <= Good.
type Thresholds struct {
	Good      float64 `json:"good_standing_min_gpa"`
	Warning   float64 `json:"warning_min_gpa"`
	Probation float64 `json:"probation_min_gpa"`
	// TierMinCredits is the credit floor of the tier that supplied the
	// thresholds, or nil when the policy's base thresholds applied.
	TierMinCredits *float64 `json:"tier_min_credits,omitempty"`
}

// ResolveThresholds picks the thresholds for a student with the given
// completed credits: the tier with the highest floor at or below credits,
// falling back to the policy's base values for anything the tier leaves unset.
func ResolveThresholds(policy domain.AcademicStandingPolicy, creditsCompleted float64) Thresholds {
	good := policy.GoodStandingMinGPA
	if good <= 0 {
		good = domain.DefaultGoodStandingMinGPA
	}
	warning := policy.WarningMinGPA
	probation := policy.ProbationMinGPA

	var tierFloor *float64
	if tier, ok := activeTier(policy.Tiers, creditsCompleted); ok {
		floor := tier.MinCreditsCompleted
		tierFloor = &floor
		if tier.GoodStandingMinGPA > 0 {
			good = tier.GoodStandingMinGPA
		}
		if tier.WarningMinGPA != nil {
			warning = tier.WarningMinGPA
		}
		if tier.ProbationMinGPA != nil {
			probation = tier.ProbationMinGPA
		}
	}

	t := Thresholds{Good: good, TierMinCredits: tierFloor}
	t.Probation = math.Min(domain.FirstNonNil(good, probation), good)
	t.Warning = math.Max(t.Probation, math.Min(domain.FirstNonNil(t.Probation, warning), good))
	return t
}

func activeTier(tiers []domain.StandingTier, credits float64) (domain.StandingTier, bool) {
	if len(tiers) == 0 {
		return domain.StandingTier{}, false
	}
	sorted := append([]domain.StandingTier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinCreditsCompleted < sorted[j].MinCreditsCompleted
	})

	var best domain.StandingTier
	found := false
	for _, tier := range sorted {
		if tier.MinCreditsCompleted > credits {
			break
		}
		best = tier
		found = true
	}
	return best, found
}

// policyLimits returns the escalation limits with zero values replaced by
// the named defaults.
func policyLimits(policy domain.AcademicStandingPolicy) (maxProbationTerms, maxSuspensions, suspensionTerms int) {
	maxProbationTerms = policy.ProbationMaxTerms
	if maxProbationTerms <= 0 {
		maxProbationTerms = domain.DefaultProbationMaxTerms
	}
	maxSuspensions = policy.MaxSuspensions
	if maxSuspensions <= 0 {
		maxSuspensions = domain.DefaultMaxSuspensions
	}
	suspensionTerms = policy.SuspensionDurationTerms
	if suspensionTerms <= 0 {
		suspensionTerms = domain.DefaultSuspensionDurationTerms
	}
	return maxProbationTerms, maxSuspensions, suspensionTerms
}
