package domain

// Standing policy fallbacks applied when the corresponding field is zero.
const (
	DefaultGoodStandingMinGPA      = 2.0
	DefaultProbationMaxTerms       = 2
	DefaultSuspensionDurationTerms = 1
	DefaultMaxSuspensions          = 1
)

// SAP policy defaults (34 CFR 668.34 common institutional values).
const (
	DefaultSapMinimumGPA      = 2.0
	DefaultSapMinimumPace     = 0.67
	DefaultSapMaxTimeframePct = 1.5

	// SapTimeframeAlertRatio is the share of the maximum timeframe past
	// which a pre-emptive recommendation is issued.
	SapTimeframeAlertRatio = 0.9
)

const (
	DefaultGraduationMinCredits     = 120.0
	DefaultGraduationMinResidency   = 30.0
	DefaultGraduationMinGPA         = 2.0
	DefaultHonorsCumLaude           = 3.5
	DefaultHonorsMagnaCumLaude      = 3.7
	DefaultHonorsSummaCumLaude      = 3.9
	DefaultHonorsMinTotalCredits    = 60.0
	DefaultHonorsMinResidencyCredit = 60.0
)

// StandingTier overrides GPA thresholds once a student has completed at
// least MinCreditsCompleted credits.
type StandingTier struct {
	MinCreditsCompleted float64  `json:"min_credits_completed" mapstructure:"min_credits_completed"`
	GoodStandingMinGPA  float64  `json:"good_standing_min_gpa" mapstructure:"good_standing_min_gpa"`
	WarningMinGPA       *float64 `json:"warning_min_gpa,omitempty" mapstructure:"warning_min_gpa"`
	ProbationMinGPA     *float64 `json:"probation_min_gpa,omitempty" mapstructure:"probation_min_gpa"`
}

type AcademicStandingPolicy struct {
	GoodStandingMinGPA      float64        `json:"good_standing_min_gpa" mapstructure:"good_standing_min_gpa"`
	WarningMinGPA           *float64       `json:"warning_min_gpa,omitempty" mapstructure:"warning_min_gpa"`
	ProbationMinGPA         *float64       `json:"probation_min_gpa,omitempty" mapstructure:"probation_min_gpa"`
	Tiers                   []StandingTier `json:"tiers,omitempty" mapstructure:"tiers"`
	ProbationMaxTerms       int            `json:"probation_max_terms" mapstructure:"probation_max_terms"`
	SuspensionDurationTerms int            `json:"suspension_duration_terms" mapstructure:"suspension_duration_terms"`
	MaxSuspensions          int            `json:"max_suspensions" mapstructure:"max_suspensions"`
}

// DefaultStandingPolicy returns the standing policy built from the named defaults.
func DefaultStandingPolicy() AcademicStandingPolicy {
	return AcademicStandingPolicy{
		GoodStandingMinGPA:      DefaultGoodStandingMinGPA,
		ProbationMaxTerms:       DefaultProbationMaxTerms,
		SuspensionDurationTerms: DefaultSuspensionDurationTerms,
		MaxSuspensions:          DefaultMaxSuspensions,
	}
}

// SapGPATier raises the SAP GPA floor once attempted credits reach MinAttemptedCredits.
type SapGPATier struct {
	MinAttemptedCredits float64 `json:"min_attempted_credits" mapstructure:"min_attempted_credits"`
	MinimumGPA          float64 `json:"minimum_gpa" mapstructure:"minimum_gpa"`
}

type SapPolicy struct {
	MinimumGPA             float64      `json:"minimum_gpa" mapstructure:"minimum_gpa"`
	GPATiers               []SapGPATier `json:"gpa_tiers,omitempty" mapstructure:"gpa_tiers"`
	MinimumPace            float64      `json:"minimum_pace" mapstructure:"minimum_pace"`
	MaxTimeframePercentage float64      `json:"max_timeframe_percentage" mapstructure:"max_timeframe_percentage"`
	WarningPeriodEnabled   bool         `json:"warning_period_enabled" mapstructure:"warning_period_enabled"`
}

// DefaultSapPolicy returns the SAP policy built from the named defaults.
func DefaultSapPolicy() SapPolicy {
	return SapPolicy{
		MinimumGPA:             DefaultSapMinimumGPA,
		MinimumPace:            DefaultSapMinimumPace,
		MaxTimeframePercentage: DefaultSapMaxTimeframePct,
		WarningPeriodEnabled:   true,
	}
}

type GraduationPolicyConfig struct {
	MinimumTotalCredits         float64 `json:"minimum_total_credits" mapstructure:"minimum_total_credits"`
	MinimumInstitutionalCredits float64 `json:"minimum_institutional_credits" mapstructure:"minimum_institutional_credits"`
	MinimumCumulativeGPA        float64 `json:"minimum_cumulative_gpa" mapstructure:"minimum_cumulative_gpa"`
	MaxFinancialBalance         float64 `json:"max_financial_balance" mapstructure:"max_financial_balance"`
	RequireLibraryClearance     bool    `json:"require_library_clearance" mapstructure:"require_library_clearance"`
	RequireDepartmentClearance  bool    `json:"require_department_clearance" mapstructure:"require_department_clearance"`
	RequireExitCounseling       bool    `json:"require_exit_counseling" mapstructure:"require_exit_counseling"`
	RequireSevisUpdate          bool    `json:"require_sevis_update" mapstructure:"require_sevis_update"`
	RequireMinorDeclaration     bool    `json:"require_minor_declaration" mapstructure:"require_minor_declaration"`
}

// DefaultGraduationPolicy returns the graduation policy built from the named defaults.
func DefaultGraduationPolicy() GraduationPolicyConfig {
	return GraduationPolicyConfig{
		MinimumTotalCredits:         DefaultGraduationMinCredits,
		MinimumInstitutionalCredits: DefaultGraduationMinResidency,
		MinimumCumulativeGPA:        DefaultGraduationMinGPA,
		RequireLibraryClearance:     true,
		RequireExitCounseling:       true,
		RequireSevisUpdate:          true,
	}
}

type LatinHonorsConfig struct {
	CumLaudeThreshold              float64 `json:"cum_laude_threshold" mapstructure:"cum_laude_threshold"`
	MagnaCumLaudeThreshold         float64 `json:"magna_cum_laude_threshold" mapstructure:"magna_cum_laude_threshold"`
	SummaCumLaudeThreshold         float64 `json:"summa_cum_laude_threshold" mapstructure:"summa_cum_laude_threshold"`
	MinimumTotalCredits            float64 `json:"minimum_total_credits" mapstructure:"minimum_total_credits"`
	MinimumInstitutionalCredits    float64 `json:"minimum_institutional_credits" mapstructure:"minimum_institutional_credits"`
	UseInstitutionalGPA            bool    `json:"use_institutional_gpa" mapstructure:"use_institutional_gpa"`
	IntegrityViolationDisqualifies bool    `json:"integrity_violation_disqualifies" mapstructure:"integrity_violation_disqualifies"`
}

// DefaultLatinHonorsConfig returns the honors config built from the named defaults.
func DefaultLatinHonorsConfig() LatinHonorsConfig {
	return LatinHonorsConfig{
		CumLaudeThreshold:              DefaultHonorsCumLaude,
		MagnaCumLaudeThreshold:         DefaultHonorsMagnaCumLaude,
		SummaCumLaudeThreshold:         DefaultHonorsSummaCumLaude,
		MinimumTotalCredits:            DefaultHonorsMinTotalCredits,
		MinimumInstitutionalCredits:    DefaultHonorsMinResidencyCredit,
		IntegrityViolationDisqualifies: true,
	}
}
