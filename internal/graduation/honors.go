package graduation

import (
	"fmt"
	"math"

	"github.com/alexanderramin/provost/internal/domain"
)

type GPABasis string

const (
	BasisCumulative    GPABasis = "cumulative"
	BasisInstitutional GPABasis = "institutional"
)

type LatinHonorsInput struct {
	StudentID                  string   `json:"student_id"`
	CumulativeGPA              *float64 `json:"cumulative_gpa,omitempty"`
	InstitutionalGPA           *float64 `json:"institutional_gpa,omitempty"`
	TotalCredits               float64  `json:"total_credits"`
	InstitutionalCredits       float64  `json:"institutional_credits"`
	AcademicIntegrityViolation bool     `json:"academic_integrity_violation"`
}

type LatinHonorsResult struct {
	StudentID   string                   `json:"student_id"`
	Designation domain.HonorsDesignation `json:"designation"`
	Qualified   bool                     `json:"qualified"`
	GPA         *float64                 `json:"gpa,omitempty"`
	GPABasis    GPABasis                 `json:"gpa_basis"`
	Reason      string                   `json:"reason"`
}

// CalculateLatinHonors checks, in order, the integrity disqualifier, the
// credit floors and then the GPA against summa, magna and cum laude.
// Missing every threshold yields HonorsNone, not an error.
func CalculateLatinHonors(input LatinHonorsInput, cfg domain.LatinHonorsConfig) LatinHonorsResult {
	cfg = honorsDefaults(cfg)
	result := LatinHonorsResult{
		StudentID:   input.StudentID,
		Designation: domain.HonorsNone,
		GPABasis:    BasisCumulative,
		GPA:         input.CumulativeGPA,
	}
	if cfg.UseInstitutionalGPA {
		result.GPABasis = BasisInstitutional
		result.GPA = input.InstitutionalGPA
	}

	if cfg.IntegrityViolationDisqualifies && input.AcademicIntegrityViolation {
		result.Reason = "Disqualified by an academic integrity violation"
		return result
	}
	if total := math.Max(0, input.TotalCredits); total < cfg.MinimumTotalCredits {
		result.Reason = fmt.Sprintf("%.1f total credits; %.1f required for honors", total, cfg.MinimumTotalCredits)
		return result
	}
	if inst := math.Max(0, input.InstitutionalCredits); inst < cfg.MinimumInstitutionalCredits {
		result.Reason = fmt.Sprintf("%.1f institutional credits; %.1f required for honors", inst, cfg.MinimumInstitutionalCredits)
		return result
	}
	if result.GPA == nil {
		result.Reason = fmt.Sprintf("No %s GPA on record", result.GPABasis)
		return result
	}

	gpa := math.Max(0, *result.GPA)
	result.GPA = &gpa
	switch {
	case gpa >= cfg.SummaCumLaudeThreshold:
		result.Designation = domain.HonorsSummaCumLaude
	case gpa >= cfg.MagnaCumLaudeThreshold:
		result.Designation = domain.HonorsMagnaCumLaude
	case gpa >= cfg.CumLaudeThreshold:
		result.Designation = domain.HonorsCumLaude
	default:
		result.Reason = fmt.Sprintf("%s GPA %.2f is below the %.2f cum laude threshold",
			result.GPABasis, gpa, cfg.CumLaudeThreshold)
		return result
	}
	result.Qualified = true
	result.Reason = fmt.Sprintf("%s GPA %.2f qualifies for %s", result.GPABasis, gpa, result.Designation)
	return result
}

// honorsDefaults replaces unset GPA thresholds with the named defaults.
// Credit floors are taken as given; zero means no floor.
func honorsDefaults(cfg domain.LatinHonorsConfig) domain.LatinHonorsConfig {
	if cfg.CumLaudeThreshold <= 0 {
		cfg.CumLaudeThreshold = domain.DefaultHonorsCumLaude
	}
	if cfg.MagnaCumLaudeThreshold <= 0 {
		cfg.MagnaCumLaudeThreshold = domain.DefaultHonorsMagnaCumLaude
	}
	if cfg.SummaCumLaudeThreshold <= 0 {
		cfg.SummaCumLaudeThreshold = domain.DefaultHonorsSummaCumLaude
	}
	return cfg
}
