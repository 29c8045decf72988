package graduation

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// AuditSummary is the slice of a degree audit the academic checklist reads.
type AuditSummary struct {
	CompletionPercentage    float64 `json:"completion_percentage"`
	AllRequirementsComplete bool    `json:"all_requirements_complete"`
	RequirementsTotal       int     `json:"requirements_total"`
	RequirementsComplete    int     `json:"requirements_complete"`
}

type GraduationEligibilityInput struct {
	StudentID            string             `json:"student_id"`
	Audit                AuditSummary       `json:"audit"`
	TotalCredits         float64            `json:"total_credits"`
	InstitutionalCredits float64            `json:"institutional_credits"`
	CumulativeGPA        *float64           `json:"cumulative_gpa,omitempty"`
	IncompleteGrades     int                `json:"incomplete_grades"`
	PendingGrades        int                `json:"pending_grades"`
	Milestones           []domain.Milestone `json:"milestones,omitempty"`
	Holds                []domain.Hold      `json:"holds,omitempty"`

	FinancialBalance        float64 `json:"financial_balance"`
	LibraryClearance        bool    `json:"library_clearance"`
	DepartmentClearance     bool    `json:"department_clearance"`
	HasFederalLoans         bool    `json:"has_federal_loans"`
	ExitCounselingCompleted bool    `json:"exit_counseling_completed"`
	IsInternational         bool    `json:"is_international"`
	SevisUpdated            bool    `json:"sevis_updated"`

	DiplomaName             string `json:"diploma_name"`
	DiplomaNameVerified     bool   `json:"diploma_name_verified"`
	MailingAddressConfirmed bool   `json:"mailing_address_confirmed"`
	MajorDeclared           bool   `json:"major_declared"`
	MinorDeclared           bool   `json:"minor_declared"`
}

type GraduationValidationResult struct {
	StudentID         string  `json:"student_id"`
	IsEligible        bool    `json:"is_eligible"`
	AcademicMet       bool    `json:"academic_met"`
	AdministrativeMet bool    `json:"administrative_met"`
	DataValid         bool    `json:"data_valid"`
	Blockers          []Issue `json:"blockers"`
	Warnings          []Issue `json:"warnings"`
}

// ValidateEligibility runs the academic, administrative and data checklists.
// Data problems are reported as warnings: they do not stop a student from
// being cleared to graduate.
func ValidateEligibility(input GraduationEligibilityInput, policy domain.GraduationPolicyConfig) GraduationValidationResult {
	return validate(input, policy, false)
}

// CanConfer is ValidateEligibility with data problems promoted to blockers,
// so it never passes a student ValidateEligibility would block.
func CanConfer(input GraduationEligibilityInput, policy domain.GraduationPolicyConfig) GraduationValidationResult {
	return validate(input, policy, true)
}

func validate(input GraduationEligibilityInput, policy domain.GraduationPolicyConfig, conferral bool) GraduationValidationResult {
	academic := academicIssues(input, policy)
	admin, advisories := administrativeIssues(input, policy)
	data := dataIssues(input, policy)

	result := GraduationValidationResult{
		StudentID:         input.StudentID,
		AcademicMet:       len(academic) == 0,
		AdministrativeMet: len(admin) == 0,
		DataValid:         len(data) == 0,
		Blockers:          []Issue{},
		Warnings:          []Issue{},
	}
	result.Blockers = append(result.Blockers, academic...)
	result.Blockers = append(result.Blockers, admin...)
	result.Warnings = append(result.Warnings, advisories...)
	if conferral {
		result.Blockers = append(result.Blockers, data...)
	} else {
		result.Warnings = append(result.Warnings, data...)
	}
	result.IsEligible = len(result.Blockers) == 0
	return result
}

func academicIssues(in GraduationEligibilityInput, policy domain.GraduationPolicyConfig) []Issue {
	var out []Issue
	add := func(code IssueCode, format string, args ...any) {
		out = append(out, Issue{Code: code, Category: domain.IssueAcademic, Message: fmt.Sprintf(format, args...)})
	}

	if in.Audit.CompletionPercentage < 100 || !in.Audit.AllRequirementsComplete {
		add(IssueAuditIncomplete, "Degree audit is %.1f%% complete with %d of %d requirements satisfied",
			math.Min(100, math.Max(0, in.Audit.CompletionPercentage)), in.Audit.RequirementsComplete, in.Audit.RequirementsTotal)
	}
	if total := math.Max(0, in.TotalCredits); total < policy.MinimumTotalCredits {
		add(IssueTotalCreditsShort, "%.1f credits earned; %.1f required", total, policy.MinimumTotalCredits)
	}
	if inst := math.Max(0, in.InstitutionalCredits); inst < policy.MinimumInstitutionalCredits {
		add(IssueInstitutionalCreditsShort, "%.1f institutional credits earned; %.1f required in residence",
			inst, policy.MinimumInstitutionalCredits)
	}
	if policy.MinimumCumulativeGPA > 0 {
		switch {
		case in.CumulativeGPA == nil:
			add(IssueGPAUnavailable, "No cumulative GPA on record; %.2f required", policy.MinimumCumulativeGPA)
		case *in.CumulativeGPA < policy.MinimumCumulativeGPA:
			add(IssueGPAShort, "Cumulative GPA %.2f is below the required %.2f", *in.CumulativeGPA, policy.MinimumCumulativeGPA)
		}
	}
	if in.IncompleteGrades > 0 {
		add(IssueIncompleteGrades, "%d incomplete grade(s) must be resolved", in.IncompleteGrades)
	}
	if in.PendingGrades > 0 {
		add(IssuePendingGrades, "%d grade(s) have not been posted", in.PendingGrades)
	}
	var open []string
	for _, m := range in.Milestones {
		if m.Required && !m.Completed {
			open = append(open, m.Name)
		}
	}
	if len(open) > 0 {
		add(IssueMilestoneIncomplete, "Required milestones not completed: %s", strings.Join(open, ", "))
	}
	return out
}

func administrativeIssues(in GraduationEligibilityInput, policy domain.GraduationPolicyConfig) (blockers, advisories []Issue) {
	block := func(code IssueCode, msg string) {
		blockers = append(blockers, Issue{Code: code, Category: domain.IssueAdministrative, Message: msg})
	}

	for _, h := range in.Holds {
		label := h.Type
		if h.Reason != "" {
			label += ": " + h.Reason
		}
		if h.BlocksGraduation {
			block(IssueBlockingHold, "Hold blocks graduation ("+label+")")
			continue
		}
		advisories = append(advisories, Issue{
			Code:     IssueAdvisoryHold,
			Category: domain.IssueAdministrative,
			Message:  "Hold on account (" + label + ")",
		})
	}
	if in.FinancialBalance > policy.MaxFinancialBalance {
		block(IssueBalanceDue, fmt.Sprintf("Outstanding balance $%.2f exceeds the $%.2f limit",
			in.FinancialBalance, policy.MaxFinancialBalance))
	}
	if policy.RequireLibraryClearance && !in.LibraryClearance {
		block(IssueLibraryClearance, "Library clearance is outstanding")
	}
	if policy.RequireDepartmentClearance && !in.DepartmentClearance {
		block(IssueDepartmentClearance, "Department clearance is outstanding")
	}
	if policy.RequireExitCounseling && in.HasFederalLoans && !in.ExitCounselingCompleted {
		block(IssueExitCounseling, "Federal loan exit counseling has not been completed")
	}
	if policy.RequireSevisUpdate && in.IsInternational && !in.SevisUpdated {
		block(IssueSevisUpdate, "SEVIS record has not been updated for program completion")
	}
	return blockers, advisories
}

func dataIssues(in GraduationEligibilityInput, policy domain.GraduationPolicyConfig) []Issue {
	var out []Issue
	add := func(code IssueCode, msg string) {
		out = append(out, Issue{Code: code, Category: domain.IssueData, Message: msg})
	}

	switch {
	case strings.TrimSpace(in.DiplomaName) == "":
		add(IssueDiplomaNameUnverified, "Diploma name is missing")
	case !in.DiplomaNameVerified:
		add(IssueDiplomaNameUnverified, "Diploma name has not been verified by the student")
	}
	if !in.MailingAddressConfirmed {
		add(IssueMailingAddressUnconfirmed, "Diploma mailing address has not been confirmed")
	}
	if !in.MajorDeclared {
		add(IssueMajorUndeclared, "Major is not declared")
	}
	if policy.RequireMinorDeclaration && !in.MinorDeclared {
		add(IssueMinorUndeclared, "Minor is not declared")
	}
	return out
}
