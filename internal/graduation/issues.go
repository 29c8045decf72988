package graduation

import "github.com/alexanderramin/provost/internal/domain"

type IssueCode string

const (
	IssueAuditIncomplete           IssueCode = "AUDIT_INCOMPLETE"
	IssueTotalCreditsShort         IssueCode = "TOTAL_CREDITS_SHORT"
	IssueInstitutionalCreditsShort IssueCode = "INSTITUTIONAL_CREDITS_SHORT"
	IssueGPAShort                  IssueCode = "GPA_SHORT"
	IssueGPAUnavailable            IssueCode = "GPA_UNAVAILABLE"
	IssueIncompleteGrades          IssueCode = "INCOMPLETE_GRADES"
	IssuePendingGrades             IssueCode = "PENDING_GRADES"
	IssueMilestoneIncomplete       IssueCode = "MILESTONE_INCOMPLETE"
	IssueBlockingHold              IssueCode = "BLOCKING_HOLD"
	IssueAdvisoryHold              IssueCode = "ADVISORY_HOLD"
	IssueBalanceDue                IssueCode = "BALANCE_DUE"
	IssueLibraryClearance          IssueCode = "LIBRARY_CLEARANCE"
	IssueDepartmentClearance       IssueCode = "DEPARTMENT_CLEARANCE"
	IssueExitCounseling            IssueCode = "EXIT_COUNSELING"
	IssueSevisUpdate               IssueCode = "SEVIS_UPDATE"
	IssueDiplomaNameUnverified     IssueCode = "DIPLOMA_NAME_UNVERIFIED"
	IssueMailingAddressUnconfirmed IssueCode = "MAILING_ADDRESS_UNCONFIRMED"
	IssueMajorUndeclared           IssueCode = "MAJOR_UNDECLARED"
	IssueMinorUndeclared           IssueCode = "MINOR_UNDECLARED"
)

// Issue is one finding of a graduation checklist.
type Issue struct {
	Code     IssueCode            `json:"code"`
	Category domain.IssueCategory `json:"category"`
	Message  string               `json:"message"`
}

// HasIssue reports whether issues contains the code.
func HasIssue(issues []Issue, code IssueCode) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}
