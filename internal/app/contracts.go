package app

import (
	"github.com/alexanderramin/provost/internal/audit"
	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/graduation"
	"github.com/alexanderramin/provost/internal/transcript"
)

// TermRequest asks for one student's standing or SAP evaluation for a term.
type TermRequest struct {
	StudentID string `json:"student_id"`
	TermID    string `json:"term_id"`
	// TermGPA is reported on the standing history entry when set.
	TermGPA *float64 `json:"term_gpa,omitempty"`
	// ReinstatementApproved moves a suspended or dismissed student back for
	// standing, and lifts a carried-forward ineligible status for SAP.
	ReinstatementApproved bool `json:"reinstatement_approved"`
	// DryRun evaluates without recording history.
	DryRun bool `json:"dry_run"`
}

type ImportStudentResult struct {
	Student        *domain.Student          `json:"student"`
	Created        bool                     `json:"created"`
	Enrollments    []*domain.StudentProgram `json:"enrollments"`
	CourseCount    int                      `json:"course_count"`
	HoldCount      int                      `json:"hold_count"`
	MilestoneCount int                      `json:"milestone_count"`
	HistoryCount   int                      `json:"history_count"`
}

type ImportProgramResult struct {
	Program          *domain.Program `json:"program"`
	Created          bool            `json:"created"`
	RequirementCount int             `json:"requirement_count"`
	GroupCount       int             `json:"group_count"`
}

// AuditReport pairs a degree audit with the program and student it ran for.
type AuditReport struct {
	Student *domain.Student         `json:"student"`
	Program *domain.Program         `json:"program"`
	Audit   audit.DegreeAuditResult `json:"audit"`
	Summary transcript.Summary      `json:"transcript"`
}

// GraduationReport is an eligibility check against the student's active
// program, with the audit figures it was fed.
type GraduationReport struct {
	StudentID        string                                `json:"student_id"`
	StudentProgramID string                                `json:"student_program_id"`
	ProgramCode      string                                `json:"program_code"`
	Audit            graduation.AuditSummary               `json:"audit"`
	Summary          transcript.Summary                    `json:"transcript"`
	Result           graduation.GraduationValidationResult `json:"result"`
}

// ConferralRequest asks whether a student's degree can be conferred. With
// Record set, a passing check records the conferral and completes the
// enrollment.
type ConferralRequest struct {
	StudentID string `json:"student_id"`
	Record    bool   `json:"record"`
}

// ConferralReport is a conferral check. Conferral is set when the degree
// was recorded by this call.
type ConferralReport struct {
	GraduationReport
	Honors    graduation.LatinHonorsResult `json:"honors"`
	Conferral *domain.Conferral            `json:"conferral,omitempty"`
}
