package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// StudentRecordImport is the top-level JSON structure for a student record
// export from the registrar.
type StudentRecordImport struct {
	Student         StudentImport           `json:"student"`
	Programs        []string                `json:"programs"`
	Courses         []CourseImport          `json:"courses"`
	Holds           []HoldImport            `json:"holds,omitempty"`
	Milestones      []MilestoneImport       `json:"milestones,omitempty"`
	StandingHistory []StandingHistoryImport `json:"standing_history,omitempty"`
}

// StudentImport carries the administrative flags graduation and aid checks
// read. ID is optional; a new one is generated when it is empty.
type StudentImport struct {
	ID                         string   `json:"id,omitempty"`
	Name                       string   `json:"name"`
	Email                      string   `json:"email,omitempty"`
	IsInternational            bool     `json:"is_international,omitempty"`
	SevisUpdated               bool     `json:"sevis_updated,omitempty"`
	DiplomaName                string   `json:"diploma_name,omitempty"`
	DiplomaNameVerified        bool     `json:"diploma_name_verified,omitempty"`
	MailingAddressConfirmed    bool     `json:"mailing_address_confirmed,omitempty"`
	MajorDeclared              bool     `json:"major_declared,omitempty"`
	MinorDeclared              bool     `json:"minor_declared,omitempty"`
	FinancialBalance           float64  `json:"financial_balance,omitempty"`
	LibraryClearance           bool     `json:"library_clearance,omitempty"`
	DepartmentClearance        bool     `json:"department_clearance,omitempty"`
	HasFederalLoans            bool     `json:"has_federal_loans,omitempty"`
	ExitCounselingCompleted    bool     `json:"exit_counseling_completed,omitempty"`
	AcademicIntegrityViolation bool     `json:"academic_integrity_violation,omitempty"`
	OnAcademicPlan             bool     `json:"on_academic_plan,omitempty"`
	AcademicPlanRequirements   []string `json:"academic_plan_requirements,omitempty"`
	SapAppealApproved          bool     `json:"sap_appeal_approved,omitempty"`
}

// CourseImport is one attempt. CourseCode like "CS 101" is enough: the
// course id, subject and number are derived from it when omitted.
type CourseImport struct {
	CourseID     string   `json:"course_id,omitempty"`
	CourseCode   string   `json:"course_code"`
	Title        string   `json:"title,omitempty"`
	SubjectCode  string   `json:"subject_code,omitempty"`
	CourseNumber string   `json:"course_number,omitempty"`
	Credits      float64  `json:"credits"`
	Grade        *string  `json:"grade,omitempty"`
	GradePoints  *float64 `json:"grade_points,omitempty"`
	Status       string   `json:"status"`
	Source       string   `json:"source,omitempty"`
	TermID       string   `json:"term_id,omitempty"`
	Attributes   []string `json:"attributes,omitempty"`
}

// HoldImport defines a hold. BlocksGraduation defaults to true.
type HoldImport struct {
	Type             string `json:"type"`
	Reason           string `json:"reason,omitempty"`
	BlocksGraduation *bool  `json:"blocks_graduation,omitempty"`
}

// MilestoneImport defines a milestone. Required defaults to true.
type MilestoneImport struct {
	Name      string `json:"name"`
	Required  *bool  `json:"required,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// StandingHistoryImport seeds standing history carried over from a previous
// system, oldest first.
type StandingHistoryImport struct {
	TermID                    string   `json:"term_id"`
	Standing                  string   `json:"standing"`
	CumulativeGPA             float64  `json:"cumulative_gpa"`
	TermGPA                   *float64 `json:"term_gpa,omitempty"`
	ConsecutiveProbationTerms int      `json:"consecutive_probation_terms,omitempty"`
	TotalProbationTerms       int      `json:"total_probation_terms,omitempty"`
	TotalSuspensions          int      `json:"total_suspensions,omitempty"`
	Reason                    string   `json:"reason,omitempty"`
	RecordedAt                string   `json:"recorded_at"`
}

// ProgramDefinitionImport is the top-level JSON structure for a degree
// program and its requirements.
type ProgramDefinitionImport struct {
	Program      ProgramImport       `json:"program"`
	Requirements []RequirementImport `json:"requirements"`
}

type ProgramImport struct {
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	TotalCreditsRequired float64  `json:"total_credits_required"`
	OverallGPARequired   *float64 `json:"overall_gpa_required,omitempty"`
	MajorGPARequired     *float64 `json:"major_gpa_required,omitempty"`
}

// RequirementImport defines one requirement. DisplayOrder defaults to the
// requirement's position in the file, starting at 1.
type RequirementImport struct {
	Name           string                    `json:"name"`
	Category       string                    `json:"category,omitempty"`
	DisplayOrder   *int                      `json:"display_order,omitempty"`
	MinimumCredits *float64                  `json:"minimum_credits,omitempty"`
	MinimumCourses *int                      `json:"minimum_courses,omitempty"`
	MinimumGPA     *float64                  `json:"minimum_gpa,omitempty"`
	AllowSharing   bool                      `json:"allow_sharing,omitempty"`
	Courses        []RequirementCourseImport `json:"courses,omitempty"`
	Groups         []GroupImport             `json:"groups,omitempty"`
}

type RequirementCourseImport struct {
	CourseID     string  `json:"course_id"`
	CourseCode   string  `json:"course_code,omitempty"`
	IsRequired   *bool   `json:"is_required,omitempty"`
	MinimumGrade *string `json:"minimum_grade,omitempty"`
}

type GroupImport struct {
	Name           string      `json:"name"`
	MinimumCredits *float64    `json:"minimum_credits,omitempty"`
	MinimumCourses *int        `json:"minimum_courses,omitempty"`
	MinimumGrade   *string     `json:"minimum_grade,omitempty"`
	CourseIDs      []string    `json:"course_ids,omitempty"`
	Rule           *RuleImport `json:"rule,omitempty"`
}

type RuleImport struct {
	CourseIDs        []string `json:"course_ids,omitempty"`
	SubjectCodes     []string `json:"subject_codes,omitempty"`
	MinLevel         *int     `json:"min_level,omitempty"`
	MaxLevel         *int     `json:"max_level,omitempty"`
	Attributes       []string `json:"attributes,omitempty"`
	ExcludeCourseIDs []string `json:"exclude_course_ids,omitempty"`
}

// LoadStudentRecord reads a student record JSON file, checks its structure
// and parses it.
func LoadStudentRecord(path string) (*StudentRecordImport, error) {
	var schema StudentRecordImport
	if err := loadJSON(path, "student_record", &schema); err != nil {
		return nil, fmt.Errorf("parsing student record: %w", err)
	}
	return &schema, nil
}

// LoadProgramDefinition reads a program definition JSON file, checks its
// structure and parses it.
func LoadProgramDefinition(path string) (*ProgramDefinitionImport, error) {
	var schema ProgramDefinitionImport
	if err := loadJSON(path, "program_definition", &schema); err != nil {
		return nil, fmt.Errorf("parsing program definition: %w", err)
	}
	return &schema, nil
}

func loadJSON(path, schemaName string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := checkShape(schemaName, filepath.Base(path), data); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
