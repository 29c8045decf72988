package audit

import (
	"time"

	"github.com/alexanderramin/provost/internal/domain"
)

// GradeComparator decides whether a posted grade can satisfy a requirement.
// domain.GradeScale implements it.
type GradeComparator interface {
	IsPassing(grade string) bool
	MeetsMinimum(grade, minimum string) bool
}

type MessageCode string

const (
	MsgNoCourses             MessageCode = "NO_COURSES"
	MsgMalformedCourse       MessageCode = "MALFORMED_COURSE"
	MsgEmptyRequirement      MessageCode = "EMPTY_REQUIREMENT"
	MsgRequiredCourseMissing MessageCode = "REQUIRED_COURSE_MISSING"
	MsgMinimumGradeNotMet    MessageCode = "MINIMUM_GRADE_NOT_MET"
	MsgCourseAlreadyApplied  MessageCode = "COURSE_ALREADY_APPLIED"
	MsgGroupShort            MessageCode = "GROUP_SHORT"
	MsgCreditsShort          MessageCode = "CREDITS_SHORT"
	MsgCoursesShort          MessageCode = "COURSES_SHORT"
	MsgRequirementGPAShort   MessageCode = "REQUIREMENT_GPA_SHORT"
	MsgNoGradedCourses       MessageCode = "NO_GRADED_COURSES"
	MsgOverallGPAShort       MessageCode = "OVERALL_GPA_SHORT"
	MsgMajorGPAShort         MessageCode = "MAJOR_GPA_SHORT"
	MsgMajorGPAUnavailable   MessageCode = "MAJOR_GPA_UNAVAILABLE"
	MsgTotalCreditsUnset     MessageCode = "TOTAL_CREDITS_UNSET"
	MsgAuditSummary          MessageCode = "AUDIT_SUMMARY"
)

// AuditMessage explains one finding of an audit. Messages never block the
// audit itself; they describe why a status was reached.
type AuditMessage struct {
	Level         domain.MessageLevel `json:"level"`
	Code          MessageCode         `json:"code"`
	Message       string              `json:"message"`
	RequirementID string              `json:"requirement_id,omitempty"`
}

// AppliedCourse is a student course bound to the requirements it counts toward.
type AppliedCourse struct {
	StudentCourseID string              `json:"student_course_id"`
	CourseID        string              `json:"course_id"`
	CourseCode      string              `json:"course_code"`
	Title           string              `json:"title"`
	Credits         float64             `json:"credits"`
	Grade           *string             `json:"grade,omitempty"`
	GradePoints     *float64            `json:"grade_points,omitempty"`
	QualityPoints   float64             `json:"quality_points"`
	Status          domain.CourseStatus `json:"status"`
	RequirementIDs  []string            `json:"requirement_ids"`
	MetMinimumGrade bool                `json:"met_minimum_grade"`
}

// MissingCourse names something a requirement still needs.
type MissingCourse struct {
	CourseID   string `json:"course_id,omitempty"`
	CourseCode string `json:"course_code,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	Required   bool   `json:"required"`
	Reason     string `json:"reason"`
}

// GroupAuditResult is the outcome of one course group inside a requirement.
type GroupAuditResult struct {
	GroupID           string   `json:"group_id"`
	Name              string   `json:"name"`
	CreditsRequired   float64  `json:"credits_required"`
	CoursesRequired   int      `json:"courses_required"`
	CreditsEarned     float64  `json:"credits_earned"`
	CreditsInProgress float64  `json:"credits_in_progress"`
	CoursesCompleted  int      `json:"courses_completed"`
	CoursesInProgress int      `json:"courses_in_progress"`
	Satisfied         bool     `json:"satisfied"`
	StudentCourseIDs  []string `json:"student_course_ids"`
}

// RequirementAuditResult is the matcher's verdict on one degree requirement.
type RequirementAuditResult struct {
	RequirementID     string                   `json:"requirement_id"`
	RequirementName   string                   `json:"requirement_name"`
	Category          string                   `json:"category"`
	Status            domain.RequirementStatus `json:"status"`
	AllowSharing      bool                     `json:"allow_sharing"`
	CreditsRequired   float64                  `json:"credits_required"`
	CreditsEarned     float64                  `json:"credits_earned"`
	CreditsInProgress float64                  `json:"credits_in_progress"`
	CoursesRequired   int                      `json:"courses_required"`
	CoursesCompleted  int                      `json:"courses_completed"`
	CoursesInProgress int                      `json:"courses_in_progress"`
	GPA               *float64                 `json:"gpa,omitempty"`
	GPARequired       *float64                 `json:"gpa_required,omitempty"`
	QualityPoints     float64                  `json:"quality_points"`
	GPACredits        float64                  `json:"gpa_credits"`
	// CompletesWhenGradesPost is true when the requirement would be complete
	// if every applied in-progress course posts a satisfying grade.
	CompletesWhenGradesPost bool               `json:"completes_when_grades_post"`
	AppliedCourses          []AppliedCourse    `json:"applied_courses"`
	MissingCourses          []MissingCourse    `json:"missing_courses"`
	Groups                  []GroupAuditResult `json:"groups,omitempty"`
	Messages                []AuditMessage     `json:"messages,omitempty"`
}

type DegreeAuditInput struct {
	StudentID            string                     `json:"student_id"`
	StudentProgramID     string                     `json:"student_program_id"`
	ProgramID            string                     `json:"program_id"`
	TotalCreditsRequired float64                    `json:"total_credits_required"`
	OverallGPARequired   *float64                   `json:"overall_gpa_required,omitempty"`
	MajorGPARequired     *float64                   `json:"major_gpa_required,omitempty"`
	OverallGPAActual     *float64                   `json:"overall_gpa_actual,omitempty"`
	Requirements         []domain.DegreeRequirement `json:"requirements"`
	StudentCourses       []domain.StudentCourse     `json:"student_courses"`
	// AuditDate is reported verbatim; the audit never reads a clock.
	AuditDate time.Time `json:"audit_date"`
}

type DegreeAuditResult struct {
	StudentID              string                   `json:"student_id"`
	StudentProgramID       string                   `json:"student_program_id"`
	ProgramID              string                   `json:"program_id"`
	AuditDate              time.Time                `json:"audit_date"`
	Status                 domain.AuditStatus       `json:"status"`
	CompletionPercentage   float64                  `json:"completion_percentage"`
	TotalCreditsRequired   float64                  `json:"total_credits_required"`
	TotalCreditsEarned     float64                  `json:"total_credits_earned"`
	TotalCreditsInProgress float64                  `json:"total_credits_in_progress"`
	RequirementsTotal      int                      `json:"requirements_total"`
	RequirementsComplete   int                      `json:"requirements_complete"`
	OverallGPA             *float64                 `json:"overall_gpa,omitempty"`
	OverallGPARequired     *float64                 `json:"overall_gpa_required,omitempty"`
	OverallGPAMet          bool                     `json:"overall_gpa_met"`
	MajorGPA               *float64                 `json:"major_gpa,omitempty"`
	MajorGPARequired       *float64                 `json:"major_gpa_required,omitempty"`
	MajorGPAMet            bool                     `json:"major_gpa_met"`
	Requirements           []RequirementAuditResult `json:"requirements"`
	AppliedCourses         []AppliedCourse          `json:"applied_courses"`
	UnusedCourses          []domain.StudentCourse   `json:"unused_courses"`
	Messages               []AuditMessage           `json:"messages"`
}

// AllRequirementsComplete reports whether every requirement reached complete.
func (r DegreeAuditResult) AllRequirementsComplete() bool {
	return r.RequirementsTotal > 0 && r.RequirementsComplete == r.RequirementsTotal
}
