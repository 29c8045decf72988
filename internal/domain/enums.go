package domain

type CourseStatus string

const (
	CourseCompleted  CourseStatus = "completed"
	CourseInProgress CourseStatus = "in_progress"
	CourseWithdrawn  CourseStatus = "withdrawn"
	CourseFailed     CourseStatus = "failed"
)

// ValidCourseStatuses is the canonical set of accepted course status strings.
var ValidCourseStatuses = map[string]bool{
	"completed": true, "in_progress": true, "withdrawn": true, "failed": true,
}

type CourseSource string

const (
	SourceRegistration CourseSource = "registration"
	SourceTransfer     CourseSource = "transfer"
	SourceTestCredit   CourseSource = "test_credit"
)

// ValidCourseSources is the canonical set of accepted course source strings.
var ValidCourseSources = map[string]bool{
	"registration": true, "transfer": true, "test_credit": true,
}

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
)

type RequirementStatus string

const (
	RequirementComplete   RequirementStatus = "complete"
	RequirementInProgress RequirementStatus = "in_progress"
	RequirementIncomplete RequirementStatus = "incomplete"
	RequirementNotStarted RequirementStatus = "not_started"
)

type AuditStatus string

const (
	AuditComplete   AuditStatus = "complete"
	AuditInProgress AuditStatus = "in_progress"
	AuditIncomplete AuditStatus = "incomplete"
)

type MessageLevel string

const (
	MessageInfo    MessageLevel = "info"
	MessageWarning MessageLevel = "warning"
	MessageError   MessageLevel = "error"
)

type Standing string

const (
	StandingGood       Standing = "good_standing"
	StandingWarning    Standing = "academic_warning"
	StandingProbation  Standing = "academic_probation"
	StandingSuspension Standing = "academic_suspension"
	StandingDismissal  Standing = "academic_dismissal"
	StandingReinstated Standing = "reinstated"
)

// ValidStandings is the canonical set of accepted standing strings.
var ValidStandings = map[string]bool{
	"good_standing":       true, "academic_warning": true, "academic_probation": true,
	"academic_suspension": true, "academic_dismissal": true, "reinstated": true,
}

type SapStatus string

const (
	SapSatisfactory SapStatus = "satisfactory"
	SapWarning      SapStatus = "warning"
	SapProbation    SapStatus = "probation"
	SapAcademicPlan SapStatus = "academic_plan"
	SapSuspension   SapStatus = "suspension"
	SapIneligible   SapStatus = "ineligible"
)

// ValidSapStatuses is the canonical set of accepted SAP status strings.
var ValidSapStatuses = map[string]bool{
	"satisfactory":  true, "warning": true, "probation": true,
	"academic_plan": true, "suspension": true, "ineligible": true,
}

type HonorsDesignation string

const (
	HonorsNone          HonorsDesignation = "none"
	HonorsCumLaude      HonorsDesignation = "cum_laude"
	HonorsMagnaCumLaude HonorsDesignation = "magna_cum_laude"
	HonorsSummaCumLaude HonorsDesignation = "summa_cum_laude"
)

type IssueCategory string

const (
	IssueAcademic       IssueCategory = "academic"
	IssueAdministrative IssueCategory = "administrative"
	IssueData           IssueCategory = "data"
)
