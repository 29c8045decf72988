package domain

import "time"

// Student holds the administrative and data-validation facts graduation and
// aid evaluations read. Academic history lives in StudentCourse rows.
type Student struct {
	ID    string
	Name  string
	Email string

	IsInternational bool
	SevisUpdated    bool

	DiplomaName             string
	DiplomaNameVerified     bool
	MailingAddressConfirmed bool
	MajorDeclared           bool
	MinorDeclared           bool

	FinancialBalance        float64
	LibraryClearance        bool
	DepartmentClearance     bool
	HasFederalLoans         bool
	ExitCounselingCompleted bool

	AcademicIntegrityViolation bool

	OnAcademicPlan           bool
	AcademicPlanRequirements []string
	SapAppealApproved        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentProgram is a student's enrollment in a degree program.
type StudentProgram struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	ProgramID string           `json:"program_id"`
	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Hold is a registrar, bursar or other office hold on a student's account.
type Hold struct {
	ID               string `json:"id"`
	StudentID        string `json:"student_id,omitempty"`
	Type             string `json:"type"`
	Reason           string `json:"reason"`
	BlocksGraduation bool   `json:"blocks_graduation"`
}

// Milestone is a non-course degree milestone (thesis defense, capstone, exam).
type Milestone struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id,omitempty"`
	Name      string `json:"name"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

// Conferral records a degree conferred on a student program, with the honors
// designation in force at conferral.
type Conferral struct {
	ID               string            `json:"id"`
	StudentProgramID string            `json:"student_program_id"`
	Honors           HonorsDesignation `json:"honors"`
	ConferredAt      time.Time         `json:"conferred_at"`
}
