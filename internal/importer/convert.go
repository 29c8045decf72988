package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/google/uuid"
)

// StudentRecord is a converted student record ready for persistence.
type StudentRecord struct {
	Student         *domain.Student
	ProgramCodes    []string
	Courses         []domain.StudentCourse
	Holds           []domain.Hold
	Milestones      []domain.Milestone
	StandingHistory []domain.StandingHistoryEntry
}

// ProgramDefinition is a converted program with its requirements.
type ProgramDefinition struct {
	Program      *domain.Program
	Requirements []domain.DegreeRequirement
}

// ConvertStudentRecord transforms a validated StudentRecordImport into domain
// objects. Call ValidateStudentRecord first; Convert assumes the schema is valid.
func ConvertStudentRecord(schema *StudentRecordImport) *StudentRecord {
	now := time.Now().UTC()
	in := schema.Student

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	diplomaName := in.DiplomaName
	if diplomaName == "" {
		diplomaName = in.Name
	}

	student := &domain.Student{
		ID:                         id,
		Name:                       strings.TrimSpace(in.Name),
		Email:                      in.Email,
		IsInternational:            in.IsInternational,
		SevisUpdated:               in.SevisUpdated,
		DiplomaName:                diplomaName,
		DiplomaNameVerified:        in.DiplomaNameVerified,
		MailingAddressConfirmed:    in.MailingAddressConfirmed,
		MajorDeclared:              in.MajorDeclared,
		MinorDeclared:              in.MinorDeclared,
		FinancialBalance:           in.FinancialBalance,
		LibraryClearance:           in.LibraryClearance,
		DepartmentClearance:        in.DepartmentClearance,
		HasFederalLoans:            in.HasFederalLoans,
		ExitCounselingCompleted:    in.ExitCounselingCompleted,
		AcademicIntegrityViolation: in.AcademicIntegrityViolation,
		OnAcademicPlan:             in.OnAcademicPlan,
		AcademicPlanRequirements:   in.AcademicPlanRequirements,
		SapAppealApproved:          in.SapAppealApproved,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	rec := &StudentRecord{Student: student}
	for _, code := range schema.Programs {
		rec.ProgramCodes = append(rec.ProgramCodes, strings.ToUpper(strings.TrimSpace(code)))
	}
	for _, c := range schema.Courses {
		rec.Courses = append(rec.Courses, convertCourse(id, c))
	}
	for _, h := range schema.Holds {
		rec.Holds = append(rec.Holds, domain.Hold{
			ID:               uuid.New().String(),
			StudentID:        id,
			Type:             strings.TrimSpace(h.Type),
			Reason:           h.Reason,
			BlocksGraduation: domain.FirstNonNil(true, h.BlocksGraduation),
		})
	}
	for _, m := range schema.Milestones {
		rec.Milestones = append(rec.Milestones, domain.Milestone{
			ID:        uuid.New().String(),
			StudentID: id,
			Name:      strings.TrimSpace(m.Name),
			Required:  domain.FirstNonNil(true, m.Required),
			Completed: m.Completed,
		})
	}
	for _, e := range schema.StandingHistory {
		at, _ := parseRecordedAt(e.RecordedAt)
		rec.StandingHistory = append(rec.StandingHistory, domain.StandingHistoryEntry{
			ID:                        uuid.New().String(),
			StudentID:                 id,
			TermID:                    e.TermID,
			Standing:                  domain.Standing(e.Standing),
			CumulativeGPA:             e.CumulativeGPA,
			TermGPA:                   e.TermGPA,
			ConsecutiveProbationTerms: e.ConsecutiveProbationTerms,
			TotalProbationTerms:       e.TotalProbationTerms,
			TotalSuspensions:          e.TotalSuspensions,
			Reason:                    e.Reason,
			RecordedAt:                at,
		})
	}
	return rec
}

func convertCourse(studentID string, c CourseImport) domain.StudentCourse {
	code := strings.TrimSpace(c.CourseCode)
	courseID := strings.TrimSpace(c.CourseID)
	if courseID == "" {
		courseID = strings.ReplaceAll(code, " ", "")
	}
	if code == "" {
		code = courseID
	}

	subject, number := c.SubjectCode, c.CourseNumber
	if subject == "" || number == "" {
		s, n := splitCourseCode(code)
		if subject == "" {
			subject = s
		}
		if number == "" {
			number = n
		}
	}

	source := domain.CourseSource(c.Source)
	if source == "" {
		source = domain.SourceRegistration
	}

	var grade *string
	points := c.GradePoints
	if c.Grade != nil && strings.TrimSpace(*c.Grade) != "" {
		g := strings.ToUpper(strings.TrimSpace(*c.Grade))
		grade = &g
		if points == nil {
			if p, ok := domain.StandardGradeScale.Points(g); ok {
				points = &p
			}
		}
	}

	title := c.Title
	if title == "" {
		title = code
	}

	return domain.StudentCourse{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		CourseID:     courseID,
		CourseCode:   code,
		Title:        title,
		SubjectCode:  strings.ToUpper(subject),
		CourseNumber: number,
		Credits:      c.Credits,
		Grade:        grade,
		GradePoints:  points,
		Status:       domain.CourseStatus(c.Status),
		Source:       source,
		TermID:       c.TermID,
		Attributes:   c.Attributes,
	}
}

// splitCourseCode splits "CS 101" or "CS101" into subject and number.
func splitCourseCode(code string) (string, string) {
	if subject, number, ok := strings.Cut(code, " "); ok {
		return strings.TrimSpace(subject), strings.TrimSpace(number)
	}
	for i, r := range code {
		if r >= '0' && r <= '9' {
			return code[:i], code[i:]
		}
	}
	return code, ""
}

// ConvertProgramDefinition transforms a validated ProgramDefinitionImport
// into domain objects with fresh IDs.
func ConvertProgramDefinition(schema *ProgramDefinitionImport) *ProgramDefinition {
	program := &domain.Program{
		ID:                   uuid.New().String(),
		Code:                 strings.ToUpper(strings.TrimSpace(schema.Program.Code)),
		Name:                 schema.Program.Name,
		TotalCreditsRequired: schema.Program.TotalCreditsRequired,
		OverallGPARequired:   schema.Program.OverallGPARequired,
		MajorGPARequired:     schema.Program.MajorGPARequired,
	}

	reqs := make([]domain.DegreeRequirement, 0, len(schema.Requirements))
	for i, r := range schema.Requirements {
		req := domain.DegreeRequirement{
			ID:             uuid.New().String(),
			ProgramID:      program.ID,
			Name:           strings.TrimSpace(r.Name),
			Category:       r.Category,
			DisplayOrder:   domain.FirstNonNil(i+1, r.DisplayOrder),
			MinimumCredits: r.MinimumCredits,
			MinimumCourses: r.MinimumCourses,
			MinimumGPA:     r.MinimumGPA,
			AllowSharing:   r.AllowSharing,
		}
		for _, c := range r.Courses {
			code := c.CourseCode
			if code == "" {
				code = c.CourseID
			}
			req.Courses = append(req.Courses, domain.RequirementCourse{
				CourseID:     strings.TrimSpace(c.CourseID),
				CourseCode:   code,
				IsRequired:   domain.FirstNonNil(true, c.IsRequired),
				MinimumGrade: upperPtr(c.MinimumGrade),
			})
		}
		for _, g := range r.Groups {
			group := domain.RequirementCourseGroup{
				ID:             uuid.New().String(),
				Name:           g.Name,
				MinimumCredits: g.MinimumCredits,
				MinimumCourses: g.MinimumCourses,
				MinimumGrade:   upperPtr(g.MinimumGrade),
				CourseIDs:      g.CourseIDs,
			}
			if g.Rule != nil {
				rule := toRule(g.Rule)
				group.Rule = &rule
			}
			req.Groups = append(req.Groups, group)
		}
		reqs = append(reqs, req)
	}

	return &ProgramDefinition{Program: program, Requirements: reqs}
}

func toRule(r *RuleImport) domain.CourseSelectionRule {
	subjects := make([]string, 0, len(r.SubjectCodes))
	for _, s := range r.SubjectCodes {
		subjects = append(subjects, strings.ToUpper(strings.TrimSpace(s)))
	}
	if len(subjects) == 0 {
		subjects = nil
	}
	return domain.CourseSelectionRule{
		CourseIDs:        r.CourseIDs,
		SubjectCodes:     subjects,
		MinLevel:         r.MinLevel,
		MaxLevel:         r.MaxLevel,
		Attributes:       r.Attributes,
		ExcludeCourseIDs: r.ExcludeCourseIDs,
	}
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	u := strings.ToUpper(strings.TrimSpace(*s))
	return &u
}
