package domain

// Program is a degree program and its graduation-level floors.
type Program struct {
	ID                   string   `json:"id"`
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	TotalCreditsRequired float64  `json:"total_credits_required"`
	OverallGPARequired   *float64 `json:"overall_gpa_required,omitempty"`
	MajorGPARequired     *float64 `json:"major_gpa_required,omitempty"`
}

// DegreeRequirement is a named bucket of a program's graduation requirements.
type DegreeRequirement struct {
	ID             string                   `json:"id"`
	ProgramID      string                   `json:"program_id,omitempty"`
	Name           string                   `json:"name"`
	Category       string                   `json:"category"`
	DisplayOrder   int                      `json:"display_order"`
	MinimumCredits *float64                 `json:"minimum_credits,omitempty"`
	MinimumCourses *int                     `json:"minimum_courses,omitempty"`
	MinimumGPA     *float64                 `json:"minimum_gpa,omitempty"`
	AllowSharing   bool                     `json:"allow_sharing"`
	Courses        []RequirementCourse      `json:"courses,omitempty"`
	Groups         []RequirementCourseGroup `json:"groups,omitempty"`
}

// RequirementCourse is an explicitly named course inside a requirement.
type RequirementCourse struct {
	CourseID     string  `json:"course_id"`
	CourseCode   string  `json:"course_code,omitempty"`
	IsRequired   bool    `json:"is_required"`
	MinimumGrade *string `json:"minimum_grade,omitempty"`
}

// RequirementCourseGroup is a flexible bucket satisfied by any mix of
// listed or rule-selected courses.
type RequirementCourseGroup struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	MinimumCredits *float64             `json:"minimum_credits,omitempty"`
	MinimumCourses *int                 `json:"minimum_courses,omitempty"`
	MinimumGrade   *string              `json:"minimum_grade,omitempty"`
	CourseIDs      []string             `json:"course_ids,omitempty"`
	Rule           *CourseSelectionRule `json:"rule,omitempty"`
}

// CourseSelectionRule selects courses by attribute. Every populated
// criterion must match; empty criteria are ignored.
type CourseSelectionRule struct {
	CourseIDs        []string `json:"course_ids,omitempty"`
	SubjectCodes     []string `json:"subject_codes,omitempty"`
	MinLevel         *int     `json:"min_level,omitempty"`
	MaxLevel         *int     `json:"max_level,omitempty"`
	Attributes       []string `json:"attributes,omitempty"`
	ExcludeCourseIDs []string `json:"exclude_course_ids,omitempty"`
}

// IsEmpty reports whether the rule has no selection criteria at all.
// An empty rule selects nothing.
func (r CourseSelectionRule) IsEmpty() bool {
	return len(r.CourseIDs) == 0 && len(r.SubjectCodes) == 0 &&
		r.MinLevel == nil && r.MaxLevel == nil && len(r.Attributes) == 0
}
