package domain

// StudentCourse is one academic attempt on a student's record.
// Evaluators treat it as immutable input.
type StudentCourse struct {
	ID           string       `json:"id"`
	StudentID    string       `json:"student_id,omitempty"`
	CourseID     string       `json:"course_id"`
	CourseCode   string       `json:"course_code"`
	Title        string       `json:"title"`
	SubjectCode  string       `json:"subject_code"`
	CourseNumber string       `json:"course_number"`
	Credits      float64      `json:"credits"`
	Grade        *string      `json:"grade,omitempty"`
	GradePoints  *float64     `json:"grade_points,omitempty"`
	Status       CourseStatus `json:"status"`
	Source       CourseSource `json:"source"`
	TermID       string       `json:"term_id,omitempty"`
	Attributes   []string     `json:"attributes,omitempty"`
}

// SafeCredits returns the attempt's credits clamped at zero.
func (c StudentCourse) SafeCredits() float64 {
	if c.Credits < 0 {
		return 0
	}
	return c.Credits
}

// IsActive reports whether the attempt can count toward requirements
// (completed or currently in progress).
func (c StudentCourse) IsActive() bool {
	return c.Status == CourseCompleted || c.Status == CourseInProgress
}

// HasAttribute reports whether the attempt carries the given tag.
func (c StudentCourse) HasAttribute(tag string) bool {
	for _, a := range c.Attributes {
		if a == tag {
			return true
		}
	}
	return false
}

// GradeString returns the grade or "" when none is recorded.
func (c StudentCourse) GradeString() string {
	if c.Grade == nil {
		return ""
	}
	return *c.Grade
}
