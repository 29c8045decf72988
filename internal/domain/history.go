package domain

import "time"

// StandingHistoryEntry records one term's standing and the running counters
// the standing evaluator threads from term to term.
type StandingHistoryEntry struct {
	ID                        string    `json:"id,omitempty"`
	StudentID                 string    `json:"student_id,omitempty"`
	TermID                    string    `json:"term_id"`
	Standing                  Standing  `json:"standing"`
	CumulativeGPA             float64   `json:"cumulative_gpa"`
	TermGPA                   *float64  `json:"term_gpa,omitempty"`
	ConsecutiveProbationTerms int       `json:"consecutive_probation_terms"`
	TotalProbationTerms       int       `json:"total_probation_terms"`
	TotalSuspensions          int       `json:"total_suspensions"`
	Reason                    string    `json:"reason,omitempty"`
	RecordedAt                time.Time `json:"recorded_at,omitempty"`
}

// SapHistoryEntry records one SAP evaluation outcome.
type SapHistoryEntry struct {
	ID               string    `json:"id,omitempty"`
	StudentID        string    `json:"student_id"`
	TermID           string    `json:"term_id"`
	Status           SapStatus `json:"status"`
	EligibleForAid   bool      `json:"eligible_for_aid"`
	GPAMet           bool      `json:"gpa_met"`
	PaceMet          bool      `json:"pace_met"`
	TimeframeMet     bool      `json:"timeframe_met"`
	AttemptedCredits float64   `json:"attempted_credits"`
	EarnedCredits    float64   `json:"earned_credits"`
	CumulativeGPA    *float64  `json:"cumulative_gpa,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	RecordedAt       time.Time `json:"recorded_at"`
}
