package audit

import "github.com/alexanderramin/provost/internal/domain"

// UsageLedger tracks which requirements claimed each student course during a
// single audit. A course may be claimed by more than one requirement only if
// every claiming requirement allows sharing.
type UsageLedger struct {
	claims  map[string][]string
	sharing map[string]bool
}

func NewUsageLedger() *UsageLedger {
	return &UsageLedger{
		claims:  make(map[string][]string),
		sharing: make(map[string]bool),
	}
}

// CanUse reports whether req may claim the student course.
func (l *UsageLedger) CanUse(studentCourseID string, req domain.DegreeRequirement) bool {
	claimants := l.claims[studentCourseID]
	if len(claimants) == 0 {
		return true
	}
	if !req.AllowSharing {
		return false
	}
	for _, reqID := range claimants {
		if reqID == req.ID || !l.sharing[reqID] {
			return false
		}
	}
	return true
}

// Claim binds the student course to req. Callers check CanUse first.
func (l *UsageLedger) Claim(studentCourseID string, req domain.DegreeRequirement) {
	l.claims[studentCourseID] = append(l.claims[studentCourseID], req.ID)
	l.sharing[req.ID] = req.AllowSharing
}

// ClaimedBy returns the requirement ids holding the student course, in claim order.
func (l *UsageLedger) ClaimedBy(studentCourseID string) []string {
	claimants := l.claims[studentCourseID]
	if len(claimants) == 0 {
		return nil
	}
	out := make([]string, len(claimants))
	copy(out, claimants)
	return out
}

// IsClaimed reports whether any requirement holds the student course.
func (l *UsageLedger) IsClaimed(studentCourseID string) bool {
	return len(l.claims[studentCourseID]) > 0
}
