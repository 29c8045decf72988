package audit

import (
	"strings"

	"github.com/alexanderramin/provost/internal/domain"
)

// isMajorRequirement reports whether a requirement's courses count toward the
// major GPA: its category or name contains "major", case-insensitively.
//
// TODO: replace the substring match with an explicit major flag on
// DegreeRequirement once program imports carry one.
func isMajorRequirement(r domain.DegreeRequirement) bool {
	return strings.Contains(strings.ToLower(r.Category), "major") ||
		strings.Contains(strings.ToLower(r.Name), "major")
}
