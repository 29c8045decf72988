package graduation

import (
	"testing"

	"github.com/alexanderramin/provost/internal/domain"
	"github.com/alexanderramin/provost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func honorsConfig() domain.LatinHonorsConfig {
	return domain.LatinHonorsConfig{
		CumLaudeThreshold:              3.5,
		MagnaCumLaudeThreshold:         3.7,
		SummaCumLaudeThreshold:         3.9,
		MinimumTotalCredits:            60,
		MinimumInstitutionalCredits:    45,
		IntegrityViolationDisqualifies: true,
	}
}

func TestCalculateLatinHonors_Designations(t *testing.T) {
	tests := []struct {
		gpa      float64
		expected domain.HonorsDesignation
	}{
		{3.95, domain.HonorsSummaCumLaude},
		{3.9, domain.HonorsSummaCumLaude},
		{3.75, domain.HonorsMagnaCumLaude},
		{3.5, domain.HonorsCumLaude},
		{3.49, domain.HonorsNone},
	}
	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			result := CalculateLatinHonors(LatinHonorsInput{
				CumulativeGPA:        testutil.FloatPtr(tt.gpa),
				TotalCredits:         120,
				InstitutionalCredits: 90,
			}, honorsConfig())

			assert.Equal(t, tt.expected, result.Designation)
			assert.Equal(t, tt.expected != domain.HonorsNone, result.Qualified)
			assert.Equal(t, BasisCumulative, result.GPABasis)
		})
	}
}

func TestCalculateLatinHonors_IntegrityViolation(t *testing.T) {
	input := LatinHonorsInput{
		CumulativeGPA:              testutil.FloatPtr(4.0),
		TotalCredits:               120,
		InstitutionalCredits:       120,
		AcademicIntegrityViolation: true,
	}

	result := CalculateLatinHonors(input, honorsConfig())
	assert.Equal(t, domain.HonorsNone, result.Designation)
	assert.Contains(t, result.Reason, "integrity")

	cfg := honorsConfig()
	cfg.IntegrityViolationDisqualifies = false
	assert.Equal(t, domain.HonorsSummaCumLaude, CalculateLatinHonors(input, cfg).Designation)
}

func TestCalculateLatinHonors_CreditFloors(t *testing.T) {
	total := CalculateLatinHonors(LatinHonorsInput{
		CumulativeGPA:        testutil.FloatPtr(3.95),
		TotalCredits:         59,
		InstitutionalCredits: 59,
	}, honorsConfig())
	assert.Equal(t, domain.HonorsNone, total.Designation)
	assert.Contains(t, total.Reason, "total credits")

	residency := CalculateLatinHonors(LatinHonorsInput{
		CumulativeGPA:        testutil.FloatPtr(3.95),
		TotalCredits:         120,
		InstitutionalCredits: 30,
	}, honorsConfig())
	assert.Equal(t, domain.HonorsNone, residency.Designation)
	assert.Contains(t, residency.Reason, "institutional credits")
}

func TestCalculateLatinHonors_InstitutionalGPA(t *testing.T) {
	cfg := honorsConfig()
	cfg.UseInstitutionalGPA = true
	input := LatinHonorsInput{
		CumulativeGPA:        testutil.FloatPtr(3.92),
		InstitutionalGPA:     testutil.FloatPtr(3.6),
		TotalCredits:         120,
		InstitutionalCredits: 60,
	}

	result := CalculateLatinHonors(input, cfg)
	assert.Equal(t, domain.HonorsCumLaude, result.Designation)
	assert.Equal(t, BasisInstitutional, result.GPABasis)
	require.NotNil(t, result.GPA)
	assert.Equal(t, 3.6, *result.GPA)

	input.InstitutionalGPA = nil
	missing := CalculateLatinHonors(input, cfg)
	assert.Equal(t, domain.HonorsNone, missing.Designation)
	assert.Equal(t, "No institutional GPA on record", missing.Reason)
}

func TestCalculateLatinHonors_ZeroThresholdsUseDefaults(t *testing.T) {
	result := CalculateLatinHonors(LatinHonorsInput{
		CumulativeGPA: testutil.FloatPtr(3.0),
		TotalCredits:  120,
	}, domain.LatinHonorsConfig{})

	assert.Equal(t, domain.HonorsNone, result.Designation)
}
