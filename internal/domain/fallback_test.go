package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstNonNil(t *testing.T) {
	zero, two := 0.0, 2.0

	assert.Equal(t, 1.5, FirstNonNil(1.5))
	assert.Equal(t, 1.5, FirstNonNil(1.5, nil, nil))
	assert.Equal(t, 2.0, FirstNonNil(1.5, nil, &two))
	assert.Equal(t, 0.0, FirstNonNil(1.5, &zero, &two), "an explicit zero wins over the fallback")
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr())
}

func TestStudentCourse_Helpers(t *testing.T) {
	grade := "A"
	c := StudentCourse{Credits: -2, Grade: &grade, Status: CourseInProgress, Attributes: []string{"WI"}}

	assert.Equal(t, 0.0, c.SafeCredits())
	assert.True(t, c.IsActive())
	assert.True(t, c.HasAttribute("WI"))
	assert.False(t, c.HasAttribute("QR"))
	assert.Equal(t, "A", c.GradeString())

	c.Status = CourseWithdrawn
	c.Grade = nil
	assert.False(t, c.IsActive())
	assert.Equal(t, "", c.GradeString())
}
