package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct{ status string }

func TestBatchResult_Tally(t *testing.T) {
	b := NewBatchResult[outcome]("run-1", 4)
	b.Items[0].Result = &outcome{"good_standing"}
	b.Items[1].Error = "student stu-2: not found"
	b.Items[2].Result = &outcome{"academic_warning"}
	b.Items[3].Result = &outcome{"good_standing"}

	b.Tally(func(o *outcome) string { return o.status })

	assert.Equal(t, 3, b.Succeeded)
	assert.Equal(t, 1, b.Failed)
	assert.Equal(t, map[string]int{"good_standing": 2, "academic_warning": 1}, b.StatusCounts)
	assert.Equal(t, []string{"academic_warning", "good_standing"}, b.Statuses())
	for i, item := range b.Items {
		assert.Equal(t, i, item.Index)
	}
}

func TestBatchResult_TallyIsRepeatable(t *testing.T) {
	b := NewBatchResult[outcome]("run-2", 1)
	b.Items[0].Result = &outcome{"x"}

	b.Tally(func(o *outcome) string { return o.status })
	b.Tally(func(o *outcome) string { return o.status })

	assert.Equal(t, 1, b.Succeeded)
	assert.Equal(t, 1, b.StatusCounts["x"])
}

func TestValidationError(t *testing.T) {
	first := errors.New("student.name is required")
	second := errors.New("courses[0].credits must not be negative")

	single := NewValidationError("student record", []error{first})
	assert.Equal(t, "invalid student record: student.name is required", single.Error())

	multi := NewValidationError("student record", []error{first, second})
	assert.Contains(t, multi.Error(), "(2 errors)")
	assert.Contains(t, multi.Error(), "\n  - courses[0].credits must not be negative")
	assert.ErrorIs(t, multi, second)

	var wrapped error = multi
	var target *ValidationError
	require.ErrorAs(t, wrapped, &target)
	assert.Len(t, target.Problems, 2)
}
