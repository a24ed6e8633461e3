package task

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"", PriorityNormal},
		{"crucial", PriorityCrucial},
		{"HIGH", PriorityHigh},
		{" normal ", PriorityNormal},
		{"optional", PriorityOptional},
		{"low", PriorityLow},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParsePriorityInvalid(t *testing.T) {
	_, err := ParsePriority("urgent")
	require.Error(t, err)

	var invalid InvalidPriorityError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "urgent", invalid.Value)
}

func TestCloneDetachesDueDate(t *testing.T) {
	due := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	orig := Task{ID: "a", DueDate: &due}

	cp := orig.Clone()
	*cp.DueDate = cp.DueDate.Add(24 * time.Hour)

	assert.Equal(t, 10, orig.DueDate.Day())
	assert.Equal(t, 11, cp.DueDate.Day())
}

func TestHasDueDate(t *testing.T) {
	assert.False(t, Task{}.HasDueDate())

	zero := time.Time{}
	assert.False(t, Task{DueDate: &zero}.HasDueDate())

	due := time.Now()
	assert.True(t, Task{DueDate: &due}.HasDueDate())
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
