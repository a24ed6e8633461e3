// Package view derives the ordered list of tasks shown for a selected day.
package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"planner/internal/calendar"
	"planner/internal/task"
)

// DateField selects which task timestamp is matched against the selected day.
type DateField int

const (
	FieldDueDate DateField = iota
	FieldCreatedAt
)

func (f DateField) String() string {
	switch f {
	case FieldCreatedAt:
		return "created"
	default:
		return "due"
	}
}

func ParseDateField(v string) (DateField, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "due", "due_date", "duedate":
		return FieldDueDate, nil
	case "created", "created_at", "createdat":
		return FieldCreatedAt, nil
	default:
		return FieldDueDate, fmt.Errorf("invalid date field %q (valid: due, created)", v)
	}
}

// State is the owned, non-persisted view selection. An empty CategoryID
// means no category filter.
type State struct {
	SelectedDate time.Time
	Field        DateField
	CategoryID   string
}

// Rank orders priorities ascending: crucial, high, normal, optional.
// Anything else ranks as normal.
func Rank(p task.Priority) int {
	switch p {
	case task.PriorityCrucial:
		return 0
	case task.PriorityHigh:
		return 1
	case task.PriorityOptional:
		return 3
	default:
		return 2
	}
}

// ComparisonTime is the timestamp matched against the selected day: the
// due date when filtering by due date and one is set, otherwise createdAt.
func ComparisonTime(t task.Task, field DateField) time.Time {
	if field == FieldDueDate && t.HasDueDate() {
		return *t.DueDate
	}
	return t.CreatedAt
}

// Derive filters tasks to the selected day and category, then stable-sorts
// them by priority rank. The input slice is not modified.
func Derive(tasks []task.Task, st State) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !calendar.SameDay(ComparisonTime(t, st.Field), st.SelectedDate) {
			continue
		}
		if st.CategoryID != "" && t.Category != st.CategoryID {
			continue
		}
		out = append(out, t.Clone())
	}
	slices.SortStableFunc(out, func(a, b task.Task) int {
		return Rank(a.Priority) - Rank(b.Priority)
	})
	return out
}
