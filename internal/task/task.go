package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the importance of a task. The zero value is treated as normal.
type Priority string

const (
	PriorityCrucial  Priority = "crucial"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityOptional Priority = "optional"
	// PriorityLow is offered when creating tasks; it has no rank of its own.
	PriorityLow Priority = "low"
)

type Task struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	CreatedAt   time.Time  `yaml:"created_at"`
	DueDate     *time.Time `yaml:"due_date,omitempty"`
	Priority    Priority   `yaml:"priority"`
	Category    string     `yaml:"category,omitempty"`
	Completed   bool       `yaml:"completed"`
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// Category is display metadata for a group of tasks. Color and Icon are
// passed through untouched.
type Category struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
}

// Draft holds the caller-supplied fields of a task that has not been added yet.
type Draft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Category    string
}

type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: crucial, high, normal, optional, low)", e.Value)
}

// ParsePriority accepts both the creation set and the full ranked set.
// An empty value yields PriorityNormal.
func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(v)))
	switch p {
	case "":
		return PriorityNormal, nil
	case PriorityCrucial, PriorityHigh, PriorityNormal, PriorityOptional, PriorityLow:
		return p, nil
	default:
		return "", InvalidPriorityError{Value: v}
	}
}

// CreationPriorities is the cycle offered by the add form.
func CreationPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal, PriorityLow}
}

func NewID() string {
	return uuid.NewString()
}
