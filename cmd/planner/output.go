package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"planner/internal/task"
)

type resolveFunc func(id string) (task.Category, bool)

func formatDates(dates []time.Time) string {
	var sb strings.Builder
	for _, d := range dates {
		sb.WriteString(d.Format("2006-01-02 Mon"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTaskList(tasks []task.Task, resolve resolveFunc) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}
	var sb strings.Builder
	for _, t := range tasks {
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		sb.WriteString(fmt.Sprintf("%s %-8s %s %s", checkbox, priorityLabel(t.Priority), t.ID, t.Title))
		if t.Category != "" {
			sb.WriteString(" #" + categoryName(t.Category, resolve))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTask(t task.Task, resolve resolveFunc) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", t.ID, t.Title))
	sb.WriteString(fmt.Sprintf("  Status:   %s\n", humanDone(t.Completed)))
	sb.WriteString(fmt.Sprintf("  Priority: %s\n", priorityLabel(t.Priority)))
	sb.WriteString(fmt.Sprintf("  Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04")))
	if t.DueDate != nil {
		sb.WriteString(fmt.Sprintf("  Due:      %s\n", t.DueDate.Format(dateLayout)))
	}
	if t.Category != "" {
		sb.WriteString(fmt.Sprintf("  Category: %s\n", categoryName(t.Category, resolve)))
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatCategories(cats []task.Category) string {
	if len(cats) == 0 {
		return "No categories.\n"
	}
	var sb strings.Builder
	for _, c := range cats {
		sb.WriteString(fmt.Sprintf("%-12s %s", c.ID, c.Name))
		if c.Color != "" {
			sb.WriteString(" (" + c.Color + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func categoryName(id string, resolve resolveFunc) string {
	if resolve != nil {
		if c, ok := resolve(id); ok && c.Name != "" {
			return c.Name
		}
	}
	return id
}

func priorityLabel(p task.Priority) string {
	if p == "" {
		return string(task.PriorityNormal)
	}
	return string(p)
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}

func alwaysConfirm(context.Context, task.Task) (bool, error) {
	return true, nil
}
