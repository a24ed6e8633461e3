package engine

import (
	"context"

	"planner/internal/task"
)

// Confirmer decides whether a task may be deleted.
type Confirmer interface {
	ConfirmDeletion(ctx context.Context, t task.Task) (bool, error)
}

type ConfirmFunc func(ctx context.Context, t task.Task) (bool, error)

func (f ConfirmFunc) ConfirmDeletion(ctx context.Context, t task.Task) (bool, error) {
	return f(ctx, t)
}

// ConfirmAndDelete asks c about the task with id and deletes it only on an
// affirmative answer. It reports whether the task was removed.
func ConfirmAndDelete(ctx context.Context, e *Engine, id string, c Confirmer) (bool, error) {
	t, ok := e.Task(id)
	if !ok {
		return false, nil
	}
	yes, err := c.ConfirmDeletion(ctx, t)
	if err != nil || !yes {
		return false, err
	}
	return e.DeleteTask(ctx, id)
}

// Task returns the task with id from the full collection.
func (e *Engine) Task(id string) (task.Task, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if i := e.indexLocked(id); i >= 0 {
		return e.tasks[i].Clone(), true
	}
	return task.Task{}, false
}
