package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"planner/internal/logger"
	"planner/internal/task"
)

// AddTask appends a new task with a fresh id, the current time as its
// creation timestamp and completed unset, then saves the collection.
// On a save failure the task stays in memory and is returned with the error.
func (e *Engine) AddTask(ctx context.Context, d task.Draft) (task.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return task.Task{}, ErrEmptyTitle
	}
	prio, err := task.ParsePriority(string(d.Priority))
	if err != nil {
		return task.Task{}, err
	}

	e.op.Lock()
	defer e.op.Unlock()

	t := task.Task{
		ID:          e.newID(),
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		CreatedAt:   e.now(),
		Priority:    prio,
		Category:    d.Category,
	}
	if d.DueDate != nil {
		due := *d.DueDate
		t.DueDate = &due
	}

	snapshot := e.apply(func() {
		e.tasks = append(e.tasks, t.Clone())
	})
	if err := e.persist(ctx, "add", snapshot); err != nil {
		return t, err
	}
	logger.Info("task added", zap.String("id", t.ID), zap.String("priority", string(t.Priority)))
	return t, nil
}

// ToggleTaskCompletion flips the completed flag of the task with id. An
// unknown id is a no-op and reports false. A save failure leaves the flag
// flipped in memory.
func (e *Engine) ToggleTaskCompletion(ctx context.Context, id string) (bool, error) {
	e.op.Lock()
	defer e.op.Unlock()

	found := false
	snapshot := e.apply(func() {
		if i := e.indexLocked(id); i >= 0 {
			e.tasks[i].Completed = !e.tasks[i].Completed
			found = true
		}
	})
	if !found {
		return false, nil
	}
	if err := e.persist(ctx, "toggle", snapshot); err != nil {
		return true, err
	}
	logger.Info("task toggled", zap.String("id", id))
	return true, nil
}

// DeleteTask removes the task with id. Callers must obtain an affirmative
// confirmation first; see ConfirmAndDelete. An unknown id is a no-op.
func (e *Engine) DeleteTask(ctx context.Context, id string) (bool, error) {
	e.op.Lock()
	defer e.op.Unlock()

	found := false
	snapshot := e.apply(func() {
		if i := e.indexLocked(id); i >= 0 {
			e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
			found = true
		}
	})
	if !found {
		return false, nil
	}
	if err := e.persist(ctx, "delete", snapshot); err != nil {
		return true, err
	}
	logger.Info("task deleted", zap.String("id", id))
	return true, nil
}

// PutCategory inserts or replaces a category by id and saves the category
// collection.
func (e *Engine) PutCategory(ctx context.Context, c task.Category) error {
	e.op.Lock()
	defer e.op.Unlock()

	e.mu.Lock()
	cats := e.categories.All()
	replaced := false
	for i := range cats {
		if cats[i].ID == c.ID {
			cats[i] = c
			replaced = true
		}
	}
	if !replaced {
		cats = append(cats, c)
	}
	e.categories.Load(cats)
	e.mu.Unlock()

	if err := e.store.SaveCategories(ctx, cats); err != nil {
		logger.Error("save categories failed", err, zap.String("op", "put category"))
		return saveFailure("put category", err)
	}
	return nil
}

// apply runs fn against the collection, re-derives the view and returns a
// snapshot of the collection for persisting.
func (e *Engine) apply(fn func()) []task.Task {
	e.mu.Lock()
	fn()
	e.rederiveLocked()
	snapshot := cloneTasks(e.tasks)
	e.mu.Unlock()
	e.notify()
	return snapshot
}

func (e *Engine) persist(ctx context.Context, op string, snapshot []task.Task) error {
	if err := e.store.SaveTasks(ctx, snapshot); err != nil {
		logger.Error("save tasks failed", err, zap.String("op", op))
		return saveFailure(op, err)
	}
	return nil
}
