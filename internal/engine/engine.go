// Package engine owns the task collection and the derived view for the
// selected day. Mutations write through to a Store immediately.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"planner/internal/calendar"
	"planner/internal/category"
	"planner/internal/logger"
	"planner/internal/task"
	"planner/internal/view"
)

// Store loads and saves whole collections.
type Store interface {
	LoadTasks(ctx context.Context) ([]task.Task, error)
	SaveTasks(ctx context.Context, tasks []task.Task) error
	LoadCategories(ctx context.Context) ([]task.Category, error)
	SaveCategories(ctx context.Context, cats []task.Category) error
}

type Option func(*Engine)

// WithClock overrides time.Now for creation timestamps and the initial
// selected date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

func WithDateField(f view.DateField) Option {
	return func(e *Engine) {
		e.state.Field = f
	}
}

type Engine struct {
	store Store
	now   func() time.Time
	newID func() string

	// op serializes mutations and reloads so each finishes, persistence
	// included, before the next starts.
	op sync.Mutex

	mu         sync.RWMutex
	tasks      []task.Task
	categories *category.Resolver
	state      view.State
	filtered   []task.Task
	dates      calendar.Range
	subs       []chan struct{}
}

// New returns an engine with an empty collection. Call Reload to populate it.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		now:        time.Now,
		newID:      task.NewID,
		categories: category.NewResolver(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state.SelectedDate = calendar.StartOfDay(e.now())
	e.filtered = view.Derive(nil, e.state)
	return e
}

// Reload replaces the in-memory tasks and categories with the store's
// contents. A collection that fails to load keeps its last known-good value.
func (e *Engine) Reload(ctx context.Context) error {
	e.op.Lock()
	defer e.op.Unlock()

	tasks, taskErr := e.store.LoadTasks(ctx)
	cats, catErr := e.store.LoadCategories(ctx)

	e.mu.Lock()
	if taskErr == nil {
		e.tasks = cloneTasks(tasks)
	}
	if catErr == nil {
		e.categories.Load(cats)
	}
	e.rederiveLocked()
	e.mu.Unlock()
	e.notify()

	var errs []error
	if taskErr != nil {
		logger.Error("load tasks failed", taskErr, zap.String("op", "reload"))
		errs = append(errs, loadFailure("reload tasks", taskErr))
	}
	if catErr != nil {
		logger.Error("load categories failed", catErr, zap.String("op", "reload"))
		errs = append(errs, loadFailure("reload categories", catErr))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("reloaded", zap.Int("tasks", len(tasks)), zap.Int("categories", len(cats)))
	return nil
}

// VisibleDates returns the browsable dates for ref's month. The sequence is
// cached until ref moves to another month.
func (e *Engine) VisibleDates(ref time.Time) []time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dates.Dates(ref)
}

func (e *Engine) SetSelectedDate(d time.Time) {
	e.update(func(st *view.State) {
		st.SelectedDate = calendar.StartOfDay(d)
	})
}

func (e *Engine) SetDateFilterField(f view.DateField) {
	e.update(func(st *view.State) {
		st.Field = f
	})
}

// SetActiveCategory filters the view to one category; an empty id clears it.
func (e *Engine) SetActiveCategory(id string) {
	e.update(func(st *view.State) {
		st.CategoryID = id
	})
}

func (e *Engine) ClearActiveCategory() {
	e.SetActiveCategory("")
}

func (e *Engine) State() view.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// FilteredTasks returns the most recently derived view.
func (e *Engine) FilteredTasks() []task.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneTasks(e.filtered)
}

// Tasks returns the full, unfiltered collection.
func (e *Engine) Tasks() []task.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneTasks(e.tasks)
}

func (e *Engine) Categories() []task.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.categories.All()
}

func (e *Engine) ResolveCategory(id string) (task.Category, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.categories.Resolve(id)
}

// Subscribe returns a channel that receives a value whenever the derived
// view changes. Signals coalesce; a slow reader sees at least one.
func (e *Engine) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

func (e *Engine) update(fn func(*view.State)) {
	e.mu.Lock()
	fn(&e.state)
	e.rederiveLocked()
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) rederiveLocked() {
	e.filtered = view.Derive(e.tasks, e.state)
}

func (e *Engine) notify() {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (e *Engine) indexLocked(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
