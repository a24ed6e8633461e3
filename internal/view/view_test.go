package view

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner/internal/calendar"
	"planner/internal/task"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func ids(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDeriveCreatedAtSortsByPriority(t *testing.T) {
	tasks := []task.Task{
		{ID: "1", Priority: task.PriorityHigh, CreatedAt: day(2024, 3, 10, 9)},
		{ID: "2", Priority: task.PriorityCrucial, CreatedAt: day(2024, 3, 10, 17)},
		{ID: "3", Priority: task.PriorityNormal, CreatedAt: day(2024, 3, 11, 9)},
	}

	got := Derive(tasks, State{SelectedDate: day(2024, 3, 10, 0), Field: FieldCreatedAt})
	assert.Equal(t, []string{"2", "1"}, ids(got))
}

func TestDeriveDueDateFallsBackToCreatedAt(t *testing.T) {
	tasks := []task.Task{
		{ID: "no-due", CreatedAt: day(2024, 3, 10, 8)},
	}

	got := Derive(tasks, State{SelectedDate: day(2024, 3, 10, 12), Field: FieldDueDate})
	assert.Equal(t, []string{"no-due"}, ids(got))
}

func TestDeriveDueDateUsesDueDay(t *testing.T) {
	due := day(2024, 3, 12, 23)
	tasks := []task.Task{
		{ID: "due", CreatedAt: day(2024, 3, 10, 8), DueDate: &due},
	}

	assert.Empty(t, Derive(tasks, State{SelectedDate: day(2024, 3, 10, 0), Field: FieldDueDate}))
	assert.Equal(t, []string{"due"}, ids(Derive(tasks, State{SelectedDate: day(2024, 3, 12, 0), Field: FieldDueDate})))
	assert.Equal(t, []string{"due"}, ids(Derive(tasks, State{SelectedDate: day(2024, 3, 10, 0), Field: FieldCreatedAt})))
}

func TestDeriveCategoryFilter(t *testing.T) {
	tasks := []task.Task{
		{ID: "w", Category: "work", CreatedAt: day(2024, 3, 10, 8)},
		{ID: "h", Category: "home", CreatedAt: day(2024, 3, 10, 8)},
		{ID: "none", CreatedAt: day(2024, 3, 10, 8)},
	}
	st := State{SelectedDate: day(2024, 3, 10, 0), Field: FieldCreatedAt}

	assert.Equal(t, []string{"w", "h", "none"}, ids(Derive(tasks, st)))

	st.CategoryID = "work"
	assert.Equal(t, []string{"w"}, ids(Derive(tasks, st)))

	st.CategoryID = "missing"
	assert.Empty(t, Derive(tasks, st))
}

func TestDeriveUnknownPriorityRanksNormal(t *testing.T) {
	tasks := []task.Task{
		{ID: "opt", Priority: task.PriorityOptional, CreatedAt: day(2024, 3, 10, 1)},
		{ID: "low", Priority: task.PriorityLow, CreatedAt: day(2024, 3, 10, 1)},
		{ID: "blank", CreatedAt: day(2024, 3, 10, 1)},
		{ID: "normal", Priority: task.PriorityNormal, CreatedAt: day(2024, 3, 10, 1)},
		{ID: "crucial", Priority: task.PriorityCrucial, CreatedAt: day(2024, 3, 10, 1)},
	}

	got := Derive(tasks, State{SelectedDate: day(2024, 3, 10, 0), Field: FieldCreatedAt})
	assert.Equal(t, []string{"crucial", "low", "blank", "normal", "opt"}, ids(got))
}

func TestDeriveDoesNotModifyInput(t *testing.T) {
	due := day(2024, 3, 10, 5)
	tasks := []task.Task{
		{ID: "a", Priority: task.PriorityOptional, CreatedAt: day(2024, 3, 10, 1), DueDate: &due},
		{ID: "b", Priority: task.PriorityCrucial, CreatedAt: day(2024, 3, 10, 1)},
	}

	got := Derive(tasks, State{SelectedDate: day(2024, 3, 10, 0)})
	require.Len(t, got, 2)
	*got[1].DueDate = day(2030, 1, 1, 0)

	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, due, *tasks[0].DueDate)
}

func TestDeriveEmpty(t *testing.T) {
	got := Derive(nil, State{SelectedDate: day(2024, 3, 10, 0)})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func randomTasks(r *rand.Rand, n int) []task.Task {
	prios := []task.Priority{task.PriorityCrucial, task.PriorityHigh, task.PriorityNormal, task.PriorityOptional, task.PriorityLow, ""}
	cats := []string{"", "work", "home"}
	out := make([]task.Task, n)
	for i := range out {
		created := day(2024, 3, 8+r.Intn(5), r.Intn(24))
		out[i] = task.Task{
			ID:        string(rune('a'+i%26)) + string(rune('0'+i/26)),
			CreatedAt: created,
			Priority:  prios[r.Intn(len(prios))],
			Category:  cats[r.Intn(len(cats))],
		}
		if r.Intn(2) == 0 {
			due := day(2024, 3, 8+r.Intn(5), r.Intn(24))
			out[i].DueDate = &due
		}
	}
	return out
}

func TestDeriveProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		tasks := randomTasks(r, 40)
		selected := day(2024, 3, 8+r.Intn(5), 0)
		field := DateField(r.Intn(2))
		cat := []string{"", "work", "home"}[r.Intn(3)]
		st := State{SelectedDate: selected, Field: field, CategoryID: cat}

		got := Derive(tasks, st)

		// idempotent
		assert.Equal(t, got, Derive(tasks, st))

		inputPos := map[string]int{}
		want := 0
		for i, tk := range tasks {
			inputPos[tk.ID] = i
			if calendar.SameDay(ComparisonTime(tk, field), selected) && (cat == "" || tk.Category == cat) {
				want++
			}
		}
		require.Len(t, got, want)

		for i, tk := range got {
			assert.True(t, calendar.SameDay(ComparisonTime(tk, field), selected))
			if cat != "" {
				assert.Equal(t, cat, tk.Category)
			}
			if i == 0 {
				continue
			}
			prev := got[i-1]
			assert.LessOrEqual(t, Rank(prev.Priority), Rank(tk.Priority))
			if Rank(prev.Priority) == Rank(tk.Priority) {
				assert.Less(t, inputPos[prev.ID], inputPos[tk.ID], "stability")
			}
		}
	}
}

func TestParseDateField(t *testing.T) {
	f, err := ParseDateField("created")
	require.NoError(t, err)
	assert.Equal(t, FieldCreatedAt, f)

	f, err = ParseDateField("")
	require.NoError(t, err)
	assert.Equal(t, FieldDueDate, f)

	_, err = ParseDateField("updated")
	assert.Error(t, err)

	assert.Equal(t, "due", FieldDueDate.String())
	assert.Equal(t, "created", FieldCreatedAt.String())
}
