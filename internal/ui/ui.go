package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"planner/internal/calendar"
	"planner/internal/config"
	"planner/internal/engine"
	"planner/internal/task"
	"planner/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

const dateStripRadius = 3

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedDay   = lipgloss.NewStyle().Bold(true).Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	crucialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	optionalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type reloadedMsg struct {
	err error
}

type mutatedMsg struct {
	op  string
	err error
}

type Model struct {
	eng    *engine.Engine
	cfg    config.Config
	now    func() time.Time
	dates  []time.Time
	day    int
	cursor int
	mode   mode
	input  textinput.Model
	prio   int
	status string

	pendingDel *task.Task
}

func New(eng *engine.Engine, cfg config.Config) Model {
	return newModel(eng, cfg, time.Now)
}

func newModel(eng *engine.Engine, cfg config.Config, now func() time.Time) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		eng:    eng,
		cfg:    cfg,
		now:    now,
		input:  ti,
		mode:   modeList,
		prio:   1,
		status: fmt.Sprintf("Press '%s' to add, space to toggle, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Delete),
	}
	m.refreshDates()
	return m
}

// Run starts the terminal UI. The engine is reloaded on start.
func Run(eng *engine.Engine, cfg config.Config) error {
	program := tea.NewProgram(New(eng, cfg))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.reloadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDelete:
			return m.updateDeleteConfirm(msg.String())
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	case reloadedMsg:
		m.refreshDates()
		if msg.err != nil {
			m.status = fmt.Sprintf("reload failed: %v", msg.err)
		} else {
			m.status = "Loaded"
		}
		m.cursor = clampCursor(m.cursor, len(m.eng.FilteredTasks()))
	case mutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		} else {
			m.status = msg.op + " saved"
		}
		m.cursor = clampCursor(m.cursor, len(m.eng.FilteredTasks()))
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	tasks := m.eng.FilteredTasks()
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(tasks))
	case m.cfg.Keys.PrevDay, "left":
		m.selectDay(m.day - 1)
	case m.cfg.Keys.NextDay, "right":
		m.selectDay(m.day + 1)
	case m.cfg.Keys.Today:
		m.refreshDates()
		if i := calendar.Index(m.dates, m.now()); i >= 0 {
			m.selectDay(i)
		}
	case m.cfg.Keys.Field:
		st := m.eng.State()
		next := view.FieldCreatedAt
		if st.Field == view.FieldCreatedAt {
			next = view.FieldDueDate
		}
		m.eng.SetDateFilterField(next)
		m.cursor = 0
		m.status = "Matching by " + next.String() + " date"
	case m.cfg.Keys.Category:
		m.cycleCategory()
		m.cursor = 0
	case m.cfg.Keys.Reload:
		m.status = "Reloading..."
		return m, m.reloadCmd()
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.prio = 1
		m.input.Focus()
		m.status = m.addPrompt()
	case m.cfg.Keys.Toggle:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[clampCursor(m.cursor, len(tasks))]
		return m, m.mutateCmd("toggle", func(ctx context.Context) error {
			_, err := m.eng.ToggleTaskCompletion(ctx, t.ID)
			return err
		})
	case m.cfg.Keys.Delete:
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[clampCursor(m.cursor, len(tasks))]
		m.mode = modeConfirmDelete
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Priority:
		m.prio = (m.prio + 1) % len(task.CreationPriorities())
		m.status = m.addPrompt()
		return m, nil
	case m.cfg.Keys.Confirm:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		st := m.eng.State()
		due := st.SelectedDate
		draft := task.Draft{
			Title:    title,
			Priority: task.CreationPriorities()[m.prio],
			Category: st.CategoryID,
			DueDate:  &due,
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, m.mutateCmd("add", func(ctx context.Context) error {
			_, err := m.eng.AddTask(ctx, draft)
			return err
		})
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.mode = modeList
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.mode = modeList
			return m, nil
		}
		id := m.pendingDel.ID
		m.mode = modeList
		m.pendingDel = nil
		return m, m.mutateCmd("delete", func(ctx context.Context) error {
			_, err := m.eng.DeleteTask(ctx, id)
			return err
		})
	default:
		return m, nil
	}
}

func (m Model) reloadCmd() tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		return reloadedMsg{err: eng.Reload(context.Background())}
	}
}

func (m Model) mutateCmd(op string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{op: op, err: fn(context.Background())}
	}
}

func (m *Model) refreshDates() {
	m.dates = m.eng.VisibleDates(m.now())
	if i := calendar.Index(m.dates, m.eng.State().SelectedDate); i >= 0 {
		m.day = i
		return
	}
	m.day = clampCursor(calendar.Index(m.dates, m.now()), len(m.dates))
	if len(m.dates) > 0 {
		m.eng.SetSelectedDate(m.dates[m.day])
	}
}

func (m *Model) selectDay(i int) {
	m.day = clampCursor(i, len(m.dates))
	if len(m.dates) == 0 {
		return
	}
	m.eng.SetSelectedDate(m.dates[m.day])
	m.cursor = 0
	m.status = m.dates[m.day].Format("Monday, January 2")
}

// cycleCategory moves the filter through "none" and each known category.
func (m *Model) cycleCategory() {
	cats := m.eng.Categories()
	current := m.eng.State().CategoryID
	next := ""
	if current == "" {
		if len(cats) > 0 {
			next = cats[0].ID
		}
	} else {
		for i, c := range cats {
			if c.ID == current && i+1 < len(cats) {
				next = cats[i+1].ID
			}
		}
	}
	m.eng.SetActiveCategory(next)
	m.status = "Category: " + m.categoryLabel(next)
}

func (m Model) categoryLabel(id string) string {
	if id == "" {
		return "all"
	}
	if c, ok := m.eng.ResolveCategory(id); ok && c.Name != "" {
		return c.Name
	}
	return id
}

func (m Model) addPrompt() string {
	return fmt.Sprintf("Add mode: type a title, %s for priority (%s), Enter to save",
		m.cfg.Keys.Priority, task.CreationPriorities()[m.prio])
}

func (m Model) View() string {
	var b strings.Builder
	st := m.eng.State()

	b.WriteString(titleStyle.Render("Planner"))
	b.WriteString("\n")
	b.WriteString(m.renderDateStrip())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("by %s date • category: %s", st.Field, m.categoryLabel(st.CategoryID))))
	b.WriteString("\n\n")

	tasks := m.eng.FilteredTasks()
	if len(tasks) == 0 {
		b.WriteString(fmt.Sprintf("Nothing for this day. Press '%s' to add one.", m.cfg.Keys.Add))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList(tasks))
	}

	b.WriteString("---\n")
	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderDateStrip() string {
	if len(m.dates) == 0 {
		return ""
	}
	lo := clampCursor(m.day-dateStripRadius, len(m.dates))
	hi := clampCursor(m.day+dateStripRadius, len(m.dates))
	parts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		label := m.dates[i].Format("Mon 02")
		if i == m.day {
			label = selectedDay.Render(label)
		}
		parts = append(parts, label)
	}
	return m.dates[m.day].Format("January 2006") + "  " + strings.Join(parts, " ")
}

func (m Model) renderTaskList(tasks []task.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, checkbox, priorityMark(t.Priority), title)
		if t.Category != "" {
			line += dimStyle.Render(" #" + m.categoryLabel(t.Category))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func priorityMark(p task.Priority) string {
	switch view.Rank(p) {
	case 0:
		return crucialStyle.Render("!!")
	case 1:
		return highStyle.Render("! ")
	case 3:
		return optionalStyle.Render("~ ")
	default:
		return "  "
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s/%s day • %s today • %s add • space toggle • %s delete • %s field • %s category • %s reload • %s quit",
		k.Up, k.Down, k.PrevDay, k.NextDay, k.Today, k.Add, k.Delete, k.Field, k.Category, k.Reload, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
