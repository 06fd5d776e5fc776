package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow/core/internal/client"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

const requestTimeout = 10 * time.Second

// Currently active mode
type mode int

const (
	modeList mode = iota
	modeForm
)

var filterCycle = []client.FilterStatus{
	client.FilterAll,
	client.FilterPending,
	client.FilterCompleted,
}

var sortCycle = []client.SortBy{
	client.SortByDueDate,
	client.SortByPriority,
	client.SortByCreatedAt,
}

var sortLabels = map[client.SortBy]string{
	client.SortByDueDate:   "Due Date",
	client.SortByPriority:  "Priority",
	client.SortByCreatedAt: "Newest First",
}

// Messages from gateway commands.
type loadedMsg struct{ err error }

type mutatedMsg struct {
	notice string
	err    error
}

// App is the terminal frontend: a task list over the view model's
// projection plus an add-task form.
type App struct {
	vm     *client.ViewModel
	styles *Styles

	mode   mode
	form   taskForm
	rows   []entities.Task
	cursor int
	notice string
	errMsg string

	width  int
	height int

	loading bool
}

// NewApp creates a new application over the given view model.
func NewApp(vm *client.ViewModel) *App {
	return &App{
		vm:      vm,
		styles:  NewStyles(),
		loading: true,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadCmd()
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loadedMsg{err: a.vm.Load(ctx)}
	}
}

func (a *App) addCmd(req ports.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := a.vm.Add(ctx, req); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{notice: "Task added"}
	}
}

func (a *App) toggleCmd(task entities.Task) tea.Cmd {
	next := task.Status.Toggle()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := a.vm.UpdateStatus(ctx, task.ID, next); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{notice: fmt.Sprintf("Task marked as %s", next)}
	}
}

func (a *App) deleteCmd(task entities.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := a.vm.Delete(ctx, task.ID); err != nil {
			return mutatedMsg{err: err}
		}
		return mutatedMsg{notice: "Task deleted"}
	}
}

func (a *App) refresh() {
	a.rows = a.vm.Tasks()
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loadedMsg:
		a.loading = false
		if msg.err != nil {
			// Keep whatever we last showed; surface the failure only.
			a.errMsg = "Failed to load tasks"
			return a, nil
		}
		a.errMsg = ""
		a.refresh()
		return a, nil

	case mutatedMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.notice = msg.notice
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeForm {
			return a.updateForm(msg)
		}
		return a.updateList(msg)
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.notice = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "a", "n":
		a.mode = modeForm
		a.form = newTaskForm(a.styles)
	case " ", "enter":
		if a.cursor < len(a.rows) {
			return a, a.toggleCmd(a.rows[a.cursor])
		}
	case "d", "x":
		if a.cursor < len(a.rows) {
			return a, a.deleteCmd(a.rows[a.cursor])
		}
	case "f":
		a.vm.SetFilter(nextOf(filterCycle, a.vm.Filter()))
		a.refresh()
	case "s":
		a.vm.SetSortBy(nextOf(sortCycle, a.vm.SortKey()))
		a.refresh()
	case "r":
		a.loading = true
		return a, a.loadCmd()
	}

	return a, nil
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeList
		return a, nil
	case "tab", "down":
		a.form.focusField((a.form.focusIdx + 1) % fieldCount)
		return a, nil
	case "shift+tab", "up":
		a.form.focusField((a.form.focusIdx + fieldCount - 1) % fieldCount)
		return a, nil
	case "enter":
		req, ok := a.form.validate()
		if !ok {
			return a, nil
		}
		a.mode = modeList
		return a, a.addCmd(req)
	}

	return a, a.form.update(msg)
}

func nextOf[T comparable](cycle []T, current T) T {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (a *App) View() string {
	if a.mode == modeForm {
		return a.form.view()
	}

	s := a.styles
	var b strings.Builder

	header := fmt.Sprintf("TaskFlow — %s Tasks (%d)", a.vm.Filter(), len(a.rows))
	b.WriteString(s.Title.Render(header))
	b.WriteString(s.Dim.Render(fmt.Sprintf("  sort: %s", sortLabels[a.vm.SortKey()])))
	b.WriteString("\n\n")

	switch {
	case a.loading:
		b.WriteString(s.Dim.Render("Loading tasks...") + "\n")
	case len(a.rows) == 0:
		b.WriteString(s.Dim.Render("No tasks. Press 'a' to add one.") + "\n")
	default:
		for i, task := range a.rows {
			b.WriteString(a.renderRow(task, i == a.cursor) + "\n")
		}
	}

	b.WriteString("\n")
	if a.errMsg != "" {
		b.WriteString(s.Error.Render(a.errMsg) + "\n")
	} else if a.notice != "" {
		b.WriteString(s.Notice.Render(a.notice) + "\n")
	}

	b.WriteString(s.Help.Render("a: add • space: toggle • d: delete • f: filter • s: sort • r: reload • q: quit"))

	return b.String()
}

func (a *App) renderRow(task entities.Task, selected bool) string {
	s := a.styles

	check := "[ ]"
	if task.Status == entities.StatusCompleted {
		check = "[x]"
	}

	var prio string
	switch task.Priority {
	case entities.PriorityHigh:
		prio = s.High.Render("●")
	case entities.PriorityMedium:
		prio = s.Medium.Render("●")
	default:
		prio = s.Low.Render("●")
	}

	title := task.Title
	if task.Status == entities.StatusCompleted {
		title = s.Completed.Render(title)
	}

	due := s.Dim.Render(task.DueDate.Format("2006-01-02"))
	if task.IsOverdue() {
		due = s.High.Render(task.DueDate.Format("2006-01-02") + " (overdue)")
	}

	row := fmt.Sprintf("%s %s %s  %s", check, prio, title, due)
	if selected {
		row = s.Selected.Render("> " + row)
	} else {
		row = "  " + row
	}

	if task.Description != "" {
		row += "\n" + s.Dim.Render("      "+task.Description)
	}
	return row
}
