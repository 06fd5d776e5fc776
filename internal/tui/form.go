package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// Form fields, in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldCount
)

var priorityCycle = []entities.Priority{
	entities.PriorityMedium,
	entities.PriorityHigh,
	entities.PriorityLow,
}

// taskForm collects a create payload. Submission is blocked until title
// and due date are both non-empty after trimming.
type taskForm struct {
	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	priorityIdx int
	focusIdx    int
	errs        map[int]string
	styles      *Styles
}

func newTaskForm(styles *Styles) taskForm {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = 200
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description (optional)"
	description.CharLimit = 1000

	dueDate := textinput.New()
	dueDate.Placeholder = "YYYY-MM-DD"
	dueDate.CharLimit = 10

	return taskForm{
		title:       title,
		description: description,
		dueDate:     dueDate,
		errs:        map[int]string{},
		styles:      styles,
	}
}

func (f *taskForm) priority() entities.Priority {
	return priorityCycle[f.priorityIdx]
}

func (f *taskForm) focusField(idx int) {
	f.focusIdx = idx
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch idx {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	}
}

// validate checks the form and records per-field errors. It returns the
// create payload when the form is submittable.
func (f *taskForm) validate() (ports.CreateTaskRequest, bool) {
	f.errs = map[int]string{}

	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.errs[fieldTitle] = "Title is required"
	}

	var due entities.Date
	raw := strings.TrimSpace(f.dueDate.Value())
	if raw == "" {
		f.errs[fieldDueDate] = "Due date is required"
	} else {
		parsed, err := entities.ParseDate(raw)
		if err != nil {
			f.errs[fieldDueDate] = "Use YYYY-MM-DD"
		} else {
			due = parsed
		}
	}

	if len(f.errs) > 0 {
		return ports.CreateTaskRequest{}, false
	}

	return ports.CreateTaskRequest{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
		Priority:    f.priority(),
		DueDate:     due,
		Status:      entities.StatusPending,
	}, true
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focusIdx {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	case fieldPriority:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "left", "h":
				f.priorityIdx = (f.priorityIdx + len(priorityCycle) - 1) % len(priorityCycle)
			case "right", "l", " ":
				f.priorityIdx = (f.priorityIdx + 1) % len(priorityCycle)
			}
		}
	}
	return cmd
}

func (f *taskForm) view() string {
	s := f.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Add New Task") + "\n\n")

	b.WriteString(s.Label.Render("Title") + "\n")
	b.WriteString(f.title.View() + "\n")
	if msg, ok := f.errs[fieldTitle]; ok {
		b.WriteString(s.Error.Render(msg) + "\n")
	}

	b.WriteString("\n" + s.Label.Render("Description") + "\n")
	b.WriteString(f.description.View() + "\n")

	b.WriteString("\n" + s.Label.Render("Due Date") + "\n")
	b.WriteString(f.dueDate.View() + "\n")
	if msg, ok := f.errs[fieldDueDate]; ok {
		b.WriteString(s.Error.Render(msg) + "\n")
	}

	b.WriteString("\n" + s.Label.Render("Priority") + "  ")
	for i, p := range priorityCycle {
		label := string(p)
		if i == f.priorityIdx {
			label = s.Selected.Render(" " + label + " ")
		} else {
			label = s.Dim.Render(" " + label + " ")
		}
		b.WriteString(label)
	}
	b.WriteString("\n\n")
	b.WriteString(s.Help.Render("tab: next field • enter: save • esc: cancel"))

	return s.FormBox.Render(b.String())
}
