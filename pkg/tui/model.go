// Package tui is the interactive terminal client of the task store: a task table, a
// create form and a delete selector.
//
// Every exchange with the service follows the same fetch-then-render cycle. The list
// is fetched on start, after a successful create or delete, and when the user asks
// for a refresh. There is no background polling. Service failures are shown in the
// notice line and never end the program; a failed fetch shows an empty list.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astromechza/task-tracker/pkg/task"
)

// API is the part of the task service the client uses. *client.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, t task.Task) (task.Task, error)
	Delete(ctx context.Context, id int) (string, error)
}

// Field identifies the form control that has keyboard focus.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldDueDate
	FieldStatus
	FieldPriority
	FieldSubmit
	// FieldDelete is the delete selector. It is skipped while the list is empty.
	FieldDelete

	fieldCount
)

type noticeLevel int

const (
	noticeNone noticeLevel = iota
	noticeInfo
	noticeSuccess
	noticeWarning
	noticeError
)

type notice struct {
	level noticeLevel
	text  string
}

const (
	msgRequiredFields = "Please fill in all required fields."
	msgCreated        = "Task created successfully!"
	msgDeleted        = "Task deleted successfully!"
	msgNoTasks        = "No tasks found. Create a new task to get started!"
)

// tasksLoadedMsg carries the result of a List call.
type tasksLoadedMsg struct {
	tasks []task.Task
	err   error
}

// taskCreatedMsg carries the result of a Create call.
type taskCreatedMsg struct {
	task task.Task
	err  error
}

// taskDeletedMsg carries the result of a Delete call.
type taskDeletedMsg struct {
	id  int
	err error
}

type Option func(*Model)

// WithClock replaces time.Now as the source of "today" for the date picker.
func WithClock(now func() time.Time) Option {
	return func(model *Model) {
		model.now = now
	}
}

func WithTheme(theme Theme) Option {
	return func(model *Model) {
		model.theme = theme
	}
}

// Model is the top-level bubbletea model of the task client.
type Model struct {
	api   API
	theme Theme
	keys  KeyMap
	now   func() time.Time

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	tasks   []task.Task
	loading bool

	// Create form.
	title       textinput.Model
	description textarea.Model
	dueDate     time.Time
	statusIdx   int
	priorityIdx int

	// Index into tasks of the delete selector.
	deleteIdx int

	focus  Field
	notice notice
}

func NewModel(api API, opts ...Option) Model {
	model := Model{
		api:     api,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		now:     time.Now,
		tasks:   make([]task.Task, 0),
		loading: true,
	}
	for _, opt := range opts {
		opt(&model)
	}

	model.title = textinput.New()
	model.title.Placeholder = "Task Title"
	model.title.Cursor.SetMode(cursor.CursorStatic)

	model.description = textarea.New()
	model.description.Placeholder = "Description"
	model.description.ShowLineNumbers = false
	model.description.SetHeight(3)
	model.description.Cursor.SetMode(cursor.CursorStatic)

	model.resetForm()
	return model
}

func (model Model) Init() tea.Cmd {
	return model.fetchTasks()
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		formWidth := model.formWidth() - 2
		model.title.Width = formWidth
		model.description.SetWidth(formWidth)
		return model, nil

	case tasksLoadedMsg:
		model.loading = false
		if msg.err != nil {
			slog.Error("failed to fetch tasks", "err", msg.err)
			model.notice = notice{noticeError, fmt.Sprintf("Error fetching tasks: %v", msg.err)}
			model.tasks = make([]task.Task, 0)
		} else if msg.tasks == nil {
			model.tasks = make([]task.Task, 0)
		} else {
			model.tasks = msg.tasks
		}
		model.clampDelete()
		return model, nil

	case taskCreatedMsg:
		if msg.err != nil {
			slog.Error("failed to create task", "err", msg.err)
			model.notice = notice{noticeError, fmt.Sprintf("Error creating task: %v", msg.err)}
			return model, nil
		}
		slog.Info("created task", "id", msg.task.ID)
		model.notice = notice{noticeSuccess, msgCreated}
		model.resetForm()
		cmd := model.fetchTasks()
		return model, cmd

	case taskDeletedMsg:
		if msg.err != nil {
			slog.Error("failed to delete task", "id", msg.id, "err", msg.err)
			model.notice = notice{noticeError, fmt.Sprintf("Error deleting task: %v", msg.err)}
			return model, nil
		}
		slog.Info("deleted task", "id", msg.id)
		model.notice = notice{noticeSuccess, msgDeleted}
		cmd := model.fetchTasks()
		return model, cmd

	case tea.KeyMsg:
		return model.handleKey(msg)
	}

	return model.updateFocusedInput(msg)
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Refresh):
		cmd := model.fetchTasks()
		return model, cmd
	case key.Matches(msg, model.keys.Submit):
		return model.submit()
	case key.Matches(msg, model.keys.NextField):
		model.moveFocus(1)
		return model, nil
	case key.Matches(msg, model.keys.PrevField):
		model.moveFocus(-1)
		return model, nil
	}

	switch model.focus {
	case FieldTitle:
		if key.Matches(msg, model.keys.Confirm) {
			model.moveFocus(1)
			return model, nil
		}
	case FieldDescription:
		// enter inserts a newline
	case FieldDueDate:
		switch {
		case key.Matches(msg, model.keys.OptionPrev):
			model.dueDate = model.dueDate.AddDate(0, 0, -1)
		case key.Matches(msg, model.keys.OptionNext):
			model.dueDate = model.dueDate.AddDate(0, 0, 1)
		case key.Matches(msg, model.keys.MonthPrev):
			model.dueDate = model.dueDate.AddDate(0, -1, 0)
		case key.Matches(msg, model.keys.MonthNext):
			model.dueDate = model.dueDate.AddDate(0, 1, 0)
		case key.Matches(msg, model.keys.Today):
			model.dueDate = model.today()
		case key.Matches(msg, model.keys.Confirm):
			model.moveFocus(1)
		}
		return model, nil
	case FieldStatus:
		model.statusIdx = model.cycleOption(msg, model.statusIdx, len(task.Statuses))
		return model, nil
	case FieldPriority:
		model.priorityIdx = model.cycleOption(msg, model.priorityIdx, len(task.Priorities))
		return model, nil
	case FieldSubmit:
		if key.Matches(msg, model.keys.Confirm) {
			return model.submit()
		}
		return model, nil
	case FieldDelete:
		if key.Matches(msg, model.keys.Confirm) {
			return model.deleteSelected()
		}
		model.deleteIdx = model.cycleOption(msg, model.deleteIdx, len(model.tasks))
		return model, nil
	}

	return model.updateFocusedInput(msg)
}

// cycleOption applies prev/next to a selector index, wrapping at both ends. Enter
// moves on to the next field.
func (model *Model) cycleOption(msg tea.KeyMsg, index, count int) int {
	if count == 0 {
		return 0
	}
	switch {
	case key.Matches(msg, model.keys.OptionPrev):
		return (index - 1 + count) % count
	case key.Matches(msg, model.keys.OptionNext):
		return (index + 1) % count
	case key.Matches(msg, model.keys.Confirm):
		model.moveFocus(1)
	}
	return index
}

func (model Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch model.focus {
	case FieldTitle:
		model.title, cmd = model.title.Update(msg)
	case FieldDescription:
		model.description, cmd = model.description.Update(msg)
	}
	return model, cmd
}

func (model *Model) moveFocus(delta int) {
	next := model.focus
	for {
		next = Field((int(next) + delta + int(fieldCount)) % int(fieldCount))
		if next != FieldDelete || len(model.tasks) > 0 {
			break
		}
	}
	model.setFocus(next)
}

func (model *Model) setFocus(field Field) {
	model.focus = field
	model.title.Blur()
	model.description.Blur()
	switch field {
	case FieldTitle:
		model.title.Focus()
	case FieldDescription:
		model.description.Focus()
	}
}

func (model *Model) resetForm() {
	model.title.Reset()
	model.description.Reset()
	model.dueDate = model.today()
	model.statusIdx = 0
	model.priorityIdx = 0
	model.setFocus(FieldTitle)
}

func (model *Model) clampDelete() {
	if model.deleteIdx >= len(model.tasks) {
		model.deleteIdx = max(len(model.tasks)-1, 0)
	}
	if len(model.tasks) == 0 && model.focus == FieldDelete {
		model.setFocus(FieldSubmit)
	}
}

func (model Model) today() time.Time {
	now := model.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// formTask builds the task described by the form.
func (model Model) formTask() task.Task {
	return task.Task{
		Title:       model.title.Value(),
		Description: model.description.Value(),
		Status:      task.Statuses[model.statusIdx],
		DueDate:     model.dueDate.Format(task.DueDateLayout),
		Priority:    task.Priorities[model.priorityIdx],
	}
}

func (model Model) submit() (tea.Model, tea.Cmd) {
	t := model.formTask()
	if t.Title == "" || t.Description == "" {
		model.notice = notice{noticeWarning, msgRequiredFields}
		return model, nil
	}
	model.notice = notice{}
	api := model.api
	return model, func() tea.Msg {
		created, err := api.Create(context.Background(), t)
		return taskCreatedMsg{task: created, err: err}
	}
}

func (model Model) deleteSelected() (tea.Model, tea.Cmd) {
	if len(model.tasks) == 0 {
		return model, nil
	}
	id := model.tasks[model.deleteIdx].ID
	api := model.api
	return model, func() tea.Msg {
		_, err := api.Delete(context.Background(), id)
		return taskDeletedMsg{id: id, err: err}
	}
}

func (model *Model) fetchTasks() tea.Cmd {
	model.loading = true
	api := model.api
	return func() tea.Msg {
		tasks, err := api.List(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}
