package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/astromechza/task-tracker/pkg/task"
)

const (
	// Below this terminal width the form is stacked under the list.
	stackedWidth = 100

	priorityColumn = 5
)

var tableHeaders = []string{"ID", "Title", "Description", "Status", "Due Date", "Priority"}

// DeleteLabel is how a task is named in the delete selector.
func DeleteLabel(t task.Task) string {
	return fmt.Sprintf("Task %d: %s", t.ID, t.Title)
}

func (model Model) formWidth() int {
	if model.width == 0 {
		return 40
	}
	if model.width < stackedWidth {
		return model.width
	}
	return model.width / 3
}

func (model Model) listWidth() int {
	if model.width < stackedWidth {
		return model.width
	}
	return model.width - model.formWidth() - 2
}

func (model Model) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render("Task Management System")

	list := model.listView()
	form := lipgloss.NewStyle().Width(model.formWidth()).Render(model.formView())

	var body string
	if model.width > 0 && model.width < stackedWidth {
		body = lipgloss.JoinVertical(lipgloss.Left, list, "", form)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", form)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", model.noticeView(), model.helpView())
}

func (model Model) subheader(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(text)
}

func (model Model) listView() string {
	var b strings.Builder
	b.WriteString(model.subheader("Task List"))
	b.WriteString("\n")

	if len(model.tasks) == 0 {
		text := msgNoTasks
		if model.loading {
			text = "Loading tasks..."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(model.theme.Info).Render(text))
		return b.String()
	}

	b.WriteString(model.tableView())
	b.WriteString("\n\n")
	b.WriteString(model.subheader("Delete Task"))
	b.WriteString("\n")
	b.WriteString(model.selectorView(FieldDelete, "Select task to delete", DeleteLabel(model.tasks[model.deleteIdx])))
	b.WriteString("\n")
	b.WriteString(model.buttonView(FieldDelete, "Delete Selected Task"))
	return b.String()
}

func (model Model) tableView() string {
	rows := make([][]string, 0, len(model.tasks))
	for _, t := range model.tasks {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.Title, t.Description, t.Status, t.DueDate, t.Priority})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(model.theme.BorderColor)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(model.cellStyle)
	if w := model.listWidth(); w > 0 {
		tbl = tbl.Width(w)
	}
	return tbl.String()
}

// cellStyle styles one table cell. The priority column takes the colour of the task's
// priority.
func (model Model) cellStyle(row, col int) lipgloss.Style {
	cell := lipgloss.NewStyle().Padding(0, 1).Foreground(model.theme.NormalText)
	if row == table.HeaderRow {
		return cell.Bold(true).Foreground(model.theme.HeaderForeground)
	}
	if col == priorityColumn && row >= 0 && row < len(model.tasks) {
		return cell.Foreground(model.theme.PriorityColor(model.tasks[row].Priority))
	}
	return cell
}

func (model Model) formView() string {
	var b strings.Builder
	b.WriteString(model.subheader("Create New Task"))
	b.WriteString("\n")

	b.WriteString(model.label(FieldTitle, "Task Title"))
	b.WriteString("\n")
	b.WriteString(model.title.View())
	b.WriteString("\n")

	b.WriteString(model.label(FieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(model.description.View())
	b.WriteString("\n")

	b.WriteString(model.selectorView(FieldDueDate, "Due Date", model.dueDate.Format(task.DueDateLayout)))
	b.WriteString("\n")
	b.WriteString(model.selectorView(FieldStatus, "Status", task.Statuses[model.statusIdx]))
	b.WriteString("\n")
	b.WriteString(model.selectorView(FieldPriority, "Priority", task.Priorities[model.priorityIdx]))
	b.WriteString("\n\n")
	b.WriteString(model.buttonView(FieldSubmit, "Create Task"))
	return b.String()
}

func (model Model) label(field Field, text string) string {
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if model.focus == field {
		style = style.Foreground(model.theme.FocusForeground).Bold(true)
	}
	return style.Render(text)
}

func (model Model) selectorView(field Field, text, value string) string {
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if model.focus == field {
		valueStyle = valueStyle.Foreground(model.theme.FocusForeground)
		value = "< " + value + " >"
	}
	return model.label(field, text) + "\n" + valueStyle.Render(value)
}

func (model Model) buttonView(field Field, text string) string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(model.theme.NormalText)
	if model.focus == field {
		style = style.Bold(true).Reverse(true)
	}
	return style.Render("[ " + text + " ]")
}

func (model Model) noticeView() string {
	var color lipgloss.Color
	switch model.notice.level {
	case noticeInfo:
		color = model.theme.Info
	case noticeSuccess:
		color = model.theme.Success
	case noticeWarning:
		color = model.theme.Warning
	case noticeError:
		color = model.theme.Error
	default:
		return ""
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.notice.text)
}

func (model Model) helpView() string {
	bindings := model.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, helpEntry(binding))
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(parts, "  "))
}

func helpEntry(binding key.Binding) string {
	help := binding.Help()
	return help.Key + " " + help.Desc
}
