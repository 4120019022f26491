package tasks

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdomain "timetrack/internal/modules/task/domain"
	"timetrack/internal/ui/theme"
)

type taskItem struct {
	task taskdomain.Task
}

func (i taskItem) Title() string { return i.task.Name }
func (i taskItem) Description() string {
	return fmt.Sprintf("#%d  %s priority", i.task.ID, i.task.Priority)
}
func (i taskItem) FilterValue() string { return i.task.Name }

// Model lists tasks in the order the runtime reported them.
type Model struct {
	list    list.Model
	spinner spinner.Model
	names   map[int64]string
	loading bool
	width   int
	height  int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		list:    l,
		spinner: sp,
		names:   map[int64]string{},
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetTasks replaces the list contents and keeps the selection index.
func (m *Model) SetTasks(tasks []taskdomain.Task) tea.Cmd {
	m.loading = false
	items := make([]list.Item, len(tasks))
	names := make(map[int64]string, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
		names[t.ID] = t.Name
	}
	m.names = names
	return m.list.SetItems(items)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No tasks yet. Press : and run task:add <priority> <name>"))
	}
	return m.list.View()
}

func (m Model) Selected() (taskdomain.Task, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task, true
	}
	return taskdomain.Task{}, false
}

// TaskName returns the name for id, or a placeholder when it is unknown.
func (m Model) TaskName(id int64) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return fmt.Sprintf("task #%d", id)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
