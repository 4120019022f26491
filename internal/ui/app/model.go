package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timetrack/internal/modules/agent/channel"
	"timetrack/internal/modules/agent/domain"
	taskdomain "timetrack/internal/modules/task/domain"
	"timetrack/internal/platform/clock"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/ui/components"
	"timetrack/internal/ui/theme"
	tasksview "timetrack/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type commander interface {
	Send(cmd domain.Command) bool
}

type activityReporter interface {
	Report(t time.Time) bool
}

// ─── async messages ───────────────────────────────────────────────────────────

type eventMsg struct{ event domain.Event }

type controlMsg struct{ control domain.Control }

type channelClosedMsg struct{}

type elapsedTickMsg time.Time

type repaintMsg struct{}

const elapsedRefresh = time.Second

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	End     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "start session")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh tasks")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.End, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.End, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the window listener of the agent runtime. It never touches runtime
// state: user actions become commands and the view is rebuilt from events.
type Model struct {
	commands commander
	activity activityReporter
	events   *channel.Mailbox[domain.Event]
	controls *channel.Mailbox[domain.Control]
	clock    clock.Clock

	tasks    tasksview.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette

	userState    domain.Classification
	lastActivity time.Time
	session      domain.SessionStateEvent
	elapsed      time.Duration
	lastSaved    string
	status       string
	statusErr    bool
	quitting     bool
	width        int
	height       int
}

func NewModel(
	commands commander,
	activity activityReporter,
	events *channel.Mailbox[domain.Event],
	controls *channel.Mailbox[domain.Control],
	clk clock.Clock,
) Model {
	return Model{
		commands:  commands,
		activity:  activity,
		events:    events,
		controls:  controls,
		clock:     clk,
		tasks:     tasksview.New(),
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		userState: domain.Idle,
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tasks.Init(),
		waitForEvent(m.events),
		waitForControl(m.controls),
		m.sendCmd(domain.RequestTaskList{}),
		m.sendCmd(domain.RequestSessionState{}),
		elapsedTick(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if m.activity != nil {
			m.activity.Report(m.clock.Now())
		}
	}

	switch msg := msg.(type) {
	case eventMsg:
		cmds = append(cmds, m.applyEvent(msg.event), waitForEvent(m.events))
		return m, tea.Batch(cmds...)

	case controlMsg:
		switch msg.control {
		case domain.ControlShow:
			m.setStatus("window shown")
			return m, tea.Batch(tea.ClearScreen, waitForControl(m.controls))
		case domain.ControlQuit:
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForControl(m.controls)

	case channelClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case elapsedTickMsg:
		if m.quitting {
			return m, nil
		}
		m.commands.Send(domain.RequestElapsedTime{})
		return m, elapsedTick()

	case repaintMsg:
		return m, nil
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(tea.WindowSizeMsg{Width: m.width / 2, Height: m.height - 3})
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.setStatus("ready")

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.tasks.Filtering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Start):
			m.startSelected()
			return m, nil
		case key.Matches(msg, m.keys.End):
			return m, m.palette.OpenWith("session:end ")
		case key.Matches(msg, m.keys.Refresh):
			m.commands.Send(domain.RequestTaskList{})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) applyEvent(event domain.Event) tea.Cmd {
	switch ev := event.(type) {
	case domain.TaskListEvent:
		return m.tasks.SetTasks(ev.Tasks)
	case domain.TaskAddedEvent:
		m.setStatus("task added: " + ev.Task.Name)
		m.commands.Send(domain.RequestTaskList{})
	case domain.UserStateEvent:
		m.userState = ev.State
		m.lastActivity = ev.LastActivity
	case domain.RepaintEvent:
		if ev.After > 0 {
			return tea.Tick(ev.After, func(time.Time) tea.Msg { return repaintMsg{} })
		}
	case domain.ElapsedTimeEvent:
		m.elapsed = ev.Elapsed
		if ev.Trimmed > 0 {
			m.setStatus("idle: last " + clock.FormatDuration(ev.Trimmed) + " not counted")
		}
	case domain.SessionStateEvent:
		m.session = ev
		m.elapsed = ev.Elapsed
	case domain.SessionSavedEvent:
		m.lastSaved = fmt.Sprintf("%s on %s", clock.FormatDuration(ev.Session.Duration()), m.tasks.TaskName(ev.Session.TaskID))
		m.setStatus("session saved: " + m.lastSaved)
	case domain.ErrorEvent:
		m.setError(ev)
	case domain.QuitEvent:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		listW := m.width / 2
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(listW).Height(contentH).Render(m.tasks.View()),
			m.renderSessionPane(m.width-listW, contentH),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	state := theme.Idle.Render("○ " + domain.Idle.String())
	if m.userState == domain.Active {
		state = theme.Active.Render("● " + domain.Active.String())
	}
	bar := "timetrack  " + state
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderSessionPane(width, height int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session") + "\n\n")
	if m.session.InProgress {
		sb.WriteString(theme.Hot.Render(m.tasks.TaskName(m.session.TaskID)) + "\n")
		timer := clock.FormatDuration(m.elapsed)
		if m.userState == domain.Idle {
			timer += theme.Muted.Render("  paused")
		}
		sb.WriteString(timer + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("no session running") + "\n")
	}
	if !m.lastActivity.IsZero() {
		sb.WriteString("\n" + theme.Muted.Render("last input "+m.lastActivity.Format("15:04:05")) + "\n")
	}
	if m.lastSaved != "" {
		sb.WriteString(theme.Muted.Render("last saved "+m.lastSaved) + "\n")
	}

	w := width - 2
	if w < 10 {
		w = 10
	}
	h := height - 2
	if h < 1 {
		h = 1
	}
	return theme.Pane.Width(w).Height(h).Render(sb.String())
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.statusErr {
		left = theme.Error.Render(left)
	}
	right := theme.Muted.Render("s:start  e:end  ::palette  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "task:add":
		if len(parts) < 3 {
			m.setStatus("usage: task:add <low|medium|high> <name>")
			return m, nil
		}
		priority, err := taskdomain.ParsePriority(parts[1])
		if err != nil {
			m.setError(err)
			return m, nil
		}
		name := strings.Join(parts[2:], " ")
		m.commands.Send(domain.AddTask{Task: taskdomain.Task{Name: name, Priority: priority}})

	case "tasks:refresh":
		m.commands.Send(domain.RequestTaskList{})

	case "session:start":
		m.startSelected()

	case "session:end":
		comment := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), parts[0]))
		m.commands.Send(domain.EndSession{Comment: comment})

	case "session:state":
		m.commands.Send(domain.RequestSessionState{})

	case "quit":
		return m.quit()

	default:
		m.setStatus("unknown command: " + parts[0])
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) startSelected() {
	task, ok := m.tasks.Selected()
	if !ok {
		m.setStatus("no task selected")
		return
	}
	m.commands.Send(domain.StartSession{TaskID: task.ID})
	m.setStatus("session started: " + task.Name)
}

// quit asks the runtime to stop and waits for its QuitEvent. If the runtime is
// already gone the program exits directly.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.commands.Send(domain.Quit{}) {
		m.quitting = true
		return m, tea.Quit
	}
	m.setStatus("quitting…")
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	var ev domain.ErrorEvent
	switch {
	case errors.Is(err, apperrors.ErrSaveAbandoned):
		m.status = "session lost: " + err.Error()
	case errors.As(err, &ev):
		m.status = ev.Op + " failed: " + ev.Err.Error()
	default:
		m.status = err.Error()
	}
	m.statusErr = true
}

func (m Model) sendCmd(cmd domain.Command) tea.Cmd {
	return func() tea.Msg {
		m.commands.Send(cmd)
		return nil
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func waitForEvent(box *channel.Mailbox[domain.Event]) tea.Cmd {
	return func() tea.Msg {
		e, err := box.Recv(context.Background())
		if err != nil {
			return channelClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

func waitForControl(box *channel.Mailbox[domain.Control]) tea.Cmd {
	return func() tea.Msg {
		c, err := box.Recv(context.Background())
		if err != nil {
			return channelClosedMsg{}
		}
		return controlMsg{control: c}
	}
}

func elapsedTick() tea.Cmd {
	return tea.Tick(elapsedRefresh, func(t time.Time) tea.Msg { return elapsedTickMsg(t) })
}
