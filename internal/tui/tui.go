// Package tui is the interactive front end: an input line for new tasks above a
// list of rows that can be toggled or deleted. Every change is saved before the
// next key is read, then the rows are rebuilt from the task list.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/todo"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// listItem adapts a Task to bubbles/list.Item.
type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Title }

// Custom delegate to control how rows render (single line).
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.TaskRow(it.task))
}

type keyMap struct {
	add    key.Binding
	toggle key.Binding
	remove key.Binding
	quit   key.Binding
	submit key.Binding
	cancel key.Binding
}

var keys = keyMap{
	add:    key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add")),
	toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done/undo")),
	remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	submit: key.NewBinding(key.WithKeys("enter")),
	cancel: key.NewBinding(key.WithKeys("esc")),
}

// Model is the bubbletea model. It owns no task state of its own; rows are a
// projection of the todo.List.
type Model struct {
	tasks  *todo.List
	logger *log.Logger

	list   list.Model
	input  textinput.Model
	typing bool

	width, height int
	err           error
}

// New builds the model over l.
func New(l *todo.List, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	th := ui.Current()

	lm := list.New(nil, itemDelegate{}, 0, 0)
	lm.SetShowHelp(true)
	lm.SetShowPagination(true)
	lm.SetShowStatusBar(false)
	lm.SetFilteringEnabled(true)
	lm.Styles.Title = th.Title
	lm.Styles.HelpStyle = th.Help
	lm.Styles.PaginationStyle = th.Help
	lm.FilterInput.Prompt = "/ "
	lm.SetStatusBarItemName("task", "tasks")
	lm.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.add, keys.toggle, keys.remove} }
	lm.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.add, keys.toggle, keys.remove} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a new task..."
	ti.CharLimit = 200

	m := Model{
		tasks:  l,
		logger: logger,
		list:   lm,
		input:  ti,
		width:  80,
		height: 24,
	}
	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen. A save failure ends the
// program and is returned.
func Run(l *todo.List, logger *log.Logger) error {
	p := tea.NewProgram(New(l, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// Err reports the save failure that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Typing reports whether the input line has focus.
func (m Model) Typing() bool { return m.typing }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case list.FilterMatchesMsg:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.clampCursor()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.typing {
			return m.updateInput(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.add):
			m.typing = true
			m.input.SetValue("")
			return m, m.input.Focus()
		case key.Matches(msg, keys.toggle):
			return m.apply("toggle", m.tasks.Toggle)
		case key.Matches(msg, keys.remove):
			return m.apply("remove", m.tasks.Remove)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.submit):
		task, added, err := m.tasks.Add(m.input.Value())
		if err != nil {
			return m.fail(err)
		}
		m.input.SetValue("")
		if !added {
			return m, nil
		}
		m.logger.Debug("task added", "id", task.ID)
		cmd := m.refresh()
		if m.list.FilterState() == list.Unfiltered {
			m.list.Select(len(m.list.Items()) - 1)
		}
		return m, cmd
	case key.Matches(msg, keys.cancel):
		m.typing = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply runs op on the selected row's id.
func (m Model) apply(name string, op func(id string) (bool, error)) (tea.Model, tea.Cmd) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	if _, err := op(it.task.ID); err != nil {
		return m.fail(err)
	}
	m.logger.Debug("task "+name, "id", it.task.ID)
	cmd := m.refresh()
	m.clampCursor()
	return m, cmd
}

// clampCursor keeps the selection on a visible row. While a filter is applied
// the rows are only known once the filter's FilterMatchesMsg arrives.
func (m *Model) clampCursor() {
	if n := len(m.list.VisibleItems()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("save failed", "err", err)
	m.err = err
	return m, tea.Quit
}

// refresh rebuilds every row from the task list. The returned command
// re-applies an active filter.
func (m *Model) refresh() tea.Cmd {
	tasks := m.tasks.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	cmd := m.list.SetItems(items)
	done, pending := m.tasks.Stats()
	m.list.Title = ui.Header(done, pending)
	return cmd
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
	m.input.Width = w - 4
}

// View implements tea.Model.
func (m Model) View() string {
	th := ui.Current()

	var body string
	if m.tasks.Len() == 0 {
		body = m.list.Title + "\n\n" + th.Muted.Render(ui.EmptyMessage)
	} else {
		body = m.list.View()
	}

	label := "a: new task"
	if m.typing {
		label = "New task (enter to add, esc to close)"
	}
	inputBox := th.Frame.
		Border(th.Border).
		Padding(0, 1).
		Render(th.Muted.Render(label) + "\n" + m.input.View())

	content := body + "\n" + inputBox
	if m.err != nil {
		content += "\n" + th.Error.Render("save failed: "+m.err.Error())
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(content)
}
