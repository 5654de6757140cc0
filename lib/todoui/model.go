// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package todoui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskdesk-foundation/taskdesk/lib/policy"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
)

// todoItem adapts a schema.TodoItem to bubbles/list.Item.
type todoItem struct {
	todo schema.TodoItem
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return string(i.todo.Status) }
func (i todoItem) FilterValue() string { return i.todo.Title }

// statusGlyph is the one-character status marker shown before each
// title.
func statusGlyph(status policy.Status) string {
	switch status {
	case policy.StatusInProgress:
		return "◐"
	case policy.StatusCompleted:
		return "●"
	default:
		return "○"
	}
}

// Model is the bubbletea model for the todo browser: a list pane,
// with a per-todo detail view opened by enter.
type Model struct {
	list  list.Model
	theme Theme

	// showDetail switches the view to the selected todo's detail pane.
	showDetail bool

	width  int
	height int
}

// New builds a browser over the given todos. The slice is the full
// response of a list request; the model never refetches.
func New(todos []schema.TodoItem, theme Theme) Model {
	items := make([]list.Item, 0, len(todos))
	for _, todo := range todos {
		items = append(items, todoItem{todo: todo})
	}

	l := list.New(items, itemDelegate{theme: theme}, 0, 0)
	l.Title = fmt.Sprintf("Todos (%d)", len(todos))
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(theme.HelpText)

	return Model{list: l, theme: theme, width: 80, height: 24}
}

// itemDelegate renders one list row: selection marker, status glyph,
// title, and the owner's email when the listing carries owner info.
type itemDelegate struct {
	theme Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	glyphStyle := lipgloss.NewStyle().Foreground(d.statusColor(it.todo.Status))
	titleStyle := lipgloss.NewStyle().Foreground(d.theme.NormalText)
	if it.todo.Status == policy.StatusCompleted {
		titleStyle = titleStyle.Faint(true)
	}

	line := glyphStyle.Render(statusGlyph(it.todo.Status)) + " " + titleStyle.Render(it.todo.Title)
	if it.todo.Owner != nil {
		ownerStyle := lipgloss.NewStyle().Foreground(d.theme.FaintText)
		line += ownerStyle.Render("  <" + it.todo.Owner.Email + ">")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = lipgloss.NewStyle().Foreground(d.theme.HeaderForeground).Render("> ")
	}
	fmt.Fprintln(w, ansi.Truncate(prefix+line, m.Width(), "…"))
}

func (d itemDelegate) statusColor(status policy.Status) lipgloss.Color {
	switch status {
	case policy.StatusInProgress:
		return d.theme.StatusInProgress
	case policy.StatusCompleted:
		return d.theme.StatusCompleted
	default:
		return d.theme.StatusDraft
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.showDetail {
			switch msg.String() {
			case "esc", "q", "enter":
				m.showDetail = false
			}
			return m, nil
		}

		// Don't steal keys while the list's filter input is active.
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "enter":
			if len(m.list.Items()) > 0 {
				m.showDetail = true
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showDetail {
		return m.detailView()
	}
	return m.list.View()
}

// detailView renders the selected todo full-screen: a header line,
// metadata, and the markdown-rendered description.
func (m Model) detailView() string {
	item, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return ""
	}
	todo := item.todo

	width := m.width - 4
	if width < 20 {
		width = 20
	}

	header := lipgloss.NewStyle().
		Foreground(m.theme.HeaderForeground).
		Bold(true).
		Render(todo.Title)

	metaStyle := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	meta := []string{
		"status: " + string(todo.Status),
		"updated: " + todo.UpdatedAt.Format("2006-01-02 15:04"),
	}
	if todo.Owner != nil {
		meta = append(meta, "owner: "+todo.Owner.Name+" <"+todo.Owner.Email+">")
	}

	var body string
	if todo.Description != "" {
		body = renderTerminalMarkdown(todo.Description, m.theme, width)
	} else {
		body = metaStyle.Render("(no description)")
	}

	rule := lipgloss.NewStyle().Foreground(m.theme.BorderColor).
		Render(strings.Repeat("─", width))
	help := lipgloss.NewStyle().Foreground(m.theme.HelpText).
		Render("esc: back  q: back")

	return strings.Join([]string{
		header,
		metaStyle.Render(strings.Join(meta, "  ·  ")),
		rule,
		body,
		"",
		help,
	}, "\n")
}

// Run opens the browser in the alternate screen and blocks until the
// user quits.
func Run(todos []schema.TodoItem) error {
	program := tea.NewProgram(New(todos, DefaultTheme), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
