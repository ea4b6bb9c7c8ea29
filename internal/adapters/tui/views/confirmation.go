package views

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"powerpages/internal/adapters/tui/styles"
	"powerpages/internal/ports"
)

// ConfirmKeyMap defines key bindings for the confirmation view
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Copy    key.Binding
	Abort   key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n/esc", "skip"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy diff"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "abort run"),
	),
}

// Decision is the outcome of a confirmation view
type Decision int

const (
	Undecided Decision = iota
	Approved
	Declined
	Aborted
)

// ConfirmationModel shows one confirmation request with a scrollable diff
type ConfirmationModel struct {
	ViewState
	Request  ports.ConfirmRequest
	Keys     ConfirmKeyMap
	Decision Decision

	diff  viewport.Model
	ready bool
}

// NewConfirmationModel creates a confirmation model for req
func NewConfirmationModel(req ports.ConfirmRequest) ConfirmationModel {
	return ConfirmationModel{
		Request: req,
		Keys:    DefaultConfirmKeys,
	}
}

func (m ConfirmationModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		height := msg.Height - len(m.Request.Messages) - 6
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.diff = viewport.New(msg.Width-2, height)
			m.diff.SetContent(RenderDiff(m.Request.Diff))
			m.ready = true
		} else {
			m.diff.Width = msg.Width - 2
			m.diff.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Confirm):
			m.Decision = Approved
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Cancel):
			m.Decision = Declined
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Abort):
			m.Decision = Aborted
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Copy):
			if m.Request.Diff == "" {
				return m, nil
			}
			if err := clipboard.WriteAll(m.Request.Diff); err != nil {
				m.Notify("Copy failed: "+err.Error(), true)
			} else {
				m.Notify("Diff copied to clipboard", false)
			}
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.diff, cmd = m.diff.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConfirmationModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("CONFIRMATION REQUIRED"))
	b.WriteString("\n")
	if m.Request.Diff != "" && m.ready {
		b.WriteString(styles.DiffBox.Render(m.diff.View()))
		b.WriteString("\n")
	}
	for _, msg := range m.Request.Messages {
		if strings.HasPrefix(msg, "WARNING") {
			b.WriteString(styles.WarningMsg.Render(msg))
		} else {
			b.WriteString(msg)
		}
		b.WriteString("\n")
	}
	b.WriteString(RenderConfirmPrompt(m.Request.Question, m.Request.Diff != ""))

	if notice := m.RenderNotice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(notice)
	}
	return styles.App.Render(b.String())
}

// RenderConfirmPrompt renders the question followed by the key help
func RenderConfirmPrompt(question string, withDiff bool) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to apply, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to skip"))
	if withDiff {
		b.WriteString(styles.HelpDesc.Render(", "))
		b.WriteString(styles.HelpKey.Render("c"))
		b.WriteString(styles.HelpDesc.Render(" to copy the diff, arrows to scroll"))
	}
	return b.String()
}

// RenderDiff colours a unified diff line by line
func RenderDiff(diff string) string {
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		lines[i] = styles.ForDiffLine(line).Render(line)
	}
	return strings.Join(lines, "\n")
}
