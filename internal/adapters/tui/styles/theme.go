package styles

import (
	"github.com/charmbracelet/lipgloss"

	"powerpages/internal/domain"
)

var (
	// Colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Green   = lipgloss.Color("#10B981")
	Cyan    = lipgloss.Color("#06B6D4")
	Magenta = lipgloss.Color("#D946EF")
	Muted   = lipgloss.Color("#6B7280") // Gray
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	// Base styles
	App = lipgloss.NewStyle().
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	// Status line styles
	StatusAdded    = lipgloss.NewStyle().Foreground(Green)
	StatusModified = lipgloss.NewStyle().Foreground(Cyan)
	StatusDeleted  = lipgloss.NewStyle().Foreground(Magenta)
	StatusFailed   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	StatusPlain    = lipgloss.NewStyle()

	// Diff styles
	DiffAdd    = lipgloss.NewStyle().Foreground(Green)
	DiffRemove = lipgloss.NewStyle().Foreground(Error)
	DiffHunk   = lipgloss.NewStyle().Foreground(Cyan)

	DiffBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ForStatus returns the style of a status line. Skipped items are never coloured.
func ForStatus(st domain.Status) lipgloss.Style {
	if st.Note == domain.Skipped {
		return StatusPlain
	}
	switch st.Change {
	case domain.Added:
		return StatusAdded
	case domain.Modified:
		return StatusModified
	case domain.Deleted:
		return StatusDeleted
	case domain.Failed:
		return StatusFailed
	default:
		return StatusPlain
	}
}

// ForDiffLine returns the style of one unified diff line.
func ForDiffLine(line string) lipgloss.Style {
	switch {
	case len(line) >= 3 && (line[:3] == "+++" || line[:3] == "---"):
		return Title
	case len(line) >= 2 && line[:2] == "@@":
		return DiffHunk
	case len(line) >= 1 && line[0] == '+':
		return DiffAdd
	case len(line) >= 1 && line[0] == '-':
		return DiffRemove
	default:
		return StatusPlain
	}
}
