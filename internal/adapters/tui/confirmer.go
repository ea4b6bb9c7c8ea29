package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"powerpages/internal/adapters/tui/views"
	"powerpages/internal/ports"
)

// ErrAborted is returned when the user aborts the whole run from a prompt.
var ErrAborted = errors.New("sync aborted by user")

// Confirmer implements ports.Confirmer with a full-screen bubbletea prompt
// per request.
type Confirmer struct {
	in  io.Reader
	out io.Writer
}

// Ensure Confirmer implements ports.Confirmer
var _ ports.Confirmer = (*Confirmer)(nil)

// NewConfirmer creates a confirmer on the given terminal streams.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

// Confirm runs the confirmation view until the user decides.
func (c *Confirmer) Confirm(ctx context.Context, req ports.ConfirmRequest) (bool, error) {
	p := tea.NewProgram(
		views.NewConfirmationModel(req),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	model, ok := final.(views.ConfirmationModel)
	if !ok {
		return false, fmt.Errorf("unexpected confirmation model %T", final)
	}
	switch model.Decision {
	case views.Approved:
		return true, nil
	case views.Aborted:
		return false, ErrAborted
	default:
		return false, nil
	}
}
