package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"powerpages/internal/adapters/tui/styles"
	"powerpages/internal/ports"
)

// ErrNoAnswer is returned when input ends before the user answered.
var ErrNoAnswer = errors.New("confirmation input closed without an answer")

// Prompt implements ports.Confirmer with a line-based Y/N question. It is
// used when stdin is not a terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure Prompt implements ports.Confirmer
var _ ports.Confirmer = (*Prompt)(nil)

// NewPrompt creates a prompt reading answers from in.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prints the request and asks until it reads y or n.
func (p *Prompt) Confirm(ctx context.Context, req ports.ConfirmRequest) (bool, error) {
	fmt.Fprintf(p.out, "%s CONFIRMATION REQUIRED: %s\n", strings.Repeat("#", 28), strings.Repeat("#", 28))
	if req.Diff != "" {
		fmt.Fprintf(p.out, "%s DIFF %s\n", strings.Repeat("-", 37), strings.Repeat("-", 37))
		for _, line := range strings.Split(strings.TrimSuffix(req.Diff, "\n"), "\n") {
			fmt.Fprintln(p.out, styles.ForDiffLine(line).Render(line))
		}
		fmt.Fprintln(p.out, strings.Repeat("-", 80))
	}
	for _, msg := range req.Messages {
		fmt.Fprintln(p.out, msg)
	}
	fmt.Fprintln(p.out, req.Question)

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprint(p.out, "Y/N? ")
		line, err := p.in.ReadString('\n')
		switch strings.TrimSpace(line) {
		case "y", "Y":
			fmt.Fprintln(p.out, strings.Repeat("#", 80))
			return true, nil
		case "n", "N":
			fmt.Fprintln(p.out, strings.Repeat("#", 80))
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, ErrNoAnswer
		}
		if err != nil {
			return false, err
		}
	}
}
