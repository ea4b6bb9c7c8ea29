package console

import (
	"fmt"
	"io"

	"powerpages/internal/adapters/tui/styles"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

// Reporter implements ports.Reporter by writing coloured lines.
type Reporter struct {
	out io.Writer
}

// Ensure Reporter implements ports.Reporter
var _ ports.Reporter = (*Reporter)(nil)

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Item prints one status line, e.g. "M about.page".
func (r *Reporter) Item(status domain.Status, item string) {
	r.line(styles.ForStatus(status).Render(status.Code() + " " + item))
}

// Info prints an informative line.
func (r *Reporter) Info(message string) {
	r.line(message)
}

// Warn prints a highlighted line.
func (r *Reporter) Warn(message string) {
	r.line(styles.WarningMsg.Render(message))
}

// Summary prints the count of every status seen during the run.
func (r *Reporter) Summary(summary *domain.Summary) {
	r.line("SUMMARY:")
	entries := summary.Entries()
	if len(entries) == 0 {
		r.line("\tNo changes!")
		return
	}
	for _, e := range entries {
		msg := fmt.Sprintf("%s [%s] = %d", e.Status.Describe(), e.Status.Code(), e.Count)
		r.line("\t" + styles.ForStatus(e.Status).Render(msg))
	}
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.out, s)
}
