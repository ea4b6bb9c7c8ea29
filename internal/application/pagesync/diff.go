package pagesync

import (
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext keeps practically the whole page in view around each change.
const diffContext = 1 << 16

const (
	currentLabel = "Current content"
	comingLabel  = "Coming changes"
)

// Side is one version of a page in serialized form.
type Side struct {
	Content string
	ModTime time.Time
}

// Diff renders a unified diff from the current to the coming version.
// It returns "" when both versions are identical.
func Diff(current, coming Side) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(current.Content),
		B:        difflib.SplitLines(coming.Content),
		FromFile: currentLabel,
		FromDate: formatModTime(current.ModTime),
		ToFile:   comingLabel,
		ToDate:   formatModTime(coming.ModTime),
		Context:  diffContext,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// difflib only fails when its writer fails; the writer is a buffer.
		return ""
	}
	return text
}

func formatModTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05.000000000 -0700")
}
