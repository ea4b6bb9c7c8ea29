package domain

import "strings"

// Change is the base sync classification of one item.
type Change int

const (
	Unchanged Change = iota
	Added
	Modified
	Deleted
	// Failed marks an item whose page file could not be parsed.
	Failed
)

// Code returns the one-character status code.
func (c Change) Code() string {
	switch c {
	case Added:
		return "A"
	case Modified:
		return "M"
	case Deleted:
		return "D"
	case Failed:
		return "E"
	default:
		return "."
	}
}

func (c Change) String() string {
	switch c {
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	case Failed:
		return "Failed"
	default:
		return "No changes"
	}
}

// Note annotates a change that was not applied as classified.
type Note int

const (
	NoNote Note = iota
	// Skipped: declined by the user or refused because of a local edit.
	Skipped
	// Forced: applied over a local edit.
	Forced
)

// Code returns the one-character note code, empty for NoNote.
func (n Note) Code() string {
	switch n {
	case Skipped:
		return "s"
	case Forced:
		return "!"
	default:
		return ""
	}
}

func (n Note) String() string {
	switch n {
	case Skipped:
		return "(skipped)"
	case Forced:
		return "(forced)"
	default:
		return ""
	}
}

// Status is a change plus an optional note. It is comparable and can key maps.
type Status struct {
	Change Change
	Note   Note
}

// Classify derives the change from whether the counterpart exists and whether
// the normalized field sets differ.
func Classify(counterpartExists, differs bool) Change {
	switch {
	case !counterpartExists:
		return Added
	case differs:
		return Modified
	default:
		return Unchanged
	}
}

// Code returns the compact status code, e.g. "A", "Ms" or "D!".
func (s Status) Code() string {
	return s.Change.Code() + s.Note.Code()
}

// Describe returns the long form, e.g. "Modified (skipped)".
func (s Status) Describe() string {
	parts := []string{s.Change.String()}
	if s.Note != NoNote {
		parts = append(parts, s.Note.String())
	}
	return strings.Join(parts, " ")
}

func (s Status) String() string {
	return s.Code()
}

// Applied reports whether the change was (or, in a dry run, would be) carried out.
func (s Status) Applied() bool {
	return s.Note != Skipped && s.Change != Failed
}

// SummaryEntry is one row of a Summary.
type SummaryEntry struct {
	Status Status
	Count  int
}

// Summary counts statuses in first-seen order.
type Summary struct {
	order  []Status
	counts map[Status]int
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{counts: make(map[Status]int)}
}

// Add records one occurrence of status.
func (s *Summary) Add(status Status) {
	if _, ok := s.counts[status]; !ok {
		s.order = append(s.order, status)
	}
	s.counts[status]++
}

// Count returns the number of occurrences of status.
func (s *Summary) Count(status Status) int {
	return s.counts[status]
}

// Entries returns the non-empty rows in first-seen order.
func (s *Summary) Entries() []SummaryEntry {
	entries := make([]SummaryEntry, 0, len(s.order))
	for _, st := range s.order {
		entries = append(entries, SummaryEntry{Status: st, Count: s.counts[st]})
	}
	return entries
}

// Changed reports whether any item was classified as something other than Unchanged.
func (s *Summary) Changed() bool {
	for _, st := range s.order {
		if st.Change != Unchanged {
			return true
		}
	}
	return false
}

// AppliedCount returns how many items with the given change were applied.
func (s *Summary) AppliedCount(change Change) int {
	n := 0
	for st, c := range s.counts {
		if st.Change == change && st.Applied() {
			n += c
		}
	}
	return n
}

// Failures returns the number of items that could not be parsed.
func (s *Summary) Failures() int {
	return s.counts[Status{Change: Failed}]
}
