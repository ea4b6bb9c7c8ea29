package views

import "powerpages/internal/adapters/tui/styles"

// ViewState holds the terminal size and a one-line notice shown under a view.
// Embed it in view models.
type ViewState struct {
	Width     int
	Height    int
	Notice    string
	NoticeErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// Notify replaces the notice
func (s *ViewState) Notify(msg string, isErr bool) {
	s.Notice = msg
	s.NoticeErr = isErr
}

// ClearNotice removes the notice
func (s *ViewState) ClearNotice() {
	s.Notice = ""
	s.NoticeErr = false
}

// RenderNotice returns the styled notice, or "" when there is none.
func (s ViewState) RenderNotice() string {
	switch {
	case s.Notice == "":
		return ""
	case s.NoticeErr:
		return styles.ErrorMsg.Render(s.Notice)
	default:
		return styles.Success.Render(s.Notice)
	}
}
