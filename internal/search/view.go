package search

// View receives the presentation side effects the engine cannot perform
// itself: keeping the selected suggestion visible and moving input focus.
type View interface {
	// EnsureVisible scrolls the suggestion at index into view.
	EnsureVisible(index int)
	// ReleaseFocus removes focus from the input (escape).
	ReleaseFocus()
	// RequestFocus returns focus to the input (clear).
	RequestFocus()
}

// NopView ignores every notification.
type NopView struct{}

func (NopView) EnsureVisible(int) {}
func (NopView) ReleaseFocus()     {}
func (NopView) RequestFocus()     {}
