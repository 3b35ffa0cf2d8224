package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewProjectList ViewID = iota
	ViewCanvas
	ViewForm
	ViewInventory
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that want every key, including the
// global q and esc, while they are on top of the stack.
type inputCapturer interface {
	CapturesInput() bool
}

// dirtyReporter is implemented by views holding unsaved edits.
type dirtyReporter interface {
	Dirty() bool
}
