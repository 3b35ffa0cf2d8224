package cli

import (
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. It manages a view stack
// framed by a breadcrumb header and a key-hint status bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Set after a ctrl+c was refused because of unsaved edits.
	quitArmed bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:     state,
		viewStack: []View{newProjectListView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m *appModel) hasUnsaved() bool {
	for _, v := range m.viewStack {
		if d, ok := v.(dirtyReporter); ok && d.Dirty() {
			return true
		}
	}
	return false
}

// ── bubbletea interface ──────────────────────────────────────────────────────

// Init initialises every view on the stack so views beneath the active one
// have their data when the user navigates back.
func (m appModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Views see content-relative coordinates.
		msg.Y -= headerHeight
		if msg.Y < 0 {
			return m, nil
		}
		return m.forward(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.pop()
		return m, nil

	case refreshViewMsg:
		// Broadcast so views beneath the top reload after mutations made above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		m.pop()
		return m, msg.nextCmd
	}

	return m.forward(msg)
}

func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.hasUnsaved() && !m.quitArmed {
			m.quitArmed = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	m.quitArmed = false

	// Views with their own input handling get every key.
	if v := m.activeView(); v != nil {
		if c, ok := v.(inputCapturer); ok && c.CapturesInput() {
			return m.forward(msg)
		}
	}

	switch {
	case msg.String() == "q":
		if len(m.viewStack) > 1 {
			m.pop()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		m.pop()
		return m, nil
	}

	return m.forward(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("sitemap")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if m.state.ActiveProjectID != "" {
		proj := formatter.StyleGreen.Render(m.state.ActiveShortID)
		header += "  " + formatter.Dim("[") + proj + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.quitArmed {
		hints = append(hints, formatter.StyleYellow.Render("Unsaved changes. ctrl+c again to quit."))
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}
