package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// projectsLoadedMsg signals that project list data has been loaded.
type projectsLoadedMsg struct {
	projects []*domain.Project
	err      error
}

// projectListView shows an interactive, navigable list of projects.
type projectListView struct {
	state    *SharedState
	projects []*domain.Project
	cursor   int
	loading  bool
	err      error
	flash    string

	showArchived bool

	// Filtering
	filtering bool
	filter    string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:   state,
		loading: true,
	}
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) CapturesInput() bool { return v.filtering }

func (v *projectListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archived")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *projectListView) loadProjects() tea.Cmd {
	app := v.state.App
	all := v.showArchived
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background(), all)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.projects = msg.projects
			if v.cursor >= len(v.projects) {
				v.cursor = max(len(v.projects)-1, 0)
			}
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadProjects()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleProjects()
	v.flash = ""

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			v.state.SetActiveProjectFrom(p)
			return v, pushView(newCanvasView(v.state, p))
		}
	case "n":
		return v, v.newProjectWizard()
	case "a":
		v.showArchived = !v.showArchived
		v.cursor = 0
		return v, v.loadProjects()
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *projectListView) newProjectWizard() tea.Cmd {
	vals := &newProjectValues{}
	app := v.state.App
	return startWizardCmd(v.state, "New project", newProjectForm(vals), func() tea.Cmd {
		p := vals.project()
		if err := app.Projects.Create(context.Background(), p); err != nil {
			v.flash = formatter.StyleRed.Render("Error: " + err.Error())
			return nil
		}
		v.flash = formatter.StyleGreen.Render(fmt.Sprintf("Created project %s", p.ShortID))
		return refreshViews()
	})
}

func (v *projectListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
			v.cursor = 0
		}
	default:
		if len(msg.String()) == 1 {
			v.filter += msg.String()
			v.cursor = 0
		}
	}
	return v, nil
}

func (v *projectListView) visibleProjects() []*domain.Project {
	if v.filter == "" {
		return v.projects
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Project
	for _, p := range v.projects {
		if strings.Contains(strings.ToLower(p.Name), lf) ||
			strings.Contains(strings.ToLower(p.ShortID), lf) ||
			strings.Contains(strings.ToLower(p.Site), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *projectListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading projects...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visibleProjects()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + "█\n\n")
	}
	if v.flash != "" {
		b.WriteString("  " + v.flash + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found. Press n to create one.") + "\n")
		return b.String()
	}

	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		site := formatter.Dim("—")
		if p.Site != "" {
			site = formatter.Dim(padRight(p.Site, 28))
		}

		b.WriteString(fmt.Sprintf("%s%-8s %s  %s  %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(p.DisplayID()),
			nameStyle.Render(padRight(p.Name, 22)),
			formatter.StatusPill(p.Status),
			site,
			formatter.Dim(formatter.HumanDate(p.UpdatedAt)),
		))
	}

	return b.String()
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
