package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/export"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// inventoryView lists a floor's devices, cables and recorded materials in a
// scrollable pane.
type inventoryView struct {
	state   *SharedState
	project *domain.Project
	floor   *domain.Floor
	vp      viewport.Model
}

func newInventoryView(state *SharedState, p *domain.Project, floor *domain.Floor) *inventoryView {
	vp := viewport.New(max(state.Width, 20), state.ContentHeight())
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	v := &inventoryView{state: state, project: p, floor: floor, vp: vp}
	v.vp.SetContent(v.render())
	return v
}

func (v *inventoryView) ID() ViewID    { return ViewInventory }
func (v *inventoryView) Title() string { return v.floor.Name }

func (v *inventoryView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓ pgup/pgdn", "scroll")),
	}
}

func (v *inventoryView) Init() tea.Cmd { return nil }

func (v *inventoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		v.vp.Width = ws.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *inventoryView) View() string {
	return v.vp.View()
}

func (v *inventoryView) render() string {
	var b strings.Builder
	floors := []*domain.Floor{v.floor}

	sum := export.Summarize(floors)[0]
	installed := sum.ByStatus[domain.StatusInstalled]
	fmt.Fprintf(&b, "\n%s  %s\n\n",
		formatter.Header(v.floor.Name),
		formatter.InstallProgress(installed, sum.Devices+sum.Cables, 24))

	for _, st := range []domain.InstallStatus{
		domain.StatusInstalled, domain.StatusPending, domain.StatusCannotInstall, domain.StatusUnset,
	} {
		if n := sum.ByStatus[st]; n > 0 {
			fmt.Fprintf(&b, "  %s %d\n", formatter.InstallIndicator(st), n)
		}
	}

	b.WriteString("\n" + formatter.FormatDeviceList(v.floor) + "\n\n")
	b.WriteString(formatter.FormatCableList(v.floor) + "\n")

	if lines := export.Materials(floors); len(lines) > 0 {
		rows := make([][]string, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, []string{l.Label, formatter.TruncID(l.ItemID), l.Material, fmt.Sprintf("%g", l.Quantity)})
		}
		b.WriteString("\n" + formatter.Header("Materials") + "\n")
		b.WriteString(formatter.RenderTable([]string{"ITEM", "ID", "MATERIAL", "QTY"}, rows) + "\n")
	}

	return b.String()
}
