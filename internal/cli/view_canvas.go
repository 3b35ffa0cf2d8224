package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/sitemap/internal/cli/formatter"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/i18n"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Terminal cells are roughly twice as tall as they are wide.
	cellAspect = 2.0

	defaultDoubleTap = 400 * time.Millisecond
	dragThreshold    = 1.0
	panStep          = 2.0
	zoomStep         = 1.1
	rotateStep       = 15.0
	scaleStep        = 1.25

	// Content rows above and below the canvas grid.
	canvasTop    = 1
	canvasBottom = 1
)

type canvasLoadedMsg struct {
	floors *scene.Floors
	err    error
}

// canvasView is the floor-plan editor. Mouse gestures go through a
// scene.Interaction; keys drive tools, history, floors and persistence.
type canvasView struct {
	state   *SharedState
	project *domain.Project

	floors  *scene.Floors
	in      *scene.Interaction
	loading bool
	err     error
	flash   string

	doubleTap time.Duration
	now       func() time.Time

	pressed     bool
	pressAt     geom.Point
	lastTapAt   time.Time
	lastTapPos  geom.Point
	lastTapMode domain.Mode
}

func newCanvasView(state *SharedState, p *domain.Project) *canvasView {
	v := &canvasView{
		state:     state,
		project:   p,
		loading:   true,
		doubleTap: defaultDoubleTap,
		now:       time.Now,
	}
	if cfg := state.App.Config; cfg != nil && cfg.Canvas.DoubleTapMS > 0 {
		v.doubleTap = time.Duration(cfg.Canvas.DoubleTapMS) * time.Millisecond
	}
	return v
}

func (v *canvasView) ID() ViewID    { return ViewCanvas }
func (v *canvasView) Title() string { return v.project.DisplayID() }

// CapturesInput is always true: esc and q pass through the unsaved-edits
// guard here rather than popping the view directly.
func (v *canvasView) CapturesInput() bool { return true }

func (v *canvasView) Dirty() bool { return v.floors != nil && v.floors.Dirty() }

func (v *canvasView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p/1-9", "place")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cable")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "status")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u/r", "undo/redo")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "floors")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "back")),
	}
}

func (v *canvasView) Init() tea.Cmd {
	app := v.state.App
	projectID := v.project.ID
	return func() tea.Msg {
		floors, err := app.SiteMap.Open(context.Background(), projectID)
		return canvasLoadedMsg{floors: floors, err: err}
	}
}

func (v *canvasView) hitRadius() float64 {
	if cfg := v.state.App.Config; cfg != nil && cfg.Canvas.HitRadius > 0 {
		return cfg.Canvas.HitRadius
	}
	return scene.DefaultHitRadius
}

func (v *canvasView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case canvasLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.floors = msg.floors
			v.in = scene.NewInteraction(msg.floors.Store(), geom.NewViewportController(), v.hitRadius())
			v.state.SetActiveProjectFrom(v.project)
		}
		return v, nil

	case tea.KeyMsg:
		if v.in == nil {
			switch msg.String() {
			case "q", "esc", "Q":
				return v, popView()
			}
			return v, nil
		}
		return v, v.handleKey(msg)

	case tea.MouseMsg:
		if v.in == nil {
			return v, nil
		}
		return v, v.handleMouse(msg)
	}
	return v, nil
}

// ── layout ───────────────────────────────────────────────────────────────────

func (v *canvasView) size() (int, int) {
	return max(v.state.Width, 20), v.state.ContentHeight()
}

// canvasArea is the region between the floor tabs and the status line.
func (v *canvasView) canvasArea() geom.Rect {
	w, h := v.size()
	return geom.Rect{X: 0, Y: canvasTop, Width: float64(w), Height: float64(max(h-canvasTop-canvasBottom, 1))}
}

// fitRect is the unzoomed image frame letterboxed into the canvas area.
func (v *canvasView) fitRect() geom.Rect {
	return geom.FitRect(v.canvasArea(), v.floors.Active().Aspect()*cellAspect)
}

// baseRect spans the centres of the frame's edge cells, so unit 0 and 1
// land inside the frame and a cell maps back to the position it shows.
func (v *canvasView) baseRect() geom.Rect {
	f := v.fitRect()
	return geom.Rect{X: f.X + 0.5, Y: f.Y + 0.5, Width: max(f.Width-1, 0), Height: max(f.Height-1, 0)}
}

// imageRect is the on-screen rect gestures are resolved against.
func (v *canvasView) imageRect() geom.Rect {
	return v.in.Viewport().Viewport().Project(v.baseRect())
}

func cellPoint(x, y int) geom.Point {
	return geom.Pt(float64(x)+0.5, float64(y)+0.5)
}

func (v *canvasView) inCanvas(y int) bool {
	a := v.canvasArea()
	return float64(y) >= a.Y && float64(y) < a.Y+a.Height
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (v *canvasView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := cellPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.in.Pinch(zoomStep, p)
		case tea.MouseButtonWheelDown:
			v.in.Pinch(1/zoomStep, p)
		case tea.MouseButtonLeft:
			if msg.Y < canvasTop {
				if pos := v.tabAt(msg.X); pos >= 0 {
					v.openFloor(pos)
				}
				return nil
			}
			if !v.inCanvas(msg.Y) {
				return nil
			}
			v.flash = ""
			v.pressed, v.pressAt = true, p
		}

	case tea.MouseActionMotion:
		if !v.pressed {
			return nil
		}
		if !v.in.Dragging() {
			if geom.Distance(p, v.pressAt) < dragThreshold {
				return nil
			}
			v.in.BeginDrag(v.pressAt, v.imageRect())
		}
		v.in.DragTo(p)

	case tea.MouseActionRelease:
		if !v.pressed {
			return nil
		}
		v.pressed = false
		if v.in.Dragging() {
			v.in.EndDrag(p)
			return nil
		}
		return v.tap(v.pressAt)
	}
	return nil
}

// tap turns a click into a tap or, when it follows a tap at the same spot in
// the same mode within the double-tap window, a double tap.
func (v *canvasView) tap(p geom.Point) tea.Cmd {
	rect := v.imageRect()
	now := v.now()
	mode := v.in.Store().Mode()

	double := !v.lastTapAt.IsZero() &&
		now.Sub(v.lastTapAt) <= v.doubleTap &&
		mode == v.lastTapMode &&
		geom.Distance(p, v.lastTapPos) <= 1

	if double {
		v.lastTapAt = time.Time{}
		h := v.in.DoubleTap(p, rect)
		if mode == domain.ModeSelect && h.Kind != scene.HitNone {
			return v.statusEditor()
		}
		return nil
	}

	v.lastTapAt, v.lastTapPos, v.lastTapMode = now, p, mode
	v.in.Tap(p, rect)
	return nil
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (v *canvasView) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := v.in.Store()
	v.flash = ""

	switch msg.String() {
	case "esc":
		switch {
		case v.in.Dragging() || s.Mode() != domain.ModeSelect:
			v.pressed = false
			v.in.Cancel()
		case s.Selection() != nil:
			s.ClearSelection()
		default:
			return v.leave()
		}
	case "q":
		return v.leave()
	case "Q":
		v.state.ClearProjectContext()
		return tea.Batch(popView(), refreshViews())
	case "s":
		v.save()

	case "u":
		if !s.Undo() {
			v.flash = formatter.Dim(i18n.T("scene.nothing_undo", nil))
		}
	case "r":
		if !s.Redo() {
			v.flash = formatter.Dim(i18n.T("scene.nothing_redo", nil))
		}
	case "delete", "backspace", "x":
		if s.DeleteSelected() {
			v.flash = i18n.T("scene.deleted", nil)
		}
	case "C":
		return v.confirm(i18n.T("scene.clear_confirm", nil), func() {
			s.ClearAll()
			v.flash = i18n.T("scene.cleared", nil)
		})

	case "p":
		return v.palette()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		v.in.PickDevice(domain.DeviceTypes[int(msg.Runes[0]-'1')])
	case "c":
		v.in.ActivateCableTool()
	case "enter":
		if s.Mode() == domain.ModeDrawCable {
			v.in.Finish()
			return nil
		}
		return v.statusEditor()
	case "t":
		return v.statusEditor()
	case "w":
		s.SetPreferredColor(scene.NextPreferredColor(s.PreferredColor()))

	case "o":
		s.RotateNode(s.SelectedNodeID(), rotateStep)
	case "O":
		s.RotateNode(s.SelectedNodeID(), -rotateStep)
	case ">":
		s.ScaleNode(s.SelectedNodeID(), scaleStep)
	case "<":
		s.ScaleNode(s.SelectedNodeID(), 1/scaleStep)
	case "a":
		return v.mountInRack()
	case "A":
		if s.RemoveDeviceFromRack(s.SelectedNodeID()) {
			v.flash = i18n.T("rack.removed", nil)
		}

	case "left":
		v.in.Pan(-panStep, 0)
	case "right":
		v.in.Pan(panStep, 0)
	case "up":
		v.in.Pan(0, -panStep)
	case "down":
		v.in.Pan(0, panStep)
	case "+", "=":
		v.in.Pinch(zoomStep, v.canvasCentre())
	case "-":
		v.in.Pinch(1/zoomStep, v.canvasCentre())
	case "0":
		v.in.Viewport().Reset()

	case "[":
		v.openFloor(v.floors.ActivePosition() - 1)
	case "]":
		v.openFloor(v.floors.ActivePosition() + 1)
	case "{":
		pos := v.floors.ActivePosition()
		v.floors.ReorderFloor(pos, pos-1)
	case "}":
		pos := v.floors.ActivePosition()
		v.floors.ReorderFloor(pos, pos+1)
	case "n":
		fl := v.floors.AddFloor("")
		v.resetGestures()
		v.flash = i18n.T("floor.added", map[string]any{"name": fl.Name})
	case "R":
		return v.renameFloor()
	case "D":
		return v.deleteFloor()

	case "i":
		return pushView(newInventoryView(v.state, v.project, v.floors.Active()))
	}
	return nil
}

func (v *canvasView) canvasCentre() geom.Point {
	a := v.canvasArea()
	return geom.Pt(a.X+a.Width/2, a.Y+a.Height/2)
}

func (v *canvasView) resetGestures() {
	v.pressed = false
	v.lastTapAt = time.Time{}
	v.in.CancelDrag()
	v.in.Viewport().Reset()
}

func (v *canvasView) openFloor(pos int) {
	v.in.CancelDrag()
	if v.floors.OpenAt(pos) {
		v.resetGestures()
	}
}

// leave pops the editor unless it holds unsaved edits.
func (v *canvasView) leave() tea.Cmd {
	if v.Dirty() {
		v.flash = formatter.StyleYellow.Render(i18n.T("scene.unsaved", nil))
		return nil
	}
	v.state.ClearProjectContext()
	return tea.Batch(popView(), refreshViews())
}

func (v *canvasView) save() {
	if err := v.state.App.SiteMap.Save(context.Background(), v.floors); err != nil {
		v.state.App.logger().Error("saving floors", "project_id", v.project.ID, "error", err)
		v.flash = formatter.StyleRed.Render(i18n.T("scene.save_failed", map[string]any{"error": err.Error()}))
		return
	}
	v.flash = formatter.StyleGreen.Render(i18n.T("scene.saved", map[string]any{"floors": v.floors.Len()}))
}

// ── forms ────────────────────────────────────────────────────────────────────

func (v *canvasView) palette() tea.Cmd {
	choice := v.in.Store().DeviceToPlace()
	if choice == "" {
		choice = domain.DeviceTypes[0]
	}
	return startWizardCmd(v.state, i18n.T("form.place", nil), paletteForm(&choice), func() tea.Cmd {
		v.in.PickDevice(choice)
		return nil
	})
}

func (v *canvasView) statusEditor() tea.Cmd {
	s := v.in.Store()
	nodeID, cableID := s.SelectedNodeID(), s.SelectedCableID()

	var vals *statusValues
	switch {
	case nodeID != "":
		n, _ := s.Node(nodeID)
		vals = newStatusValues(n.Status, n.Evidence)
	case cableID != "":
		c, _ := s.Cable(cableID)
		vals = newStatusValues(c.Status, c.Evidence)
	default:
		v.flash = formatter.Dim(i18n.T("scene.need_selection", nil))
		return nil
	}

	return startWizardCmd(v.state, i18n.T("status.title", nil), statusForm(vals), func() tea.Cmd {
		ev, err := vals.evidence()
		if err != nil {
			v.flash = formatter.StyleRed.Render(err.Error())
			return nil
		}
		if nodeID != "" {
			s.SetDeviceStatus(nodeID, vals.Status, ev)
		} else {
			s.SetCableStatus(cableID, vals.Status, ev)
		}
		v.flash = i18n.T("status.updated", map[string]any{"status": i18n.StatusLabel(vals.Status)})
		return nil
	})
}

func (v *canvasView) mountInRack() tea.Cmd {
	s := v.in.Store()
	n, ok := s.Node(s.SelectedNodeID())
	if !ok || n.Type.IsRack() {
		v.flash = formatter.Dim(i18n.T("rack.invalid", nil))
		return nil
	}

	var racks []domain.DeviceNode
	for _, r := range s.Nodes() {
		if r.Type.IsRack() {
			racks = append(racks, r)
		}
	}
	if len(racks) == 0 {
		v.flash = formatter.Dim(i18n.T("rack.invalid", nil))
		return nil
	}

	rackID := racks[0].ID
	return startWizardCmd(v.state, i18n.T("form.rack", nil), rackForm(racks, &rackID), func() tea.Cmd {
		if s.AddDeviceToRack(n.ID, rackID) {
			v.flash = i18n.T("rack.added", nil)
		} else {
			v.flash = formatter.StyleRed.Render(i18n.T("rack.already_mounted", nil))
		}
		return nil
	})
}

func (v *canvasView) renameFloor() tea.Cmd {
	active := v.floors.Active()
	name := active.Name
	return startWizardCmd(v.state, i18n.T("form.rename", nil), renameForm(&name), func() tea.Cmd {
		if v.floors.RenameFloor(active.ID, name) {
			v.flash = i18n.T("floor.renamed", map[string]any{"name": v.floors.Active().Name})
		}
		return nil
	})
}

func (v *canvasView) deleteFloor() tea.Cmd {
	active := v.floors.Active()
	return v.confirm(i18n.T("floor.delete_confirm", map[string]any{"name": active.Name}), func() {
		last := v.floors.Len() == 1
		v.floors.DeleteFloor(active.ID)
		v.resetGestures()
		if last {
			v.flash = i18n.T("floor.last", nil)
			return
		}
		v.flash = i18n.T("floor.deleted", map[string]any{"name": active.Name})
	})
}

func (v *canvasView) confirm(title string, fn func()) tea.Cmd {
	var ok bool
	return startWizardCmd(v.state, i18n.T("form.confirm", nil), confirmForm(title, &ok), func() tea.Cmd {
		if ok {
			fn()
		}
		return nil
	})
}
