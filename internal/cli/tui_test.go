package cli

import (
	"strings"
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_StartsOnProjectList(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	d := NewTestDriver(t, app)
	assert.Equal(t, []ViewID{ViewProjectList}, d.ViewStackIDs())
	assert.Contains(t, d.View(), "ACME01")
	assert.Contains(t, d.View(), "Acme HQ")
}

func TestTUI_EmptyProjectList(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	assert.Contains(t, d.View(), "No projects found")
}

func TestTUI_QuitFromRoot(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestTUI_NewProjectWizardCancels(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.PressKey('n')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewProjectList}, d.ViewStackIDs())
}

func TestTUI_EnterOpensCanvas(t *testing.T) {
	app := testApp(t)
	seedProject(t, app,
		&domain.Floor{ID: "f1", Name: "Ground"},
		&domain.Floor{ID: "f2", Name: "Roof", OrderIndex: 1},
	)

	d := NewTestDriver(t, app)
	d.OpenFirstProject()

	assert.Equal(t, []ViewID{ViewProjectList, ViewCanvas}, d.ViewStackIDs())
	assert.Equal(t, "ACME01", d.State().ActiveShortID)
	lines := d.Lines()
	assert.Contains(t, lines[0], "ACME01")
	assert.True(t, strings.HasPrefix(lines[2], " 1 Ground "), lines[2])
	assert.Contains(t, lines[2], " 2 Roof ")
}

func TestTUI_CtrlCArmsWithUnsavedEdits(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	d := NewTestDriver(t, app)
	d.OpenFirstProject()
	d.PressKey('6')
	d.Click(60, 19)

	d.PressCtrlC()
	assert.False(t, d.Quitting)
	assert.Contains(t, d.View(), "ctrl+c again")

	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestTUI_CtrlCQuitsWhenClean(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	d := NewTestDriver(t, app)
	d.OpenFirstProject()
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
