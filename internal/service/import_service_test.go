package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/export"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/importer"
	"github.com/alexanderramin/sitemap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{ShortID: "ACME01", Name: "Acme HQ"},
		Floors: []importer.FloorImport{
			{Name: "Ground", Scene: importer.SceneImport{
				Nodes: []importer.NodeImport{{ID: "n1", Type: "router", X: 0.5, Y: 0.5}},
				Cables: []importer.CableImport{{ID: "c1", Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}}},
			}},
			{Name: "Roof"},
		},
	}
}

func TestImportService_FromSchema(t *testing.T) {
	database, projects, floors := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewImportService(testutil.NewTestUoW(database), obs)

	res, err := svc.ImportProjectFromSchema(ctx, importSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, res.FloorCount)
	assert.Equal(t, 1, res.NodeCount)
	assert.Equal(t, 1, res.CableCount)

	p, err := projects.GetByShortID(ctx, "ACME01")
	require.NoError(t, err)
	assert.Equal(t, res.Project.ID, p.ID)

	stored, err := floors.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Ground", stored[0].Name)
	assert.Len(t, stored[0].Scene.Nodes, 1)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-project", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
}

func TestImportService_ValidationErrorsAreListed(t *testing.T) {
	database, projects, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(database))

	schema := importSchema()
	schema.Project.Name = ""
	schema.Floors[0].Scene.Nodes[0].Type = "toaster"

	_, err := svc.ImportProjectFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "project.name is required")

	list, err := projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportService_RollsBackOnFailure(t *testing.T) {
	database, projects, _ := setupRepos(t)
	ctx := context.Background()
	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	svc := NewImportService(uow)

	_, err := svc.ImportProjectFromSchema(ctx, importSchema())
	require.ErrorIs(t, err, injected)

	_, err = projects.GetByShortID(ctx, "ACME01")
	assert.ErrorIs(t, err, domain.ErrNotFound, "project insert rolled back with the floors")
}

func TestImportService_ExportRoundTrip(t *testing.T) {
	database, _, floors := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(testutil.NewTestUoW(database))

	orig, err := svc.ImportProjectFromSchema(ctx, importSchema())
	require.NoError(t, err)
	origFloors, err := floors.ListByProject(ctx, orig.Project.ID)
	require.NoError(t, err)

	doc := export.NewDocument(orig.Project, origFloors, orig.Project.CreatedAt)
	doc.Project.ShortID = "COPY01"
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	copied, err := svc.ImportProject(ctx, path)
	require.NoError(t, err)
	assert.NotEqual(t, orig.Project.ID, copied.Project.ID)

	copyFloors, err := floors.ListByProject(ctx, copied.Project.ID)
	require.NoError(t, err)
	require.Len(t, copyFloors, len(origFloors))
	for i := range origFloors {
		assert.Equal(t, origFloors[i].Name, copyFloors[i].Name)
		assert.Equal(t, origFloors[i].Scene, copyFloors[i].Scene)
	}
}

func TestImportService_MissingFile(t *testing.T) {
	database, _, _ := setupRepos(t)
	svc := NewImportService(testutil.NewTestUoW(database))
	_, err := svc.ImportProject(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "loading import file")
}
