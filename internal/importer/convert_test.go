package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_ProjectAndFloorOrder(t *testing.T) {
	schema := &ImportSchema{
		Project: ProjectImport{ShortID: "acme01", Name: " Acme HQ ", Site: "Harbour Road"},
		Floors: []FloorImport{
			{Name: "Ground", Order: ptrInt(5), Image: &ImageImport{URI: "g.png", Width: 200, Height: 100}},
			{Name: "", Order: ptrInt(1)},
			{Name: "Roof"},
		},
	}
	require.Empty(t, ValidateImportSchema(schema))

	gen, err := Convert(schema)
	require.NoError(t, err)

	p := gen.Project
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "ACME01", p.ShortID)
	assert.Equal(t, "Acme HQ", p.Name)
	assert.Equal(t, domain.ProjectActive, p.Status)

	require.Len(t, gen.Floors, 3)
	var names []string
	for i, f := range gen.Floors {
		names = append(names, f.Name)
		assert.Equal(t, i, f.OrderIndex)
		assert.Equal(t, p.ID, f.ProjectID)
		assert.NotEmpty(t, f.ID)
	}
	assert.Equal(t, []string{"Floor 2", "Roof", "Ground"}, names, "order 1, then position 2, then order 5")
	assert.Equal(t, 2.0, gen.Floors[2].Aspect())
}

func TestConvert_SceneDefaults(t *testing.T) {
	ev := &domain.Evidence{Note: "done", Materials: map[string]float64{"cable_m": 4}}
	schema := validMinimalSchema()
	schema.Floors[0].Scene = SceneImport{
		Nodes: []NodeImport{
			{ID: "n1", Type: "cctv", X: 0.2, Y: 0.3, Status: "installed", Evidence: ev},
			{ID: "n2", Type: "ups", X: 0.4, Y: 0.4, Rotation: ptrFloat(90), Scale: ptrFloat(1.5), Status: "pending", Evidence: ev},
		},
		Cables: []CableImport{
			{ID: "c1", Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}},
			{ID: "c2", Points: []geom.Point{geom.Pt(0, 1), geom.Pt(1, 1)}},
			{ID: "c3", Points: []geom.Point{geom.Pt(0, 0.5), geom.Pt(1, 0.5)}, Color: "#123456"},
		},
	}
	require.Empty(t, ValidateImportSchema(schema))

	gen, err := Convert(schema)
	require.NoError(t, err)
	sc := gen.Floors[0].Scene

	require.Len(t, sc.Nodes, 2)
	assert.Equal(t, 1.0, sc.Nodes[0].Scale)
	assert.Equal(t, 0.0, sc.Nodes[0].Rotation)
	require.NotNil(t, sc.Nodes[0].Evidence)
	assert.Equal(t, 4.0, sc.Nodes[0].Evidence.Materials["cable_m"])
	assert.Equal(t, 90.0, sc.Nodes[1].Rotation)
	assert.Equal(t, 1.5, sc.Nodes[1].Scale)
	assert.Nil(t, sc.Nodes[1].Evidence, "pending carries no evidence")

	ev.Materials["cable_m"] = 0
	assert.Equal(t, 4.0, sc.Nodes[0].Evidence.Materials["cable_m"], "evidence is copied")

	require.Len(t, sc.Cables, 3)
	assert.Equal(t, scene.CablePalette[0], sc.Cables[0].Color)
	assert.Equal(t, scene.CablePalette[1], sc.Cables[1].Color)
	assert.Equal(t, "#123456", sc.Cables[2].Color)
	for _, c := range sc.Cables {
		assert.True(t, c.Finished)
	}
}

func TestLoadImportSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.json")
	doc := `{
  "project": {"id": "old", "shortId": "ACME01", "name": "Acme HQ", "status": "archived"},
  "floors": [
    {"id": "f-old", "name": "Ground", "order": 0,
     "image": {"uri": "g.png", "width": 10, "height": 5},
     "scene": {"nodes": [{"id": "n1", "type": "router", "x": 0.5, "y": 0.5, "rotation": 0, "scale": 1}],
               "cables": [{"id": "c1", "points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}], "color": "#e6194b", "finished": true}]}}
  ],
  "exportedAt": "2026-01-02T03:04:05Z"
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	schema, err := LoadImportSchema(path)
	require.NoError(t, err)
	assert.Equal(t, "ACME01", schema.Project.ShortID)
	require.Len(t, schema.Floors, 1)
	assert.Equal(t, "g.png", schema.Floors[0].Image.URI)
	assert.Len(t, schema.Floors[0].Scene.Cables[0].Points, 2)
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestLoadImportSchema_Errors(t *testing.T) {
	_, err := LoadImportSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ParseImportSchema([]byte("{not json"))
	assert.ErrorContains(t, err, "parsing import file")
}
