package domain

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/sitemap/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScene() Scene {
	return Scene{
		Nodes: []DeviceNode{
			{ID: "r1", Type: DeviceRack, X: 0.1, Y: 0.2, Scale: 1},
			{ID: "s1", Type: DeviceSwitch, X: 0.1, Y: 0.2, Scale: 1, ParentRackID: "r1",
				Status: StatusInstalled, Evidence: &Evidence{Note: "ok", Materials: map[string]float64{"cable_m": 3}}},
		},
		Cables: []Cable{
			{ID: "c1", Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Color: "#e6194b", Finished: true},
		},
	}
}

func TestScene_CloneIsDeep(t *testing.T) {
	orig := sampleScene()
	c := orig.Clone()

	c.Nodes[0].X = 0.9
	c.Nodes[1].Evidence.Materials["cable_m"] = 99
	c.Cables[0].Points[0].X = 0.5

	assert.Equal(t, 0.1, orig.Nodes[0].X)
	assert.Equal(t, 3.0, orig.Nodes[1].Evidence.Materials["cable_m"])
	assert.Equal(t, 0.0, orig.Cables[0].Points[0].X)
}

func TestScene_JSONShape(t *testing.T) {
	data, err := json.Marshal(sampleScene())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "nodes")
	assert.Contains(t, raw, "cables")

	node := raw["nodes"].([]any)[1].(map[string]any)
	assert.Equal(t, "r1", node["parentRackId"])
	assert.Equal(t, "installed", node["status"])
}

func TestScene_NormalizeDropsUnfinishedAndFixesScale(t *testing.T) {
	s := Scene{
		Nodes: []DeviceNode{{ID: "a", Type: DeviceRouter}},
		Cables: []Cable{
			{ID: "draft", Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
			{ID: "short", Points: []geom.Point{{X: 0, Y: 0}}, Finished: true},
			{ID: "ok", Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, Finished: true},
		},
	}
	s.Normalize()
	assert.Equal(t, 1.0, s.Nodes[0].Scale)
	require.Len(t, s.Cables, 1)
	assert.Equal(t, "ok", s.Cables[0].ID)

	var empty Scene
	empty.Normalize()
	assert.NotNil(t, empty.Nodes)
	assert.NotNil(t, empty.Cables)
	assert.True(t, empty.Empty())
}

func TestFloor_Aspect(t *testing.T) {
	f := &Floor{ImageWidth: 1600, ImageHeight: 800}
	assert.Equal(t, 2.0, f.Aspect())
	assert.Equal(t, 0.0, (&Floor{}).Aspect())
}
