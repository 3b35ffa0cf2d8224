package cli

import (
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeFloors() *scene.Floors {
	return scene.NewFloors(scene.NewStore(), "p1", []*domain.Floor{
		{ID: "f-ground", Name: "Ground", OrderIndex: 0},
		{ID: "f-roof", Name: "Roof", OrderIndex: 1},
		{ID: "g-annex", Name: "Annex", OrderIndex: 2},
	}, "")
}

func TestResolveFloor(t *testing.T) {
	f := threeFloors()

	tests := []struct {
		ref  string
		want int
	}{
		{"", 0},
		{"1", 0},
		{"3", 2},
		{"roof", 1},
		{"f-roof", 1},
		{"g-", 2},
	}
	for _, tt := range tests {
		got, err := resolveFloor(f, tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}

	_, err := resolveFloor(f, "0")
	assert.ErrorContains(t, err, "out of range")
	_, err = resolveFloor(f, "f-")
	assert.ErrorContains(t, err, "ambiguous")
	_, err = resolveFloor(f, "attic")
	assert.ErrorContains(t, err, "floor not found")
}

func TestLocateItem_OpensOwningFloor(t *testing.T) {
	f := threeFloors()
	require.True(t, f.OpenAt(2))
	id, _ := f.Store().AddNodeAt(0.5, 0.5, domain.DeviceUPS)
	require.True(t, f.OpenAt(0))

	got, err := locateItem(f, itemDevice, id[:6])
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 2, f.ActivePosition())

	_, err = locateItem(f, itemCable, id[:6])
	assert.ErrorContains(t, err, "cable not found")
}

func TestParseMaterials(t *testing.T) {
	got, err := parseMaterials([]string{"cable_m=12.5, anchors=4", "cable_m=2", " "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"cable_m": 14.5, "anchors": 4}, got)

	got, err = parseMaterials(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseMaterials([]string{"=3"})
	assert.Error(t, err)
	for _, bad := range []string{"tape=-1", "cable_m=NaN", "cable_m=Inf", "cable_m=+Inf", "cable_m=-inf"} {
		_, err = parseMaterials([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestBuildEvidence(t *testing.T) {
	assert.Nil(t, buildEvidence(" ", "", nil))
	ev := buildEvidence("", " fixed ", nil)
	require.NotNil(t, ev)
	assert.Equal(t, "fixed", ev.Note)
}

func TestStatusValues_Evidence(t *testing.T) {
	v := newStatusValues(domain.StatusInstalled, &domain.Evidence{Note: "n", Materials: map[string]float64{"b": 2, "a": 1}})
	assert.Equal(t, "a=1, b=2", v.Materials)

	ev, err := v.evidence()
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1, "b": 2}, ev.Materials)

	v.Status = domain.StatusPending
	ev, err = v.evidence()
	require.NoError(t, err)
	assert.Nil(t, ev)
}
