package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithSite(site string) ProjectOption {
	return func(p *domain.Project) {
		p.Site = site
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Site:      "1 Test Street",
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Floor options
type FloorOption func(*domain.Floor)

func WithOrderIndex(i int) FloorOption {
	return func(f *domain.Floor) {
		f.OrderIndex = i
	}
}

func WithImage(uri string, width, height int) FloorOption {
	return func(f *domain.Floor) {
		f.ImageURI = uri
		f.ImageWidth = width
		f.ImageHeight = height
	}
}

func WithNodes(nodes ...domain.DeviceNode) FloorOption {
	return func(f *domain.Floor) {
		f.Scene.Nodes = append(f.Scene.Nodes, nodes...)
	}
}

func WithCables(cables ...domain.Cable) FloorOption {
	return func(f *domain.Floor) {
		f.Scene.Cables = append(f.Scene.Cables, cables...)
	}
}

func NewTestFloor(projectID, name string, opts ...FloorOption) *domain.Floor {
	now := time.Now().UTC().Truncate(time.Second)
	f := &domain.Floor{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Scene:     domain.Scene{Nodes: []domain.DeviceNode{}, Cables: []domain.Cable{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewTestNode returns a device node with scale 1 at (x, y).
func NewTestNode(t domain.DeviceType, x, y float64) domain.DeviceNode {
	return domain.DeviceNode{ID: uuid.New().String(), Type: t, X: x, Y: y, Scale: 1}
}
