package importer

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/google/uuid"
)

// GeneratedProject is a converted import, ready for persistence.
type GeneratedProject struct {
	Project *domain.Project
	Floors  []*domain.Floor
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema is
// valid. The project and its floors get fresh ids; node and cable ids are
// kept since they are only unique within a scene.
func Convert(schema *ImportSchema) (*GeneratedProject, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Project.ShortID),
		Name:      strings.TrimSpace(schema.Project.Name),
		Site:      strings.TrimSpace(schema.Project.Site),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	type ordered struct {
		order int
		floor *domain.Floor
	}
	rows := make([]ordered, 0, len(schema.Floors))
	for i, f := range schema.Floors {
		sc, err := convertScene(&f.Scene)
		if err != nil {
			return nil, fmt.Errorf("floor %q: %w", f.Name, err)
		}
		floor := &domain.Floor{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Name:      domain.CoalesceStr(strings.TrimSpace(f.Name), fmt.Sprintf("Floor %d", i+1)),
			Scene:     sc,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if f.Image != nil {
			floor.ImageURI = f.Image.URI
			floor.ImageWidth = f.Image.Width
			floor.ImageHeight = f.Image.Height
		}
		order := i
		if f.Order != nil {
			order = *f.Order
		}
		rows = append(rows, ordered{order: order, floor: floor})
	}
	slices.SortStableFunc(rows, func(a, b ordered) int { return a.order - b.order })

	floors := make([]*domain.Floor, len(rows))
	for i, r := range rows {
		r.floor.OrderIndex = i
		floors[i] = r.floor
	}

	return &GeneratedProject{Project: project, Floors: floors}, nil
}

func convertScene(in *SceneImport) (domain.Scene, error) {
	out := domain.Scene{
		Nodes:  make([]domain.DeviceNode, 0, len(in.Nodes)),
		Cables: make([]domain.Cable, 0, len(in.Cables)),
	}

	for _, n := range in.Nodes {
		t, err := domain.ParseDeviceType(n.Type)
		if err != nil {
			return domain.Scene{}, err
		}
		status, err := domain.ParseInstallStatus(n.Status)
		if err != nil {
			return domain.Scene{}, err
		}
		out.Nodes = append(out.Nodes, domain.DeviceNode{
			ID:           n.ID,
			Type:         t,
			X:            n.X,
			Y:            n.Y,
			Rotation:     domain.Float64FromPtrWithDefault(0, n.Rotation),
			Scale:        domain.Float64FromPtrWithDefault(1, n.Scale),
			ParentRackID: n.ParentRackID,
			Status:       status,
			Evidence:     keepEvidence(status, n.Evidence),
		})
	}

	prev := ""
	for _, c := range in.Cables {
		status, err := domain.ParseInstallStatus(c.Status)
		if err != nil {
			return domain.Scene{}, err
		}
		color := c.Color
		if color == "" {
			color = scene.NextColor(prev)
		}
		prev = color
		out.Cables = append(out.Cables, domain.Cable{
			ID:       c.ID,
			Points:   slices.Clone(c.Points),
			Color:    color,
			Finished: true,
			Status:   status,
			Evidence: keepEvidence(status, c.Evidence),
		})
	}

	return out, nil
}

func keepEvidence(status domain.InstallStatus, ev *domain.Evidence) *domain.Evidence {
	if !status.CarriesEvidence() {
		return nil
	}
	return ev.Clone()
}
