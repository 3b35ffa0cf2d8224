package service

import (
	"context"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/importer"
	"github.com/alexanderramin/sitemap/internal/scene"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID (case-insensitive) or a full ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

// SiteMapService loads and persists a project's annotated floors. Saves are
// full overwrites of the project's floor set, committed atomically.
type SiteMapService interface {
	LoadFloors(ctx context.Context, projectID string) ([]*domain.Floor, error)
	SaveFloors(ctx context.Context, projectID string, floors []*domain.Floor) error

	// Open loads the project's floors into an editing session.
	Open(ctx context.Context, projectID string) (*scene.Floors, error)
	// Save persists an editing session and marks it clean.
	Save(ctx context.Context, floors *scene.Floors) error
	// Edit opens a session, applies fn, and saves when fn left it dirty.
	Edit(ctx context.Context, projectID string, fn func(*scene.Floors) error) error
}

// ImportResult summarises a completed project import.
type ImportResult struct {
	Project    *domain.Project
	FloorCount int
	NodeCount  int
	CableCount int
}

// ImportService creates projects from JSON documents.
type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
