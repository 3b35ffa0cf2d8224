package repository

import (
	"context"

	"github.com/alexanderramin/sitemap/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// FloorRepo persists floors with their scenes. ReplaceForProject overwrites
// the project's whole floor set; callers run it inside a UnitOfWork.
type FloorRepo interface {
	Create(ctx context.Context, f *domain.Floor) error
	GetByID(ctx context.Context, id string) (*domain.Floor, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Floor, error)
	Update(ctx context.Context, f *domain.Floor) error
	Delete(ctx context.Context, id string) error
	ReplaceForProject(ctx context.Context, projectID string, floors []*domain.Floor) error
}
