package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/repository"
	"github.com/alexanderramin/sitemap/internal/scene"
)

type siteMapService struct {
	floors    repository.FloorRepo
	uow       db.UnitOfWork
	storeOpts []scene.Option
	observer  UseCaseObserver
	now       func() time.Time
}

// NewSiteMapService wires floor persistence. storeOpts configure the scene
// store of every editing session it opens.
func NewSiteMapService(
	floors repository.FloorRepo,
	uow db.UnitOfWork,
	storeOpts []scene.Option,
	observers ...UseCaseObserver,
) SiteMapService {
	return &siteMapService{
		floors:    floors,
		uow:       uow,
		storeOpts: storeOpts,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *siteMapService) LoadFloors(ctx context.Context, projectID string) ([]*domain.Floor, error) {
	floors, err := s.floors.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading floors: %w", err)
	}
	return floors, nil
}

func (s *siteMapService) SaveFloors(ctx context.Context, projectID string, floors []*domain.Floor) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": projectID, "floors": len(floors)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "save-floors",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if len(floors) == 0 {
		return fmt.Errorf("a project needs at least one floor")
	}
	now := s.now()
	var nodes, cables int
	rows := make([]*domain.Floor, len(floors))
	for i, f := range floors {
		c := f.Clone()
		c.ProjectID = projectID
		c.OrderIndex = i
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		nodes += len(c.Scene.Nodes)
		cables += len(c.Scene.Cables)
		rows[i] = c
	}
	fields["nodes"] = nodes
	fields["cables"] = cables

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		return repository.NewSQLiteFloorRepo(tx).ReplaceForProject(ctx, projectID, rows)
	})
}

func (s *siteMapService) Open(ctx context.Context, projectID string) (*scene.Floors, error) {
	floors, err := s.LoadFloors(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return scene.NewFloors(scene.NewStore(s.storeOpts...), projectID, floors, ""), nil
}

func (s *siteMapService) Save(ctx context.Context, floors *scene.Floors) error {
	if err := s.SaveFloors(ctx, floors.ProjectID(), floors.Capture()); err != nil {
		return err
	}
	floors.MarkSaved()
	return nil
}

func (s *siteMapService) Edit(ctx context.Context, projectID string, fn func(*scene.Floors) error) error {
	floors, err := s.Open(ctx, projectID)
	if err != nil {
		return err
	}
	if err := fn(floors); err != nil {
		return err
	}
	if !floors.Dirty() {
		return nil
	}
	return s.Save(ctx, floors)
}
