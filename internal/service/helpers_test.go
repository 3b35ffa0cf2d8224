package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/repository"
	"github.com/alexanderramin/sitemap/internal/scene"
	"github.com/alexanderramin/sitemap/internal/testutil"
)

func setupRepos(t *testing.T) (*sql.DB, *repository.SQLiteProjectRepo, *repository.SQLiteFloorRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return database, repository.NewSQLiteProjectRepo(database), repository.NewSQLiteFloorRepo(database)
}

func newSiteMapService(t *testing.T, uow db.UnitOfWork, floors repository.FloorRepo, observers ...UseCaseObserver) SiteMapService {
	t.Helper()
	return NewSiteMapService(floors, uow, []scene.Option{scene.WithHistoryLimit(50)}, observers...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}
