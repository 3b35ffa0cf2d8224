package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/importer"
	"github.com/alexanderramin/sitemap/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"short_id": schema.Project.ShortID, "floors": len(schema.Floors)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &ImportResult{Project: generated.Project, FloorCount: len(generated.Floors)}
	for _, f := range generated.Floors {
		result.NodeCount += len(f.Scene.Nodes)
		result.CableCount += len(f.Scene.Cables)
	}
	fields["project_id"] = generated.Project.ID
	fields["nodes"] = result.NodeCount
	fields["cables"] = result.CableCount

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).Create(ctx, generated.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		floors := repository.NewSQLiteFloorRepo(tx)
		for _, f := range generated.Floors {
			if err := floors.Create(ctx, f); err != nil {
				return fmt.Errorf("creating floor %q: %w", f.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
