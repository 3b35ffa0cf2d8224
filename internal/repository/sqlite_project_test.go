package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Warehouse", testutil.WithSite("12 Dock Road"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Warehouse", fetched.Name)
	assert.Equal(t, "12 Dock Road", fetched.Site)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
	assert.Nil(t, fetched.ArchivedAt)
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Hospital", testutil.WithShortID("HOSP01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "hosp01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "HOSP01", fetched.ShortID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepo_List_ExcludesArchived(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestProject("Active1")
	p2 := testutil.NewTestProject("Active2")
	p3 := testutil.NewTestProject("Archived")
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))
	require.NoError(t, repo.Create(ctx, p3))
	require.NoError(t, repo.Archive(ctx, p3.ID))

	list, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	listAll, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, listAll, 3)
}

func TestProjectRepo_ArchiveUnarchive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Office")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.Archive(ctx, proj.ID))
	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectArchived, fetched.Status)
	assert.NotNil(t, fetched.ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, proj.ID))
	fetched, err = repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.Nil(t, fetched.ArchivedAt)

	assert.ErrorIs(t, repo.Archive(ctx, "ghost"), domain.ErrNotFound)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Mall")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Name = "Mall East Wing"
	proj.Status = domain.ProjectDone
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mall East Wing", fetched.Name)
	assert.Equal(t, domain.ProjectDone, fetched.Status)

	ghost := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrNotFound)
}

func TestProjectRepo_DeleteCascadesFloors(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	floors := NewSQLiteFloorRepo(db)

	proj := testutil.NewTestProject("Cascade")
	require.NoError(t, projects.Create(ctx, proj))
	fl := testutil.NewTestFloor(proj.ID, "Ground")
	require.NoError(t, floors.Create(ctx, fl))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := floors.GetByID(ctx, fl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "floor should be cascade-deleted with its project")
}
