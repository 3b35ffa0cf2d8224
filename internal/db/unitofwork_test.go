package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ts = "2025-01-01T00:00:00Z"

func openTestDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'Site', ?, ?)`, ts, ts)
	require.NoError(t, err)
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertFloor(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO floors (id, project_id, name, scene, created_at, updated_at)
		VALUES (?, 'p1', ?, '{}', ?, ?)`, id, name, ts, ts)
	return err
}

func floorNames(t *testing.T, database *sql.DB) []string {
	t.Helper()
	rows, err := database.Query(`SELECT name FROM floors ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	return names
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertFloor(ctx, tx, "f1", "Ground"); err != nil {
			return err
		}
		return insertFloor(ctx, tx, "f2", "Roof")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ground", "Roof"}, floorNames(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)
	deliberate := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertFloor(ctx, tx, "f1", "Ground"); err != nil {
			return err
		}
		return deliberate
	})
	require.ErrorIs(t, err, deliberate)
	assert.Empty(t, floorNames(t, database), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertFloor(ctx, tx, "f1", "Ground"); err != nil {
			return err
		}
		return insertFloor(ctx, tx, "f1", "Duplicate")
	})
	require.Error(t, err)
	assert.Empty(t, floorNames(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertFloor(ctx, tx, "f1", "Ground")
			panic("boom")
		})
	})
	assert.Empty(t, floorNames(t, database), "row should not exist after panic rollback")
}
