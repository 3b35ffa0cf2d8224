package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_ForeignKeysOnEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "sitemap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	// Hold several connections at once so the pool has to open new ones.
	for i := 0; i < 3; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		defer conn.Close()

		var on int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&on))
		assert.Equal(t, 1, on, "connection %d", i)
	}
}

func TestOpenDB_DeletingProjectCascadesFloors(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "sitemap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(4)

	insertProject(t, db, "p1", "P1")
	_, err = db.Exec(`INSERT INTO floors (id, project_id, name, order_index, scene, created_at, updated_at)
		VALUES ('f1', 'p1', 'Ground', 0, '{}', ?, ?)`, ts, ts)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM floors`).Scan(&n))
	assert.Zero(t, n)
}
