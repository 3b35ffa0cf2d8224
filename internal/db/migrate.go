package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSceneJSON(db); err != nil {
		return fmt.Errorf("backfilling floor scenes: %w", err)
	}
	if err := migrateCompactFloorOrder(db); err != nil {
		return fmt.Errorf("compacting floor order: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		site        TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS floors (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		scene       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_floors_project ON floors(project_id, order_index)`,

	// Background plan images
	`ALTER TABLE floors ADD COLUMN image_uri TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE floors ADD COLUMN image_width INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE floors ADD COLUMN image_height INTEGER NOT NULL DEFAULT 0`,
}

const emptySceneJSON = `{"nodes":[],"cables":[]}`

// migrateBackfillSceneJSON gives floors written before scenes were required
// an empty scene document. Idempotent.
func migrateBackfillSceneJSON(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE floors SET scene = ? WHERE TRIM(scene) = ''`, emptySceneJSON)
	return err
}

// migrateCompactFloorOrder renumbers each project's floors 0..n-1 in their
// current order when gaps or duplicates exist. Idempotent: projects that are
// already dense are skipped.
func migrateCompactFloorOrder(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT project_id FROM floors
		GROUP BY project_id
		HAVING COUNT(*) != COUNT(DISTINCT order_index) OR MIN(order_index) != 0 OR MAX(order_index) != COUNT(*) - 1`)
	if err != nil {
		return fmt.Errorf("finding projects to compact: %w", err)
	}
	var projectIDs []string
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			rows.Close()
			return fmt.Errorf("scanning project id: %w", err)
		}
		projectIDs = append(projectIDs, pid)
	}
	rows.Close()

	for _, pid := range projectIDs {
		if err := compactProjectFloors(ctx, db, pid); err != nil {
			return fmt.Errorf("compacting floors for project %s: %w", pid, err)
		}
	}
	return nil
}

func compactProjectFloors(ctx context.Context, db *sql.DB, projectID string) error {
	rows, err := db.QueryContext(ctx,
		`SELECT id FROM floors WHERE project_id = ? ORDER BY order_index, created_at`, projectID)
	if err != nil {
		return fmt.Errorf("listing floors: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()

	for i, id := range ids {
		if _, err := db.ExecContext(ctx, `UPDATE floors SET order_index = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("updating floor order: %w", err)
		}
	}
	return nil
}
