package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, name, site, status, archived_at, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.Site,
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE UPPER(short_id) = UPPER(?)`, shortID)
	return scanProject(row)
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE archived_at IS NULL ORDER BY created_at`
	if includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, name = ?, site = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.Site,
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project")
}

func (r *SQLiteProjectRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving project: %w", err)
	}
	return requireAffected(res, "project")
}

func (r *SQLiteProjectRepo) Unarchive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE projects SET status = 'active', archived_at = NULL, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("unarchiving project: %w", err)
	}
	return requireAffected(res, "project")
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var archivedAtStr sql.NullString

	err := row.Scan(
		&p.ID, &p.ShortID, &p.Name, &p.Site,
		&statusStr, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	if err := parseTimestamps(createdAtStr, updatedAtStr, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)
	return &p, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return nil
}
