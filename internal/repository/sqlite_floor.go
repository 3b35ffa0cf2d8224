package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitemap/internal/db"
	"github.com/alexanderramin/sitemap/internal/domain"
)

// SQLiteFloorRepo implements FloorRepo. Each floor's scene is stored as one
// JSON document in the scene column.
type SQLiteFloorRepo struct {
	db db.DBTX
}

// NewSQLiteFloorRepo creates a new SQLiteFloorRepo.
func NewSQLiteFloorRepo(conn db.DBTX) *SQLiteFloorRepo {
	return &SQLiteFloorRepo{db: conn}
}

const floorColumns = `id, project_id, name, order_index, image_uri, image_width, image_height, scene, created_at, updated_at`

func (r *SQLiteFloorRepo) Create(ctx context.Context, f *domain.Floor) error {
	scene, err := encodeScene(f.Scene)
	if err != nil {
		return err
	}
	query := `INSERT INTO floors (` + floorColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		f.ID,
		f.ProjectID,
		f.Name,
		f.OrderIndex,
		f.ImageURI,
		f.ImageWidth,
		f.ImageHeight,
		scene,
		f.CreatedAt.Format(time.RFC3339),
		f.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting floor: %w", err)
	}
	return nil
}

func (r *SQLiteFloorRepo) GetByID(ctx context.Context, id string) (*domain.Floor, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+floorColumns+` FROM floors WHERE id = ?`, id)
	return scanFloor(row)
}

func (r *SQLiteFloorRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Floor, error) {
	query := `SELECT ` + floorColumns + ` FROM floors WHERE project_id = ? ORDER BY order_index, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing floors: %w", err)
	}
	defer rows.Close()

	var floors []*domain.Floor
	for rows.Next() {
		f, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating floors: %w", err)
	}
	return floors, nil
}

func (r *SQLiteFloorRepo) Update(ctx context.Context, f *domain.Floor) error {
	scene, err := encodeScene(f.Scene)
	if err != nil {
		return err
	}
	query := `UPDATE floors SET name = ?, order_index = ?, image_uri = ?, image_width = ?, image_height = ?,
		scene = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		f.Name,
		f.OrderIndex,
		f.ImageURI,
		f.ImageWidth,
		f.ImageHeight,
		scene,
		f.UpdatedAt.Format(time.RFC3339),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating floor: %w", err)
	}
	return requireAffected(res, "floor")
}

func (r *SQLiteFloorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM floors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting floor: %w", err)
	}
	return nil
}

// ReplaceForProject deletes every stored floor of the project and inserts
// floors in their place. Floors must all belong to projectID.
func (r *SQLiteFloorRepo) ReplaceForProject(ctx context.Context, projectID string, floors []*domain.Floor) error {
	for _, f := range floors {
		if f.ProjectID != projectID {
			return fmt.Errorf("floor %s belongs to project %s, not %s", f.ID, f.ProjectID, projectID)
		}
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM floors WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing floors: %w", err)
	}
	for _, f := range floors {
		if err := r.Create(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func encodeScene(s domain.Scene) (string, error) {
	s = s.Clone()
	s.Normalize()
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding scene: %w", err)
	}
	return string(b), nil
}

func decodeScene(raw string) (domain.Scene, error) {
	var s domain.Scene
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return domain.Scene{}, fmt.Errorf("decoding scene: %w", err)
		}
	}
	s.Normalize()
	return s, nil
}

func scanFloor(row rowScanner) (*domain.Floor, error) {
	var f domain.Floor
	var sceneStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&f.ID, &f.ProjectID, &f.Name, &f.OrderIndex,
		&f.ImageURI, &f.ImageWidth, &f.ImageHeight,
		&sceneStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("floor: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning floor: %w", err)
	}
	if err := parseTimestamps(createdAtStr, updatedAtStr, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if f.Scene, err = decodeScene(sceneStr); err != nil {
		return nil, fmt.Errorf("floor %s: %w", f.ID, err)
	}
	return &f, nil
}
