package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

type ResourceRepo struct {
	pool *pgxpool.Pool
}

func NewResourceRepo(pool *pgxpool.Pool) *ResourceRepo {
	return &ResourceRepo{pool: pool}
}

func (r *ResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `
		INSERT INTO resources (id, workspace_id, uploader_id, name, description, file_id, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		res.ID, res.WorkspaceID, res.UploaderID, res.Name, res.Description,
		res.FileID, res.FileType, res.CreatedAt,
	)
	return err
}

func (r *ResourceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	query := `
		SELECT id, workspace_id, uploader_id, name, description, file_id, file_type, created_at
		FROM resources
		WHERE id = $1`

	var res domain.Resource
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.WorkspaceID, &res.UploaderID, &res.Name, &res.Description,
		&res.FileID, &res.FileType, &res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &res, err
}

func (r *ResourceRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Resource, error) {
	query := `
		SELECT r.id, r.workspace_id, r.uploader_id, r.name, r.description,
			r.file_id, r.file_type, r.created_at, u.name, u.image
		FROM resources r
		JOIN members m ON r.uploader_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE r.workspace_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		var info domain.UserInfo
		if err := rows.Scan(
			&res.ID, &res.WorkspaceID, &res.UploaderID, &res.Name, &res.Description,
			&res.FileID, &res.FileType, &res.CreatedAt, &info.Name, &info.Image,
		); err != nil {
			return nil, err
		}
		res.Uploader = &info
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *ResourceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	return err
}
