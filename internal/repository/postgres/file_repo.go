package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

// FileRepo stores opaque blobs alongside the rest of the data. Callers treat
// it as a black box: upload, download, delete.
type FileRepo struct {
	pool *pgxpool.Pool
}

func NewFileRepo(pool *pgxpool.Pool) *FileRepo {
	return &FileRepo{pool: pool}
}

func (r *FileRepo) Create(ctx context.Context, f *domain.File) error {
	query := `
		INSERT INTO files (id, content_type, size, data, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, f.ID, f.ContentType, f.Size, f.Data, f.CreatedAt)
	return err
}

func (r *FileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	query := `SELECT id, content_type, size, data, created_at FROM files WHERE id = $1`

	var f domain.File
	err := r.pool.QueryRow(ctx, query, id).Scan(&f.ID, &f.ContentType, &f.Size, &f.Data, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &f, err
}

func (r *FileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	return err
}
