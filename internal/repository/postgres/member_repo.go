package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (id, workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.WorkspaceID, m.UserID, m.Role, m.CreatedAt,
	)
	return err
}

func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, u.name, u.image
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.id = $1`
	return r.scanMember(ctx, query, id)
}

func (r *MemberRepo) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, u.name, u.image
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.workspace_id = $1 AND m.user_id = $2`
	return r.scanMember(ctx, query, workspaceID, userID)
}

func (r *MemberRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	query := `
		SELECT m.id, m.workspace_id, m.user_id, m.role, m.created_at, u.name, u.image
		FROM members m
		JOIN users u ON m.user_id = u.id
		WHERE m.workspace_id = $1
		ORDER BY m.created_at`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var info domain.UserInfo
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt, &info.Name, &info.Image); err != nil {
			return nil, err
		}
		m.User = &info
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepo) CountAdmins(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE workspace_id = $1 AND role = 'admin'`,
		workspaceID,
	).Scan(&count)
	return count, err
}

func (r *MemberRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	_, err := r.pool.Exec(ctx, `UPDATE members SET role = $1 WHERE id = $2`, role, id)
	return err
}

func (r *MemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	return err
}

func (r *MemberRepo) scanMember(ctx context.Context, query string, args ...any) (*domain.Member, error) {
	var m domain.Member
	var info domain.UserInfo
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&m.ID, &m.WorkspaceID, &m.UserID, &m.Role, &m.CreatedAt, &info.Name, &info.Image,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.User = &info
	return &m, nil
}
