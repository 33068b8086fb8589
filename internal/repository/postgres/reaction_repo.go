package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

func (r *ReactionRepo) Create(ctx context.Context, rx *domain.Reaction) error {
	query := `
		INSERT INTO reactions (id, workspace_id, message_id, member_id, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rx.ID, rx.WorkspaceID, rx.MessageID, rx.MemberID, rx.Value, rx.CreatedAt,
	)
	return err
}

func (r *ReactionRepo) Get(ctx context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error) {
	query := `
		SELECT id, workspace_id, message_id, member_id, value, created_at
		FROM reactions
		WHERE message_id = $1 AND member_id = $2 AND value = $3`

	var rx domain.Reaction
	err := r.pool.QueryRow(ctx, query, messageID, memberID, value).Scan(
		&rx.ID, &rx.WorkspaceID, &rx.MessageID, &rx.MemberID, &rx.Value, &rx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &rx, err
}

func (r *ReactionRepo) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]domain.Reaction, error) {
	return r.listReactions(ctx, `message_id`, messageID)
}

func (r *ReactionRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Reaction, error) {
	return r.listReactions(ctx, `workspace_id`, workspaceID)
}

func (r *ReactionRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Reaction, error) {
	return r.listReactions(ctx, `member_id`, memberID)
}

func (r *ReactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	return err
}

func (r *ReactionRepo) listReactions(ctx context.Context, column string, arg uuid.UUID) ([]domain.Reaction, error) {
	query := `
		SELECT id, workspace_id, message_id, member_id, value, created_at
		FROM reactions
		WHERE ` + column + ` = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var rx domain.Reaction
		if err := rows.Scan(&rx.ID, &rx.WorkspaceID, &rx.MessageID, &rx.MemberID, &rx.Value, &rx.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, rx)
	}
	return reactions, rows.Err()
}
