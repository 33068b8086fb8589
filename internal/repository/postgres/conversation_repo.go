package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// Create relies on the unique (workspace_id, member_one_id, member_two_id)
// index: a concurrent insert of the same canonical pair is silently skipped
// and the caller re-selects the surviving row.
func (r *ConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, workspace_id, member_one_id, member_two_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, member_one_id, member_two_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		conv.ID, conv.WorkspaceID, conv.MemberOneID, conv.MemberTwoID, conv.CreatedAt,
	)
	return err
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE id = $1`
	return r.scanConversation(ctx, query, id)
}

func (r *ConversationRepo) GetByMembers(ctx context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE workspace_id = $1 AND member_one_id = $2 AND member_two_id = $3`
	return r.scanConversation(ctx, query, workspaceID, memberOneID, memberTwoID)
}

func (r *ConversationRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE workspace_id = $1`
	return r.listConversations(ctx, query, workspaceID)
}

func (r *ConversationRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Conversation, error) {
	query := `
		SELECT id, workspace_id, member_one_id, member_two_id, created_at
		FROM conversations
		WHERE member_one_id = $1 OR member_two_id = $1`
	return r.listConversations(ctx, query, memberID)
}

func (r *ConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id)
	return err
}

func (r *ConversationRepo) scanConversation(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&conv.ID, &conv.WorkspaceID, &conv.MemberOneID, &conv.MemberTwoID, &conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &conv, err
}

func (r *ConversationRepo) listConversations(ctx context.Context, query string, args ...any) ([]domain.Conversation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(&conv.ID, &conv.WorkspaceID, &conv.MemberOneID, &conv.MemberTwoID, &conv.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}
