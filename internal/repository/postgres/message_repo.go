package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

const messageColumns = `
	m.id, m.body, m.image_id, m.member_id, m.workspace_id,
	m.channel_id, m.conversation_id, m.parent_message_id,
	m.created_at, m.updated_at, u.name, u.image`

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, body, image_id, member_id, workspace_id,
			channel_id, conversation_id, parent_message_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		msg.ID, msg.Body, msg.ImageID, msg.MemberID, msg.WorkspaceID,
		msg.ChannelID, msg.ConversationID, msg.ParentMessageID, msg.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mb ON m.member_id = mb.id
		JOIN users u ON mb.user_id = u.id
		WHERE m.id = $1`, messageColumns)

	var msg domain.Message
	var info domain.UserInfo
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID, &msg.Body, &msg.ImageID, &msg.MemberID, &msg.WorkspaceID,
		&msg.ChannelID, &msg.ConversationID, &msg.ParentMessageID,
		&msg.CreatedAt, &msg.UpdatedAt, &info.Name, &info.Image,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msg.Author = &info
	return &msg, nil
}

func (r *MessageRepo) ListByChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.listPage(ctx, "m.channel_id", channelID, before, limit)
}

func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	return r.listPage(ctx, "m.conversation_id", conversationID, before, limit)
}

func (r *MessageRepo) ListByParent(ctx context.Context, parentMessageID uuid.UUID) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mb ON m.member_id = mb.id
		JOIN users u ON mb.user_id = u.id
		WHERE m.parent_message_id = $1
		ORDER BY m.created_at`, messageColumns)
	return r.listMessages(ctx, query, parentMessageID)
}

func (r *MessageRepo) ListAllByChannel(ctx context.Context, channelID uuid.UUID) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mb ON m.member_id = mb.id
		JOIN users u ON mb.user_id = u.id
		WHERE m.channel_id = $1`, messageColumns)
	return r.listMessages(ctx, query, channelID)
}

func (r *MessageRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mb ON m.member_id = mb.id
		JOIN users u ON mb.user_id = u.id
		WHERE m.workspace_id = $1`, messageColumns)
	return r.listMessages(ctx, query, workspaceID)
}

func (r *MessageRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM messages m
		JOIN members mb ON m.member_id = mb.id
		JOIN users u ON mb.user_id = u.id
		WHERE m.member_id = $1`, messageColumns)
	return r.listMessages(ctx, query, memberID)
}

func (r *MessageRepo) Update(ctx context.Context, msg *domain.Message) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE messages SET body = $1, updated_at = $2 WHERE id = $3`,
		msg.Body, time.Now(), msg.ID,
	)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *MessageRepo) listPage(ctx context.Context, column string, contextID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	var query string
	var args []any

	if before != nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			JOIN members mb ON m.member_id = mb.id
			JOIN users u ON mb.user_id = u.id
			WHERE %s = $1 AND m.parent_message_id IS NULL
				AND m.created_at < (SELECT created_at FROM messages WHERE id = $2)
			ORDER BY m.created_at DESC
			LIMIT %d`, messageColumns, column, limit)
		args = []any{contextID, *before}
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM messages m
			JOIN members mb ON m.member_id = mb.id
			JOIN users u ON mb.user_id = u.id
			WHERE %s = $1 AND m.parent_message_id IS NULL
			ORDER BY m.created_at DESC
			LIMIT %d`, messageColumns, column, limit)
		args = []any{contextID}
	}

	messages, err := r.listMessages(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// Reverse to chronological order (query returns DESC)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *MessageRepo) listMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var info domain.UserInfo
		if err := rows.Scan(
			&msg.ID, &msg.Body, &msg.ImageID, &msg.MemberID, &msg.WorkspaceID,
			&msg.ChannelID, &msg.ConversationID, &msg.ParentMessageID,
			&msg.CreatedAt, &msg.UpdatedAt, &info.Name, &info.Image,
		); err != nil {
			return nil, err
		}
		msg.Author = &info
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
