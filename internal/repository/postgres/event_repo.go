package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/huddleapp/huddle/internal/domain"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) Create(ctx context.Context, ev *domain.Event) error {
	query := `
		INSERT INTO events (id, workspace_id, creator_id, title, content, deadline, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		ev.ID, ev.WorkspaceID, ev.CreatorID, ev.Title, ev.Content, ev.Deadline, ev.Status, ev.CreatedAt,
	)
	return err
}

func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT e.id, e.workspace_id, e.creator_id, e.title, e.content,
			e.deadline, e.status, e.created_at, u.name, u.image
		FROM events e
		JOIN members m ON e.creator_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE e.id = $1`

	var ev domain.Event
	var info domain.UserInfo
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ev.ID, &ev.WorkspaceID, &ev.CreatorID, &ev.Title, &ev.Content,
		&ev.Deadline, &ev.Status, &ev.CreatedAt, &info.Name, &info.Image,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ev.Creator = &info
	return &ev, nil
}

// ListByWorkspace returns events nearest deadline first, with creator info
// joined in.
func (r *EventRepo) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Event, error) {
	query := `
		SELECT e.id, e.workspace_id, e.creator_id, e.title, e.content,
			e.deadline, e.status, e.created_at, u.name, u.image
		FROM events e
		JOIN members m ON e.creator_id = m.id
		JOIN users u ON m.user_id = u.id
		WHERE e.workspace_id = $1
		ORDER BY e.deadline`

	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		var info domain.UserInfo
		if err := rows.Scan(
			&ev.ID, &ev.WorkspaceID, &ev.CreatorID, &ev.Title, &ev.Content,
			&ev.Deadline, &ev.Status, &ev.CreatedAt, &info.Name, &info.Image,
		); err != nil {
			return nil, err
		}
		ev.Creator = &info
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *EventRepo) Update(ctx context.Context, ev *domain.Event) error {
	query := `UPDATE events SET title = $1, content = $2, deadline = $3, status = $4 WHERE id = $5`
	_, err := r.pool.Exec(ctx, query, ev.Title, ev.Content, ev.Deadline, ev.Status, ev.ID)
	return err
}

func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
