package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventPending = "pending"
	EventExpired = "expired"
)

// Event deadlines are epoch milliseconds. Status is stored explicitly and
// only changes through an admin update; Expired is derived at read time for
// display.
type Event struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Deadline    int64     `json:"deadline"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	// Joined fields
	Creator *UserInfo `json:"creator,omitempty"`
	Expired bool      `json:"expired"`
}
