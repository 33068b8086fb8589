package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultChannelName is the channel every workspace starts with.
const DefaultChannelName = "general"

type Channel struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Conversation is a direct 1:1 context between two members of one workspace.
// MemberOneID sorts before MemberTwoID, so any unordered pair maps to
// exactly one row.
type Conversation struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	MemberOneID uuid.UUID `json:"member_one_id"`
	MemberTwoID uuid.UUID `json:"member_two_id"`
	CreatedAt   time.Time `json:"created_at"`
}
