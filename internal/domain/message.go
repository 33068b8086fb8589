package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message lives in exactly one of a channel or a conversation. Replies carry
// a parent id and inherit the parent's context.
type Message struct {
	ID              uuid.UUID  `json:"id"`
	Body            string     `json:"body"`
	ImageID         *uuid.UUID `json:"image_id,omitempty"`
	MemberID        uuid.UUID  `json:"member_id"`
	WorkspaceID     uuid.UUID  `json:"workspace_id"`
	ChannelID       *uuid.UUID `json:"channel_id,omitempty"`
	ConversationID  *uuid.UUID `json:"conversation_id,omitempty"`
	ParentMessageID *uuid.UUID `json:"parent_message_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	// Joined fields
	Author *UserInfo `json:"author,omitempty"`
}

type Reaction struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	MessageID   uuid.UUID `json:"message_id"`
	MemberID    uuid.UUID `json:"member_id"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}
