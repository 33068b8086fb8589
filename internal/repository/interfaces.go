package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type WorkspaceRepository interface {
	Create(ctx context.Context, ws *domain.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	UpdateJoinCode(ctx context.Context, id uuid.UUID, joinCode string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepository interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error)
	GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error)
	CountAdmins(ctx context.Context, workspaceID uuid.UUID) (int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChannelRepository interface {
	Create(ctx context.Context, ch *domain.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Channel, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Channel, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConversationRepository interface {
	// Create inserts the canonical pair row; it is a no-op when the row
	// already exists, so concurrent create-or-get calls converge.
	Create(ctx context.Context, conv *domain.Conversation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	GetByMembers(ctx context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Conversation, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	ListByChannel(ctx context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	ListByConversation(ctx context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error)
	ListByParent(ctx context.Context, parentMessageID uuid.UUID) ([]domain.Message, error)
	// ListAllByChannel returns every message in the channel, replies
	// included, for cascade deletion.
	ListAllByChannel(ctx context.Context, channelID uuid.UUID) ([]domain.Message, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Message, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReactionRepository interface {
	Create(ctx context.Context, rx *domain.Reaction) error
	Get(ctx context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error)
	ListByMessage(ctx context.Context, messageID uuid.UUID) ([]domain.Reaction, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Reaction, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]domain.Reaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EventRepository interface {
	Create(ctx context.Context, ev *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Event, error)
	Update(ctx context.Context, ev *domain.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FileRepository interface {
	Create(ctx context.Context, f *domain.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
