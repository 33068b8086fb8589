package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
)

var (
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMessageAuthor     = errors.New("only the message author can perform this action")
	ErrBadMessageContext    = errors.New("message requires exactly one of channel or conversation")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
)

type MessageService struct {
	guard            *Guard
	messageRepo      repository.MessageRepository
	channelRepo      repository.ChannelRepository
	conversationRepo repository.ConversationRepository
	reactionRepo     repository.ReactionRepository
}

func NewMessageService(
	guard *Guard,
	messageRepo repository.MessageRepository,
	channelRepo repository.ChannelRepository,
	conversationRepo repository.ConversationRepository,
	reactionRepo repository.ReactionRepository,
) *MessageService {
	return &MessageService{
		guard:            guard,
		messageRepo:      messageRepo,
		channelRepo:      channelRepo,
		conversationRepo: conversationRepo,
		reactionRepo:     reactionRepo,
	}
}

type CreateMessageInput struct {
	WorkspaceID     uuid.UUID  `json:"workspace_id"`
	ChannelID       *uuid.UUID `json:"channel_id,omitempty"`
	ConversationID  *uuid.UUID `json:"conversation_id,omitempty"`
	ParentMessageID *uuid.UUID `json:"parent_message_id,omitempty"`
	Body            string     `json:"body"`
	ImageID         *uuid.UUID `json:"image_id,omitempty"`
}

type MessageListResponse struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

// MessageWithReactions is the single-message read shape.
type MessageWithReactions struct {
	domain.Message
	Reactions []domain.Reaction `json:"reactions"`
}

// Create posts a message. A top-level message names exactly one context
// (channel or conversation); a reply names a parent and inherits its
// context.
func (s *MessageService) Create(ctx context.Context, userID uuid.UUID, input CreateMessageInput) (*domain.Message, error) {
	member, err := s.guard.RequireMember(ctx, userID, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	channelID, conversationID := input.ChannelID, input.ConversationID
	if input.ParentMessageID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *input.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.WorkspaceID != input.WorkspaceID {
			return nil, ErrMessageNotFound
		}
		channelID, conversationID = parent.ChannelID, parent.ConversationID
	} else if (channelID == nil) == (conversationID == nil) {
		return nil, ErrBadMessageContext
	}

	if channelID != nil {
		ch, err := s.channelRepo.GetByID(ctx, *channelID)
		if err != nil {
			return nil, err
		}
		if ch == nil || ch.WorkspaceID != input.WorkspaceID {
			return nil, ErrChannelNotFound
		}
	}
	if conversationID != nil {
		conv, err := s.conversationRepo.GetByID(ctx, *conversationID)
		if err != nil {
			return nil, err
		}
		if conv == nil || conv.WorkspaceID != input.WorkspaceID {
			return nil, ErrConversationNotFound
		}
		if conv.MemberOneID != member.ID && conv.MemberTwoID != member.ID {
			return nil, ErrNotParticipant
		}
	}

	msg := &domain.Message{
		ID:              uuid.New(),
		Body:            input.Body,
		ImageID:         input.ImageID,
		MemberID:        member.ID,
		WorkspaceID:     input.WorkspaceID,
		ChannelID:       channelID,
		ConversationID:  conversationID,
		ParentMessageID: input.ParentMessageID,
		CreatedAt:       time.Now(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return s.messageRepo.GetByID(ctx, msg.ID)
}

// ListChannel returns a page of a channel's top-level messages. Non-members
// get an empty page.
func (s *MessageService) ListChannel(ctx context.Context, userID, channelID uuid.UUID, before *uuid.UUID, limit int) (*MessageListResponse, error) {
	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	caller, err := s.guard.Member(ctx, userID, ch.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return &MessageListResponse{Messages: []domain.Message{}}, nil
	}

	return s.listPage(ctx, func(limit int) ([]domain.Message, error) {
		return s.messageRepo.ListByChannel(ctx, channelID, before, limit)
	}, limit)
}

// ListConversation returns a page of a conversation's top-level messages.
// Conversations are private: only the two participants may read them.
func (s *MessageService) ListConversation(ctx context.Context, userID, conversationID uuid.UUID, before *uuid.UUID, limit int) (*MessageListResponse, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	member, err := s.guard.RequireMember(ctx, userID, conv.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if conv.MemberOneID != member.ID && conv.MemberTwoID != member.ID {
		return nil, ErrNotParticipant
	}

	return s.listPage(ctx, func(limit int) ([]domain.Message, error) {
		return s.messageRepo.ListByConversation(ctx, conversationID, before, limit)
	}, limit)
}

// ListThread returns a parent message's replies in order. Non-members get an
// empty slice.
func (s *MessageService) ListThread(ctx context.Context, userID, parentMessageID uuid.UUID) ([]domain.Message, error) {
	parent, err := s.messageRepo.GetByID(ctx, parentMessageID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrMessageNotFound
	}

	caller, err := s.guard.Member(ctx, userID, parent.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return []domain.Message{}, nil
	}

	replies, err := s.messageRepo.ListByParent(ctx, parentMessageID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []domain.Message{}
	}
	return replies, nil
}

// GetByID returns one message with its reactions, (nil, nil) when it does
// not exist or the caller is not a member of its workspace.
func (s *MessageService) GetByID(ctx context.Context, userID, messageID uuid.UUID) (*MessageWithReactions, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}

	caller, err := s.guard.Member(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, nil
	}

	reactions, err := s.reactionRepo.ListByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if reactions == nil {
		reactions = []domain.Reaction{}
	}

	return &MessageWithReactions{Message: *msg, Reactions: reactions}, nil
}

func (s *MessageService) Update(ctx context.Context, userID, messageID uuid.UUID, body string) (*domain.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrMessageNotFound
	}

	member, err := s.guard.RequireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if msg.MemberID != member.ID {
		return nil, ErrNotMessageAuthor
	}

	msg.Body = body
	if err := s.messageRepo.Update(ctx, msg); err != nil {
		return nil, fmt.Errorf("updating message: %w", err)
	}

	return s.messageRepo.GetByID(ctx, messageID)
}

// Remove deletes a message together with its thread replies and the
// reactions on all of them.
func (s *MessageService) Remove(ctx context.Context, userID, messageID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrMessageNotFound
	}

	member, err := s.guard.RequireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return err
	}
	if msg.MemberID != member.ID {
		return ErrNotMessageAuthor
	}

	replies, err := s.messageRepo.ListByParent(ctx, messageID)
	if err != nil {
		return fmt.Errorf("gathering replies: %w", err)
	}
	reactions, err := reactionsForMessages(ctx, s.reactionRepo, append(replies, *msg))
	if err != nil {
		return fmt.Errorf("gathering reactions: %w", err)
	}

	err = deleteSets(ctx, []deleteSet{
		{kind: "reaction", ids: reactionIDs(reactions), del: s.reactionRepo.Delete},
		{kind: "reply", ids: messageIDs(replies), del: s.messageRepo.Delete},
	})
	if err != nil {
		return err
	}

	return s.messageRepo.Delete(ctx, messageID)
}

func (s *MessageService) listPage(ctx context.Context, list func(limit int) ([]domain.Message, error), limit int) (*MessageListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	// Fetch limit+1 to learn whether more remain.
	messages, err := list(limit + 1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[len(messages)-limit:]
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	return &MessageListResponse{Messages: messages, HasMore: hasMore}, nil
}
