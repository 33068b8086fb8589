package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
)

var ErrChannelNotFound = errors.New("channel not found")

type ChannelService struct {
	guard        *Guard
	channelRepo  repository.ChannelRepository
	messageRepo  repository.MessageRepository
	reactionRepo repository.ReactionRepository
}

func NewChannelService(
	guard *Guard,
	channelRepo repository.ChannelRepository,
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
) *ChannelService {
	return &ChannelService{
		guard:        guard,
		channelRepo:  channelRepo,
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *ChannelService) Create(ctx context.Context, userID, workspaceID uuid.UUID, name string) (*domain.Channel, error) {
	if _, err := s.guard.Admin(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	ch := &domain.Channel{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        normalizeChannelName(name),
		CreatedAt:   time.Now(),
	}
	if err := s.channelRepo.Create(ctx, ch); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}
	return ch, nil
}

// List returns the workspace's channels, or an empty slice for non-members.
func (s *ChannelService) List(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Channel, error) {
	caller, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return []domain.Channel{}, nil
	}

	channels, err := s.channelRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []domain.Channel{}
	}
	return channels, nil
}

// GetByID returns the channel for workspace members, (nil, nil) otherwise.
func (s *ChannelService) GetByID(ctx context.Context, userID, channelID uuid.UUID) (*domain.Channel, error) {
	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, nil
	}

	caller, err := s.guard.Member(ctx, userID, ch.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, nil
	}

	return ch, nil
}

func (s *ChannelService) Update(ctx context.Context, userID, channelID uuid.UUID, name string) (*domain.Channel, error) {
	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	if _, err := s.guard.Admin(ctx, userID, ch.WorkspaceID); err != nil {
		return nil, err
	}

	ch.Name = normalizeChannelName(name)
	if err := s.channelRepo.UpdateName(ctx, channelID, ch.Name); err != nil {
		return nil, fmt.Errorf("updating channel: %w", err)
	}
	return ch, nil
}

// Remove deletes a channel together with every message in it and the
// reactions on those messages.
func (s *ChannelService) Remove(ctx context.Context, userID, channelID uuid.UUID) error {
	ch, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	if ch == nil {
		return ErrChannelNotFound
	}

	if _, err := s.guard.Admin(ctx, userID, ch.WorkspaceID); err != nil {
		return err
	}

	messages, err := s.messageRepo.ListAllByChannel(ctx, channelID)
	if err != nil {
		return fmt.Errorf("gathering channel messages: %w", err)
	}
	reactions, err := reactionsForMessages(ctx, s.reactionRepo, messages)
	if err != nil {
		return fmt.Errorf("gathering channel reactions: %w", err)
	}

	err = deleteSets(ctx, []deleteSet{
		{kind: "message", ids: messageIDs(messages), del: s.messageRepo.Delete},
		{kind: "reaction", ids: reactionIDs(reactions), del: s.reactionRepo.Delete},
	})
	if err != nil {
		return err
	}

	return s.channelRepo.Delete(ctx, channelID)
}

var channelNameSpaces = regexp.MustCompile(`\s+`)

// normalizeChannelName lowercases and replaces whitespace runs with dashes,
// so "Project Updates" becomes "project-updates".
func normalizeChannelName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return channelNameSpaces.ReplaceAllString(name, "-")
}
