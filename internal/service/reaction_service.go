package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
)

type ReactionService struct {
	guard        *Guard
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
}

func NewReactionService(
	guard *Guard,
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
) *ReactionService {
	return &ReactionService{
		guard:        guard,
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
	}
}

// Toggle adds the caller's reaction to a message, or removes it when the
// same (member, message, value) already exists. Returns the reaction and
// true when added, (nil, false) when removed.
func (s *ReactionService) Toggle(ctx context.Context, userID, messageID uuid.UUID, value string) (*domain.Reaction, bool, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, false, err
	}
	if msg == nil {
		return nil, false, ErrMessageNotFound
	}

	member, err := s.guard.RequireMember(ctx, userID, msg.WorkspaceID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.reactionRepo.Get(ctx, messageID, member.ID, value)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, false, fmt.Errorf("removing reaction: %w", err)
		}
		return nil, false, nil
	}

	rx := &domain.Reaction{
		ID:          uuid.New(),
		WorkspaceID: msg.WorkspaceID,
		MessageID:   messageID,
		MemberID:    member.ID,
		Value:       value,
		CreatedAt:   time.Now(),
	}
	if err := s.reactionRepo.Create(ctx, rx); err != nil {
		return nil, false, fmt.Errorf("adding reaction: %w", err)
	}
	return rx, true, nil
}
