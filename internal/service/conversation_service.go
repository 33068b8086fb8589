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

type ConversationService struct {
	guard            *Guard
	conversationRepo repository.ConversationRepository
	memberRepo       repository.MemberRepository
}

func NewConversationService(
	guard *Guard,
	conversationRepo repository.ConversationRepository,
	memberRepo repository.MemberRepository,
) *ConversationService {
	return &ConversationService{
		guard:            guard,
		conversationRepo: conversationRepo,
		memberRepo:       memberRepo,
	}
}

// CreateOrGet resolves the single conversation for an unordered member pair,
// creating it on first use. The pair is stored in canonical order and the
// insert is idempotent, so concurrent calls for the same pair (in either
// orientation) converge on one row.
func (s *ConversationService) CreateOrGet(ctx context.Context, userID, workspaceID, otherMemberID uuid.UUID) (*domain.Conversation, error) {
	caller, err := s.guard.RequireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	other, err := s.memberRepo.GetByID(ctx, otherMemberID)
	if err != nil {
		return nil, err
	}
	if other == nil || other.WorkspaceID != workspaceID {
		return nil, ErrMemberNotFound
	}

	one, two := canonicalPair(caller.ID, other.ID)

	existing, err := s.conversationRepo.GetByMembers(ctx, workspaceID, one, two)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		MemberOneID: one,
		MemberTwoID: two,
		CreatedAt:   time.Now(),
	}
	if err := s.conversationRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	// Re-select: a concurrent call may have won the insert.
	created, err := s.conversationRepo.GetByMembers(ctx, workspaceID, one, two)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, errors.New("conversation vanished after insert")
	}
	return created, nil
}

// canonicalPair orders two member ids so any unordered pair maps to exactly
// one (memberOne, memberTwo).
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
