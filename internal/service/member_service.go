package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrAdminRemoval   = errors.New("admin members cannot be removed; demote them first")
	ErrLastAdmin      = errors.New("a workspace must keep at least one admin")
)

type MemberService struct {
	guard            *Guard
	memberRepo       repository.MemberRepository
	messageRepo      repository.MessageRepository
	reactionRepo     repository.ReactionRepository
	conversationRepo repository.ConversationRepository
}

func NewMemberService(
	guard *Guard,
	memberRepo repository.MemberRepository,
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
	conversationRepo repository.ConversationRepository,
) *MemberService {
	return &MemberService{
		guard:            guard,
		memberRepo:       memberRepo,
		messageRepo:      messageRepo,
		reactionRepo:     reactionRepo,
		conversationRepo: conversationRepo,
	}
}

// List returns all members of the workspace with user details, or an empty
// slice when the caller is not a member.
func (s *MemberService) List(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Member, error) {
	caller, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return []domain.Member{}, nil
	}

	members, err := s.memberRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// GetByID returns a member with user details, (nil, nil) when it does not
// exist or the caller is not in the same workspace.
func (s *MemberService) GetByID(ctx context.Context, userID, memberID uuid.UUID) (*domain.Member, error) {
	target, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}

	caller, err := s.guard.Member(ctx, userID, target.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, nil
	}

	return target, nil
}

// Current returns the caller's own membership, (nil, nil) when absent.
func (s *MemberService) Current(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	return s.guard.Member(ctx, userID, workspaceID)
}

// UpdateRole changes a member's role. Admin-gated; demoting the only
// remaining admin is rejected so a workspace never ends up adminless.
func (s *MemberService) UpdateRole(ctx context.Context, userID, memberID uuid.UUID, role string) (*domain.Member, error) {
	target, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrMemberNotFound
	}

	if _, err := s.guard.Admin(ctx, userID, target.WorkspaceID); err != nil {
		return nil, err
	}

	if target.Role == domain.RoleAdmin && role == domain.RoleMember {
		admins, err := s.memberRepo.CountAdmins(ctx, target.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}

	if err := s.memberRepo.UpdateRole(ctx, memberID, role); err != nil {
		return nil, fmt.Errorf("updating member role: %w", err)
	}

	return s.memberRepo.GetByID(ctx, memberID)
}

// Remove deletes a membership and cascades to that member's messages,
// reactions, and conversations (either side). Any member may remove a
// non-admin member, themselves included (leaving a workspace); members
// holding the admin role can never be removed through this path.
func (s *MemberService) Remove(ctx context.Context, userID, memberID uuid.UUID) error {
	target, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}

	if _, err := s.guard.RequireMember(ctx, userID, target.WorkspaceID); err != nil {
		return err
	}

	if target.Role == domain.RoleAdmin {
		return ErrAdminRemoval
	}

	var (
		messages      []domain.Message
		reactions     []domain.Reaction
		conversations []domain.Conversation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		messages, err = s.messageRepo.ListByMember(gctx, memberID)
		return err
	})
	g.Go(func() (err error) {
		reactions, err = s.reactionRepo.ListByMember(gctx, memberID)
		return err
	})
	g.Go(func() (err error) {
		conversations, err = s.conversationRepo.ListByMember(gctx, memberID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("gathering member dependents: %w", err)
	}

	err = deleteSets(ctx, []deleteSet{
		{kind: "message", ids: messageIDs(messages), del: s.messageRepo.Delete},
		{kind: "reaction", ids: reactionIDs(reactions), del: s.reactionRepo.Delete},
		{kind: "conversation", ids: conversationIDs(conversations), del: s.conversationRepo.Delete},
	})
	if err != nil {
		return err
	}

	return s.memberRepo.Delete(ctx, memberID)
}
