package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
)

var (
	ErrNotMember = errors.New("not a member of this workspace")
	ErrNotAdmin  = errors.New("admin role required")
)

// Guard centralizes the membership and role checks that gate every operation:
// resolve the caller's member record for a workspace, then optionally require
// the admin role. The role check never runs before membership resolution, so
// outsiders learn nothing about roles.
//
// Queries and mutations want different failure shapes. Member is the
// fail-soft form (viewing degrades to nothing); RequireMember and Admin are
// the fail-hard forms (writing is rejected loudly).
type Guard struct {
	memberRepo repository.MemberRepository
}

func NewGuard(memberRepo repository.MemberRepository) *Guard {
	return &Guard{memberRepo: memberRepo}
}

// Member resolves the caller's membership, returning (nil, nil) when the
// caller does not belong to the workspace.
func (g *Guard) Member(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	return g.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
}

// RequireMember resolves the caller's membership, returning ErrNotMember when
// absent.
func (g *Guard) RequireMember(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	member, err := g.memberRepo.GetByWorkspaceAndUser(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}
	return member, nil
}

// Admin requires membership with the admin role. Non-members get
// ErrNotMember, members without the role get ErrNotAdmin.
func (g *Guard) Admin(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Member, error) {
	member, err := g.RequireMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if member.Role != domain.RoleAdmin {
		return nil, ErrNotAdmin
	}
	return member, nil
}
