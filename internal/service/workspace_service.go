package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
	"github.com/huddleapp/huddle/pkg/joincode"
	"golang.org/x/sync/errgroup"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrAlreadyMember     = errors.New("already a member of this workspace")
	ErrBadJoinCode       = errors.New("invalid join code")
)

type WorkspaceService struct {
	guard            *Guard
	workspaceRepo    repository.WorkspaceRepository
	memberRepo       repository.MemberRepository
	channelRepo      repository.ChannelRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	reactionRepo     repository.ReactionRepository
	eventRepo        repository.EventRepository
	resourceRepo     repository.ResourceRepository
	fileRepo         repository.FileRepository
}

func NewWorkspaceService(
	guard *Guard,
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.MemberRepository,
	channelRepo repository.ChannelRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
	eventRepo repository.EventRepository,
	resourceRepo repository.ResourceRepository,
	fileRepo repository.FileRepository,
) *WorkspaceService {
	return &WorkspaceService{
		guard:            guard,
		workspaceRepo:    workspaceRepo,
		memberRepo:       memberRepo,
		channelRepo:      channelRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		reactionRepo:     reactionRepo,
		eventRepo:        eventRepo,
		resourceRepo:     resourceRepo,
		fileRepo:         fileRepo,
	}
}

// Create makes the workspace, its creator's admin membership, and the
// "general" channel, in that order.
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Workspace, error) {
	ws := &domain.Workspace{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		OwnerID:   userID,
		JoinCode:  joincode.Generate(),
		CreatedAt: time.Now(),
	}
	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	member := &domain.Member{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        domain.RoleAdmin,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("adding creator as admin: %w", err)
	}

	general := &domain.Channel{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		Name:        domain.DefaultChannelName,
		CreatedAt:   time.Now(),
	}
	if err := s.channelRepo.Create(ctx, general); err != nil {
		return nil, fmt.Errorf("creating default channel: %w", err)
	}

	return ws, nil
}

// Join enrolls the caller as a regular member when the presented code matches
// the workspace's current one (case-insensitively). Joining a workspace you
// already belong to is a conflict, not a no-op.
func (s *WorkspaceService) Join(ctx context.Context, userID, workspaceID uuid.UUID, code string) (*domain.Member, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	if !joincode.Matches(ws.JoinCode, code) {
		return nil, ErrBadJoinCode
	}

	existing, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	member := &domain.Member{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        domain.RoleMember,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}

	return member, nil
}

// NewJoinCode rotates the code. The old code stops working immediately.
func (s *WorkspaceService) NewJoinCode(ctx context.Context, userID, workspaceID uuid.UUID) (string, error) {
	if _, err := s.guard.Admin(ctx, userID, workspaceID); err != nil {
		return "", err
	}

	code := joincode.Generate()
	if err := s.workspaceRepo.UpdateJoinCode(ctx, workspaceID, code); err != nil {
		return "", fmt.Errorf("rotating join code: %w", err)
	}
	return code, nil
}

func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []domain.Workspace{}
	}
	return workspaces, nil
}

// GetByID returns the workspace for members and (nil, nil) for everyone
// else: viewing degrades, it does not error.
func (s *WorkspaceService) GetByID(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	member, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}

	return s.workspaceRepo.GetByID(ctx, workspaceID)
}

// GetInfo is the pre-join lookup: name plus whether the caller already
// belongs. No join code leaks here.
func (s *WorkspaceService) GetInfo(ctx context.Context, userID, workspaceID uuid.UUID) (*domain.WorkspaceInfo, error) {
	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	member, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	return &domain.WorkspaceInfo{Name: ws.Name, IsMember: member != nil}, nil
}

func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID uuid.UUID, name string) (*domain.Workspace, error) {
	if _, err := s.guard.Admin(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.UpdateName(ctx, workspaceID, strings.TrimSpace(name)); err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	ws, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}
	return ws, nil
}

// Delete cascades to everything scoped to the workspace: messages,
// reactions, conversations, channels, members, events, and resources with
// their blobs. The dependent sets are gathered concurrently, deleted in parallel
// (none of them reference each other), and the workspace row goes last.
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if _, err := s.guard.Admin(ctx, userID, workspaceID); err != nil {
		return err
	}

	var (
		members       []domain.Member
		channels      []domain.Channel
		conversations []domain.Conversation
		messages      []domain.Message
		reactions     []domain.Reaction
		events        []domain.Event
		resources     []domain.Resource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.memberRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		channels, err = s.channelRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		conversations, err = s.conversationRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		messages, err = s.messageRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		reactions, err = s.reactionRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.eventRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		resources, err = s.resourceRepo.ListByWorkspace(gctx, workspaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("gathering workspace dependents: %w", err)
	}

	fileByResource := make(map[uuid.UUID]uuid.UUID, len(resources))
	for _, res := range resources {
		fileByResource[res.ID] = res.FileID
	}

	err := deleteSets(ctx, []deleteSet{
		{kind: "message", ids: messageIDs(messages), del: s.messageRepo.Delete},
		{kind: "reaction", ids: reactionIDs(reactions), del: s.reactionRepo.Delete},
		{kind: "conversation", ids: conversationIDs(conversations), del: s.conversationRepo.Delete},
		{kind: "channel", ids: channelIDs(channels), del: s.channelRepo.Delete},
		{kind: "member", ids: memberIDs(members), del: s.memberRepo.Delete},
		{kind: "event", ids: eventIDs(events), del: s.eventRepo.Delete},
		{kind: "resource", ids: resourceIDs(resources), del: func(ctx context.Context, id uuid.UUID) error {
			// Blob first, then the row, same order as single-resource removal.
			if err := s.fileRepo.Delete(ctx, fileByResource[id]); err != nil {
				return err
			}
			return s.resourceRepo.Delete(ctx, id)
		}},
	})
	if err != nil {
		return err
	}

	return s.workspaceRepo.Delete(ctx, workspaceID)
}
