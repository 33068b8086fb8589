package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
)

// fixture wires every service against shared in-memory repositories, the
// same shape main assembles against Postgres.
type fixture struct {
	users         *fakeUserRepo
	workspaceRepo *fakeWorkspaceRepo
	memberRepo    *fakeMemberRepo
	channelRepo   *fakeChannelRepo
	convRepo      *fakeConversationRepo
	messageRepo   *fakeMessageRepo
	reactionRepo  *fakeReactionRepo
	eventRepo     *fakeEventRepo
	resourceRepo  *fakeResourceRepo
	fileRepo      *fakeFileRepo

	guard         *Guard
	workspaces    *WorkspaceService
	members       *MemberService
	channels      *ChannelService
	conversations *ConversationService
	messages      *MessageService
	reactions     *ReactionService
	events        *EventService
	resources     *ResourceService
}

func newFixture() *fixture {
	f := &fixture{
		users:        newFakeUserRepo(),
		memberRepo:   newFakeMemberRepo(),
		channelRepo:  newFakeChannelRepo(),
		convRepo:     newFakeConversationRepo(),
		messageRepo:  newFakeMessageRepo(),
		reactionRepo: newFakeReactionRepo(),
		eventRepo:    newFakeEventRepo(),
		resourceRepo: newFakeResourceRepo(),
		fileRepo:     newFakeFileRepo(),
	}
	f.workspaceRepo = newFakeWorkspaceRepo(f.memberRepo)

	f.guard = NewGuard(f.memberRepo)
	f.workspaces = NewWorkspaceService(
		f.guard, f.workspaceRepo, f.memberRepo, f.channelRepo, f.convRepo,
		f.messageRepo, f.reactionRepo, f.eventRepo, f.resourceRepo, f.fileRepo,
	)
	f.members = NewMemberService(f.guard, f.memberRepo, f.messageRepo, f.reactionRepo, f.convRepo)
	f.channels = NewChannelService(f.guard, f.channelRepo, f.messageRepo, f.reactionRepo)
	f.conversations = NewConversationService(f.guard, f.convRepo, f.memberRepo)
	f.messages = NewMessageService(f.guard, f.messageRepo, f.channelRepo, f.convRepo, f.reactionRepo)
	f.reactions = NewReactionService(f.guard, f.reactionRepo, f.messageRepo)
	f.events = NewEventService(f.guard, f.eventRepo)
	f.resources = NewResourceService(f.guard, f.resourceRepo, f.fileRepo)
	return f
}

func (f *fixture) addUser(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("creating user %s: %v", name, err)
	}
	return u.ID
}

// addWorkspace creates a workspace owned by ownerID and returns it along
// with the owner's admin membership.
func (f *fixture) addWorkspace(t *testing.T, ownerID uuid.UUID) (*domain.Workspace, *domain.Member) {
	t.Helper()
	ws, err := f.workspaces.Create(context.Background(), ownerID, "Acme")
	if err != nil {
		t.Fatalf("creating workspace: %v", err)
	}
	member, err := f.memberRepo.GetByWorkspaceAndUser(context.Background(), ws.ID, ownerID)
	if err != nil || member == nil {
		t.Fatalf("owner membership missing: %v", err)
	}
	return ws, member
}

// joinWorkspace enrolls userID with the current join code and returns the
// new membership.
func (f *fixture) joinWorkspace(t *testing.T, wsID, userID uuid.UUID) *domain.Member {
	t.Helper()
	ws, err := f.workspaceRepo.GetByID(context.Background(), wsID)
	if err != nil || ws == nil {
		t.Fatalf("workspace missing: %v", err)
	}
	member, err := f.workspaces.Join(context.Background(), userID, wsID, ws.JoinCode)
	if err != nil {
		t.Fatalf("joining workspace: %v", err)
	}
	return member
}

// generalChannel returns the default channel created with the workspace.
func (f *fixture) generalChannel(t *testing.T, wsID uuid.UUID) *domain.Channel {
	t.Helper()
	channels, err := f.channelRepo.ListByWorkspace(context.Background(), wsID)
	if err != nil || len(channels) == 0 {
		t.Fatalf("default channel missing: %v", err)
	}
	return &channels[0]
}

// postMessage creates a top-level channel message as userID.
func (f *fixture) postMessage(t *testing.T, userID, wsID, channelID uuid.UUID, body string) *domain.Message {
	t.Helper()
	msg, err := f.messages.Create(context.Background(), userID, CreateMessageInput{
		WorkspaceID: wsID,
		ChannelID:   &channelID,
		Body:        body,
	})
	if err != nil {
		t.Fatalf("posting message: %v", err)
	}
	return msg
}
