package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/pkg/joincode"
)

func TestWorkspaceCreateBootstraps(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	ws, member := f.addWorkspace(t, owner)

	if !joincode.Valid(ws.JoinCode) {
		t.Errorf("join code %q is not valid", ws.JoinCode)
	}
	if member.Role != domain.RoleAdmin {
		t.Errorf("creator role: got %q, want admin", member.Role)
	}

	ch := f.generalChannel(t, ws.ID)
	if ch.Name != domain.DefaultChannelName {
		t.Errorf("default channel: got %q, want %q", ch.Name, domain.DefaultChannelName)
	}
}

func TestWorkspaceJoin(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	joiner := f.addUser(t, "joiner")
	ws, _ := f.addWorkspace(t, owner)

	// Codes compare case-insensitively.
	member, err := f.workspaces.Join(context.Background(), joiner, ws.ID, strings.ToUpper(ws.JoinCode))
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if member.Role != domain.RoleMember {
		t.Errorf("joined role: got %q, want member", member.Role)
	}

	if _, err := f.workspaces.Join(context.Background(), joiner, ws.ID, ws.JoinCode); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("second join: got %v, want ErrAlreadyMember", err)
	}
}

func TestWorkspaceJoinBadCode(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	joiner := f.addUser(t, "joiner")
	ws, _ := f.addWorkspace(t, owner)

	if _, err := f.workspaces.Join(context.Background(), joiner, ws.ID, "zzzzzz"); !errors.Is(err, ErrBadJoinCode) {
		t.Errorf("Join with wrong code: got %v, want ErrBadJoinCode", err)
	}
}

func TestWorkspaceNewJoinCodeInvalidatesOld(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	joiner := f.addUser(t, "joiner")
	ws, _ := f.addWorkspace(t, owner)
	old := ws.JoinCode

	code, err := f.workspaces.NewJoinCode(context.Background(), owner, ws.ID)
	if err != nil {
		t.Fatalf("NewJoinCode: %v", err)
	}
	if code == old {
		t.Fatal("rotated code equals old code")
	}

	if _, err := f.workspaces.Join(context.Background(), joiner, ws.ID, old); !errors.Is(err, ErrBadJoinCode) {
		t.Errorf("Join with stale code: got %v, want ErrBadJoinCode", err)
	}
	if _, err := f.workspaces.Join(context.Background(), joiner, ws.ID, code); err != nil {
		t.Errorf("Join with rotated code: %v", err)
	}
}

func TestWorkspaceNewJoinCodeAdminOnly(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	regular := f.addUser(t, "regular")
	ws, _ := f.addWorkspace(t, owner)
	f.joinWorkspace(t, ws.ID, regular)

	if _, err := f.workspaces.NewJoinCode(context.Background(), regular, ws.ID); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("NewJoinCode as regular member: got %v, want ErrNotAdmin", err)
	}
}

func TestWorkspaceGetByIDFailSoft(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	outsider := f.addUser(t, "outsider")
	ws, _ := f.addWorkspace(t, owner)

	got, err := f.workspaces.GetByID(context.Background(), outsider, ws.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID for outsider: got %+v, want nil", got)
	}
}

func TestWorkspaceGetInfo(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	outsider := f.addUser(t, "outsider")
	ws, _ := f.addWorkspace(t, owner)

	info, err := f.workspaces.GetInfo(context.Background(), outsider, ws.ID)
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.Name != ws.Name || info.IsMember {
		t.Errorf("GetInfo for outsider: got %+v, want name %q and IsMember false", info, ws.Name)
	}

	info, err = f.workspaces.GetInfo(context.Background(), owner, ws.ID)
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if !info.IsMember {
		t.Error("GetInfo for member: IsMember false")
	}
}

func TestWorkspaceListByUser(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	other := f.addUser(t, "other")
	f.addWorkspace(t, owner)
	f.addWorkspace(t, other)

	workspaces, err := f.workspaces.ListByUser(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(workspaces) != 1 {
		t.Errorf("ListByUser: got %d workspaces, want 1", len(workspaces))
	}
}

func TestWorkspaceDeleteCascades(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	peer := f.addUser(t, "peer")
	ws, _ := f.addWorkspace(t, owner)
	peerMember := f.joinWorkspace(t, ws.ID, peer)
	ch := f.generalChannel(t, ws.ID)

	// Populate every dependent family.
	msg := f.postMessage(t, owner, ws.ID, ch.ID, "hello")
	if _, _, err := f.reactions.Toggle(ctx, peer, msg.ID, "👍"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := f.conversations.CreateOrGet(ctx, owner, ws.ID, peerMember.ID); err != nil {
		t.Fatalf("CreateOrGet: %v", err)
	}
	if _, err := f.events.Create(ctx, owner, ws.ID, CreateEventInput{Title: "Launch", Content: "ship it", Deadline: 4102444800000}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	res, err := f.resources.Upload(ctx, owner, ws.ID, UploadResourceInput{
		Name: "handbook", FileType: "pdf", ContentType: "application/pdf", Data: []byte("pdf-bytes"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	// A second workspace that must survive untouched.
	other := f.addUser(t, "other")
	otherWS, _ := f.addWorkspace(t, other)
	otherCh := f.generalChannel(t, otherWS.ID)
	f.postMessage(t, other, otherWS.ID, otherCh.ID, "keep me")

	if err := f.workspaces.Delete(ctx, owner, ws.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if got, _ := f.workspaceRepo.GetByID(ctx, ws.ID); got != nil {
		t.Error("workspace row survived")
	}
	if members, _ := f.memberRepo.ListByWorkspace(ctx, ws.ID); len(members) != 0 {
		t.Errorf("members survived: %d", len(members))
	}
	if channels, _ := f.channelRepo.ListByWorkspace(ctx, ws.ID); len(channels) != 0 {
		t.Errorf("channels survived: %d", len(channels))
	}
	if conversations, _ := f.convRepo.ListByWorkspace(ctx, ws.ID); len(conversations) != 0 {
		t.Errorf("conversations survived: %d", len(conversations))
	}
	if messages, _ := f.messageRepo.ListByWorkspace(ctx, ws.ID); len(messages) != 0 {
		t.Errorf("messages survived: %d", len(messages))
	}
	if reactions, _ := f.reactionRepo.ListByWorkspace(ctx, ws.ID); len(reactions) != 0 {
		t.Errorf("reactions survived: %d", len(reactions))
	}
	if events, _ := f.eventRepo.ListByWorkspace(ctx, ws.ID); len(events) != 0 {
		t.Errorf("events survived: %d", len(events))
	}
	if resources, _ := f.resourceRepo.ListByWorkspace(ctx, ws.ID); len(resources) != 0 {
		t.Errorf("resources survived: %d", len(resources))
	}
	if blob, _ := f.fileRepo.GetByID(ctx, res.FileID); blob != nil {
		t.Error("resource blob survived")
	}

	// The unrelated workspace kept its rows.
	if got, _ := f.workspaceRepo.GetByID(ctx, otherWS.ID); got == nil {
		t.Error("unrelated workspace deleted")
	}
	if messages, _ := f.messageRepo.ListByWorkspace(ctx, otherWS.ID); len(messages) != 1 {
		t.Errorf("unrelated messages: got %d, want 1", len(messages))
	}
}

func TestWorkspaceDeleteAdminOnly(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	regular := f.addUser(t, "regular")
	ws, _ := f.addWorkspace(t, owner)
	f.joinWorkspace(t, ws.ID, regular)

	if err := f.workspaces.Delete(context.Background(), regular, ws.ID); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("Delete as regular member: got %v, want ErrNotAdmin", err)
	}
}
