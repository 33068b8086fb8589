package service

import (
	"context"
	"errors"
	"testing"
)

func TestConversationCreateOrGetConverges(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	peer := f.addUser(t, "peer")
	ws, ownerMember := f.addWorkspace(t, owner)
	peerMember := f.joinWorkspace(t, ws.ID, peer)

	first, err := f.conversations.CreateOrGet(ctx, owner, ws.ID, peerMember.ID)
	if err != nil {
		t.Fatalf("CreateOrGet owner->peer: %v", err)
	}

	// The opposite orientation resolves to the same row.
	second, err := f.conversations.CreateOrGet(ctx, peer, ws.ID, ownerMember.ID)
	if err != nil {
		t.Fatalf("CreateOrGet peer->owner: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("orientations diverged: %s vs %s", first.ID, second.ID)
	}

	if first.MemberOneID.String() > first.MemberTwoID.String() {
		t.Errorf("pair not canonical: %s > %s", first.MemberOneID, first.MemberTwoID)
	}

	all, err := f.convRepo.ListByWorkspace(ctx, ws.ID)
	if err != nil {
		t.Fatalf("ListByWorkspace: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("conversation rows: got %d, want 1", len(all))
	}
}

func TestConversationSelf(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	ws, ownerMember := f.addWorkspace(t, owner)

	// A notes-to-self conversation is a pair of the same member.
	conv, err := f.conversations.CreateOrGet(context.Background(), owner, ws.ID, ownerMember.ID)
	if err != nil {
		t.Fatalf("CreateOrGet self: %v", err)
	}
	if conv.MemberOneID != ownerMember.ID || conv.MemberTwoID != ownerMember.ID {
		t.Errorf("self conversation pair: got (%s, %s)", conv.MemberOneID, conv.MemberTwoID)
	}
}

func TestConversationOtherMemberWrongWorkspace(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	other := f.addUser(t, "other")
	ws, _ := f.addWorkspace(t, owner)
	_, otherMember := f.addWorkspace(t, other)

	if _, err := f.conversations.CreateOrGet(context.Background(), owner, ws.ID, otherMember.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("cross-workspace member: got %v, want ErrMemberNotFound", err)
	}
}

func TestConversationCallerMustBeMember(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	outsider := f.addUser(t, "outsider")
	ws, ownerMember := f.addWorkspace(t, owner)

	if _, err := f.conversations.CreateOrGet(context.Background(), outsider, ws.ID, ownerMember.ID); !errors.Is(err, ErrNotMember) {
		t.Errorf("outsider caller: got %v, want ErrNotMember", err)
	}
}
