package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestReactionToggle(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	ws, _ := f.addWorkspace(t, owner)
	ch := f.generalChannel(t, ws.ID)
	msg := f.postMessage(t, owner, ws.ID, ch.ID, "react to me")

	rx, added, err := f.reactions.Toggle(ctx, owner, msg.ID, "👍")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added || rx == nil {
		t.Fatalf("first toggle: got added=%v rx=%v, want added with reaction", added, rx)
	}

	// Same member, message, and value toggles off.
	rx, added, err = f.reactions.Toggle(ctx, owner, msg.ID, "👍")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added || rx != nil {
		t.Errorf("second toggle: got added=%v rx=%v, want removal", added, rx)
	}
	if rxs, _ := f.reactionRepo.ListByMessage(ctx, msg.ID); len(rxs) != 0 {
		t.Errorf("reactions after toggle off: got %d, want 0", len(rxs))
	}
}

func TestReactionDistinctValuesCoexist(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	owner := f.addUser(t, "owner")
	ws, _ := f.addWorkspace(t, owner)
	ch := f.generalChannel(t, ws.ID)
	msg := f.postMessage(t, owner, ws.ID, ch.ID, "hello")

	if _, _, err := f.reactions.Toggle(ctx, owner, msg.ID, "👍"); err != nil {
		t.Fatalf("toggle 👍: %v", err)
	}
	if _, _, err := f.reactions.Toggle(ctx, owner, msg.ID, "🎉"); err != nil {
		t.Fatalf("toggle 🎉: %v", err)
	}

	if rxs, _ := f.reactionRepo.ListByMessage(ctx, msg.ID); len(rxs) != 2 {
		t.Errorf("distinct values: got %d reactions, want 2", len(rxs))
	}
}

func TestReactionOutsiderRejected(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	outsider := f.addUser(t, "outsider")
	ws, _ := f.addWorkspace(t, owner)
	ch := f.generalChannel(t, ws.ID)
	msg := f.postMessage(t, owner, ws.ID, ch.ID, "hello")

	if _, _, err := f.reactions.Toggle(context.Background(), outsider, msg.ID, "👍"); !errors.Is(err, ErrNotMember) {
		t.Errorf("toggle by outsider: got %v, want ErrNotMember", err)
	}
}

func TestReactionMissingMessage(t *testing.T) {
	t.Parallel()
	f := newFixture()
	owner := f.addUser(t, "owner")
	f.addWorkspace(t, owner)

	if _, _, err := f.reactions.Toggle(context.Background(), owner, uuid.New(), "👍"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("toggle on missing message: got %v, want ErrMessageNotFound", err)
	}
}
