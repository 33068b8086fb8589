package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
)

// In-memory repositories for service tests. Cascade deletions hit these from
// many goroutines at once, so every fake locks around its map.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

type fakeWorkspaceRepo struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]domain.Workspace
	members    *fakeMemberRepo
}

func newFakeWorkspaceRepo(members *fakeMemberRepo) *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]domain.Workspace), members: members}
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *domain.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces[ws.ID] = *ws
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.workspaces[id]; ok {
		return &ws, nil
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Workspace
	for _, ws := range r.workspaces {
		m, _ := r.members.GetByWorkspaceAndUser(ctx, ws.ID, userID)
		if m != nil {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws := r.workspaces[id]
	ws.Name = name
	r.workspaces[id] = ws
	return nil
}

func (r *fakeWorkspaceRepo) UpdateJoinCode(_ context.Context, id uuid.UUID, joinCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws := r.workspaces[id]
	ws.JoinCode = joinCode
	r.workspaces[id] = ws
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, id)
	return nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID]domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID]domain.Member)}
}

func (r *fakeMemberRepo) Create(_ context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = *m
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *fakeMemberRepo) GetByWorkspaceAndUser(_ context.Context, workspaceID, userID uuid.UUID) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID && m.UserID == userID {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Member
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) CountAdmins(_ context.Context, workspaceID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.members {
		if m.WorkspaceID == workspaceID && m.Role == domain.RoleAdmin {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.members[id]
	m.Role = role
	r.members[id] = m
	return nil
}

func (r *fakeMemberRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return nil
}

type fakeChannelRepo struct {
	mu       sync.Mutex
	channels map[uuid.UUID]domain.Channel
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[uuid.UUID]domain.Channel)}
}

func (r *fakeChannelRepo) Create(_ context.Context, ch *domain.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.ID] = *ch
	return nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ch, ok := r.channels[id]; ok {
		return &ch, nil
	}
	return nil, nil
}

func (r *fakeChannelRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Channel
	for _, ch := range r.channels {
		if ch.WorkspaceID == workspaceID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (r *fakeChannelRepo) UpdateName(_ context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := r.channels[id]
	ch.Name = name
	r.channels[id] = ch
	return nil
}

func (r *fakeChannelRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, id)
	return nil
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[uuid.UUID]domain.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]domain.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.WorkspaceID == conv.WorkspaceID && c.MemberOneID == conv.MemberOneID && c.MemberTwoID == conv.MemberTwoID {
			return nil // pair row already exists
		}
	}
	r.conversations[conv.ID] = *conv
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conversations[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeConversationRepo) GetByMembers(_ context.Context, workspaceID, memberOneID, memberTwoID uuid.UUID) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.WorkspaceID == workspaceID && c.MemberOneID == memberOneID && c.MemberTwoID == memberTwoID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, c := range r.conversations {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, c := range r.conversations {
		if c.MemberOneID == memberID || c.MemberTwoID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[uuid.UUID]domain.Message
	seq      map[uuid.UUID]int
	next     int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{
		messages: make(map[uuid.UUID]domain.Message),
		seq:      make(map[uuid.UUID]int),
	}
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = *msg
	r.next++
	r.seq[msg.ID] = r.next
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

// chronological returns matching messages in insertion order, honoring the
// before cursor and keeping only the newest limit rows, like the SQL pager.
func (r *fakeMessageRepo) chronological(match func(domain.Message) bool, before *uuid.UUID, limit int) []domain.Message {
	var out []domain.Message
	for _, m := range r.messages {
		if match(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.seq[out[i].ID] < r.seq[out[j].ID] })

	if before != nil {
		cutoff := r.seq[*before]
		kept := out[:0]
		for _, m := range out {
			if r.seq[m.ID] < cutoff {
				kept = append(kept, m)
			}
		}
		out = kept
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func (r *fakeMessageRepo) ListByChannel(_ context.Context, channelID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.ChannelID != nil && *m.ChannelID == channelID && m.ParentMessageID == nil
	}, before, limit), nil
}

func (r *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID, before *uuid.UUID, limit int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.ConversationID != nil && *m.ConversationID == conversationID && m.ParentMessageID == nil
	}, before, limit), nil
}

func (r *fakeMessageRepo) ListByParent(_ context.Context, parentMessageID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.ParentMessageID != nil && *m.ParentMessageID == parentMessageID
	}, nil, 0), nil
}

func (r *fakeMessageRepo) ListAllByChannel(_ context.Context, channelID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.ChannelID != nil && *m.ChannelID == channelID
	}, nil, 0), nil
}

func (r *fakeMessageRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.WorkspaceID == workspaceID
	}, nil, 0), nil
}

func (r *fakeMessageRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chronological(func(m domain.Message) bool {
		return m.MemberID == memberID
	}, nil, 0), nil
}

func (r *fakeMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[msg.ID] = *msg
	return nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, id)
	return nil
}

type fakeReactionRepo struct {
	mu        sync.Mutex
	reactions map[uuid.UUID]domain.Reaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[uuid.UUID]domain.Reaction)}
}

func (r *fakeReactionRepo) Create(_ context.Context, rx *domain.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reactions[rx.ID] = *rx
	return nil
}

func (r *fakeReactionRepo) Get(_ context.Context, messageID, memberID uuid.UUID, value string) (*domain.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rx := range r.reactions {
		if rx.MessageID == messageID && rx.MemberID == memberID && rx.Value == value {
			return &rx, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) ListByMessage(_ context.Context, messageID uuid.UUID) ([]domain.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reaction
	for _, rx := range r.reactions {
		if rx.MessageID == messageID {
			out = append(out, rx)
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reaction
	for _, rx := range r.reactions {
		if rx.WorkspaceID == workspaceID {
			out = append(out, rx)
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]domain.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reaction
	for _, rx := range r.reactions {
		if rx.MemberID == memberID {
			out = append(out, rx)
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reactions, id)
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]domain.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]domain.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, ev *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.ID] = *ev
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev, ok := r.events[id]; ok {
		return &ev, nil
	}
	return nil, nil
}

func (r *fakeEventRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	for _, ev := range r.events {
		if ev.WorkspaceID == workspaceID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, ev *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.ID] = *ev
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

type fakeResourceRepo struct {
	mu        sync.Mutex
	resources map[uuid.UUID]domain.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: make(map[uuid.UUID]domain.Resource)}
}

func (r *fakeResourceRepo) Create(_ context.Context, res *domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.ID] = *res
	return nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.resources[id]; ok {
		return &res, nil
	}
	return nil, nil
}

func (r *fakeResourceRepo) ListByWorkspace(_ context.Context, workspaceID uuid.UUID) ([]domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Resource
	for _, res := range r.resources {
		if res.WorkspaceID == workspaceID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resources, id)
	return nil
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files map[uuid.UUID]domain.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[uuid.UUID]domain.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, f *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[f.ID] = *f
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}
