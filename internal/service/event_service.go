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

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrBadEventStatus = errors.New("invalid event status")
)

type EventService struct {
	guard     *Guard
	eventRepo repository.EventRepository
}

func NewEventService(guard *Guard, eventRepo repository.EventRepository) *EventService {
	return &EventService{guard: guard, eventRepo: eventRepo}
}

type CreateEventInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Deadline int64  `json:"deadline"`
}

type UpdateEventInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Deadline *int64  `json:"deadline"`
	Status   *string `json:"status"`
}

// Create makes a pending event. Admin only; the creator recorded is the
// admin's member id, not the user id.
func (s *EventService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input CreateEventInput) (*domain.Event, error) {
	member, err := s.guard.Admin(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}

	ev := &domain.Event{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		CreatorID:   member.ID,
		Title:       input.Title,
		Content:     input.Content,
		Deadline:    input.Deadline,
		Status:      domain.EventPending,
		CreatedAt:   time.Now(),
	}
	if err := s.eventRepo.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return s.finishRead(ctx, ev.ID)
}

// Update patches any subset of title, content, deadline, and status.
// Status only changes through this path; nothing flips it automatically.
func (s *EventService) Update(ctx context.Context, userID, eventID uuid.UUID, input UpdateEventInput) (*domain.Event, error) {
	if input.Status != nil && *input.Status != domain.EventPending && *input.Status != domain.EventExpired {
		return nil, ErrBadEventStatus
	}

	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}

	if _, err := s.guard.Admin(ctx, userID, ev.WorkspaceID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		ev.Title = *input.Title
	}
	if input.Content != nil {
		ev.Content = *input.Content
	}
	if input.Deadline != nil {
		ev.Deadline = *input.Deadline
	}
	if input.Status != nil {
		ev.Status = *input.Status
	}

	if err := s.eventRepo.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}

	return s.finishRead(ctx, eventID)
}

func (s *EventService) Remove(ctx context.Context, userID, eventID uuid.UUID) error {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return ErrEventNotFound
	}

	if _, err := s.guard.Admin(ctx, userID, ev.WorkspaceID); err != nil {
		return err
	}

	return s.eventRepo.Delete(ctx, eventID)
}

// List returns the workspace's events nearest deadline first, with creator
// details. Non-members get an empty slice.
func (s *EventService) List(ctx context.Context, userID, workspaceID uuid.UUID) ([]domain.Event, error) {
	caller, err := s.guard.Member(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return []domain.Event{}, nil
	}

	events, err := s.eventRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}

	now := time.Now().UnixMilli()
	for i := range events {
		events[i].Expired = events[i].Deadline < now
	}
	return events, nil
}

// GetByID returns one event for members, (nil, nil) otherwise.
func (s *EventService) GetByID(ctx context.Context, userID, eventID uuid.UUID) (*domain.Event, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, nil
	}

	caller, err := s.guard.Member(ctx, userID, ev.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, nil
	}

	ev.Expired = ev.Deadline < time.Now().UnixMilli()
	return ev, nil
}

func (s *EventService) finishRead(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	ev, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	ev.Expired = ev.Deadline < time.Now().UnixMilli()
	return ev, nil
}
