package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/internal/domain"
	"github.com/huddleapp/huddle/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Cascade deletion: when a parent entity goes, every row that references it
// goes too. Each parent kind lists its dependent sets explicitly; the sets
// are independent of each other, so their deletions run in parallel. Each
// row delete is retried with backoff before the cascade reports failure.
// There is no compensation: rows already deleted stay deleted, and the
// parent row is only removed after every dependent set succeeded.

const (
	cascadeAttempts    = 3
	cascadeBackoff     = 50 * time.Millisecond
	cascadeConcurrency = 8
)

// deleteSet is one family of rows that reference the parent being removed.
type deleteSet struct {
	kind string
	ids  []uuid.UUID
	del  func(ctx context.Context, id uuid.UUID) error
}

func deleteSets(ctx context.Context, sets []deleteSet) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cascadeConcurrency)

	for _, set := range sets {
		for _, id := range set.ids {
			g.Go(func() error {
				if err := deleteWithRetry(ctx, set.del, id); err != nil {
					return fmt.Errorf("deleting %s %s: %w", set.kind, id, err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

func deleteWithRetry(ctx context.Context, del func(context.Context, uuid.UUID) error, id uuid.UUID) error {
	var err error
	for attempt := 0; attempt < cascadeAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cascadeBackoff << (attempt - 1)):
			}
		}
		if err = del(ctx, id); err == nil {
			return nil
		}
	}
	return err
}

// reactionsForMessages gathers the reactions of many messages concurrently.
func reactionsForMessages(ctx context.Context, reactionRepo repository.ReactionRepository, messages []domain.Message) ([]domain.Reaction, error) {
	results := make([][]domain.Reaction, len(messages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cascadeConcurrency)
	for i, msg := range messages {
		g.Go(func() error {
			reactions, err := reactionRepo.ListByMessage(ctx, msg.ID)
			if err != nil {
				return err
			}
			results[i] = reactions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Reaction
	for _, reactions := range results {
		all = append(all, reactions...)
	}
	return all, nil
}

func messageIDs(messages []domain.Message) []uuid.UUID {
	ids := make([]uuid.UUID, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}
	return ids
}

func reactionIDs(reactions []domain.Reaction) []uuid.UUID {
	ids := make([]uuid.UUID, len(reactions))
	for i, r := range reactions {
		ids[i] = r.ID
	}
	return ids
}

func conversationIDs(conversations []domain.Conversation) []uuid.UUID {
	ids := make([]uuid.UUID, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ID
	}
	return ids
}

func channelIDs(channels []domain.Channel) []uuid.UUID {
	ids := make([]uuid.UUID, len(channels))
	for i, c := range channels {
		ids[i] = c.ID
	}
	return ids
}

func memberIDs(members []domain.Member) []uuid.UUID {
	ids := make([]uuid.UUID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}

func eventIDs(events []domain.Event) []uuid.UUID {
	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func resourceIDs(resources []domain.Resource) []uuid.UUID {
	ids := make([]uuid.UUID, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	return ids
}
