package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/optimistic"
	"tableflip.dev/jquest/pkg/store"
)

func (s *Service) Quests(ctx context.Context) ([]model.Quest, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	list, err := s.API.Quests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quests: %w", err)
	}
	s.Cache.SetQuests(list)
	s.saveSnapshot(store.CollectionQuests, list)
	return s.Cache.Quests(), nil
}

// CreateQuest starts a quest with no progress.
func (s *Service) CreateQuest(ctx context.Context, title, description string, goal int) (*model.Quest, error) {
	req := forms.NewQuest(title, description, goal)
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	q, err := s.API.CreateQuest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create quest: %w", err)
	}
	s.Cache.UpsertQuest(*q)
	s.saveSnapshot(store.CollectionQuests, s.Cache.Quests())
	return q, nil
}

func (s *Service) quest(ctx context.Context, id int64) (model.Quest, error) {
	if q, ok := s.Cache.Quest(id); ok {
		return q, nil
	}
	if _, err := s.Quests(ctx); err != nil {
		return model.Quest{}, err
	}
	if q, ok := s.Cache.Quest(id); ok {
		return q, nil
	}
	return model.Quest{}, fmt.Errorf("quest %d: %w", id, ErrNotFound)
}

// UpdateQuest applies patch optimistically. The status shown after success
// is the one the server returned.
func (s *Service) UpdateQuest(ctx context.Context, id int64, patch forms.QuestPatch) (*model.Quest, error) {
	if err := forms.Validate(patch); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	current, err := s.quest(ctx, id)
	if err != nil {
		return nil, err
	}
	next := patch.Apply(current)
	if next.Progress > next.Goal {
		return nil, &forms.ValidationError{Messages: []string{"Progress must not exceed the goal"}}
	}

	res := s.questEdits.Get(id, current)
	if !res.Phase().Pending() {
		res.Set(current)
	}
	got, err := res.Mutate(ctx, next, func(ctx context.Context, n model.Quest) (model.Quest, error) {
		s.Cache.UpsertQuest(n)
		q, err := s.API.UpdateQuest(ctx, id, patch)
		if err != nil {
			return model.Quest{}, err
		}
		return *q, nil
	})
	switch {
	case errors.Is(err, optimistic.ErrSuperseded), errors.Is(err, optimistic.ErrDetached):
		s.Log.Debug("quest edit discarded", zap.Int64("id", id), zap.Error(err))
		return nil, err
	case err != nil:
		s.Cache.UpsertQuest(res.Value())
		return nil, fmt.Errorf("update quest %d: %w", id, err)
	}
	s.Cache.UpsertQuest(got)
	s.saveSnapshot(store.CollectionQuests, s.Cache.Quests())
	return &got, nil
}

// CompleteQuest sets progress to the goal.
func (s *Service) CompleteQuest(ctx context.Context, id int64) (*model.Quest, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	current, err := s.quest(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateQuest(ctx, id, forms.CompleteQuest(current))
}
