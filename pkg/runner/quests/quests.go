package quests

import (
	"context"
	"sort"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner"
)

const CompleteFailedMessage = "Failed to complete quest."

// List prints the quest board. Status filters when set.
type List struct {
	Status  model.QuestStatus
	Service *app.Service
	runner.Output
}

func (n *List) Do(ctx context.Context) error {
	all, err := n.Service.Quests(ctx)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	list := make([]model.Quest, 0, len(all))
	for _, q := range all {
		if n.Status == "" || q.Status == n.Status {
			list = append(list, q)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Ratio() > list[j].Ratio()
	})
	if n.Structured() {
		return n.Encode(list)
	}
	pp := n.Pretty()
	pp.TitleWithCount("Quests", len(list), "quest")
	pp.Quests(list...)
	return nil
}

type Add struct {
	Title       string
	Description string
	Goal        int

	Service *app.Service
	runner.Output
}

func (n *Add) Do(ctx context.Context) error {
	q, err := n.Service.CreateQuest(ctx, n.Title, n.Description, n.Goal)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	return n.show(q)
}

func (n *Add) show(q *model.Quest) error {
	if n.Structured() {
		return n.Encode(q)
	}
	n.Pretty().Quests(*q)
	return nil
}

// Edit sends only the fields in Patch.
type Edit struct {
	ID    int64
	Patch forms.QuestPatch

	Service *app.Service
	runner.Output
}

func (n *Edit) Do(ctx context.Context) error {
	q, err := n.Service.UpdateQuest(ctx, n.ID, n.Patch)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(q)
	}
	n.Pretty().Quests(*q)
	return nil
}

type Complete struct {
	ID      int64
	Service *app.Service
	runner.Output
}

func (n *Complete) Do(ctx context.Context) error {
	q, err := n.Service.CompleteQuest(ctx, n.ID)
	if err != nil {
		return runner.Failure(n.Output, err, CompleteFailedMessage)
	}
	if n.Structured() {
		return n.Encode(q)
	}
	pp := n.Pretty()
	if q.Status == model.QuestCompleted {
		pp.Notice("Quest complete!")
	}
	pp.Quests(*q)
	return nil
}
