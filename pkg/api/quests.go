package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
)

const questsPath = "/api/v1/quests"

type questEnvelope struct {
	Quest interface{} `json:"quest"`
}

func (c *Client) Quests(ctx context.Context) ([]model.Quest, error) {
	var out []model.Quest
	if err := c.Do(ctx, http.MethodGet, questsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuest posts a new quest.
func (c *Client) CreateQuest(ctx context.Context, req forms.QuestRequest) (*model.Quest, error) {
	var out model.Quest
	if err := c.Do(ctx, http.MethodPost, questsPath, questEnvelope{Quest: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuest sends only the fields set on patch. The returned quest carries
// the status the server derived.
func (c *Client) UpdateQuest(ctx context.Context, id int64, patch forms.QuestPatch) (*model.Quest, error) {
	var out model.Quest
	path := fmt.Sprintf("%s/%d", questsPath, id)
	if err := c.Do(ctx, http.MethodPatch, path, questEnvelope{Quest: patch}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
