package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
)

func journalPath(id int64) string {
	return fmt.Sprintf("/journals/%d", id)
}

// Journals lists the session user's journals in server order.
func (c *Client) Journals(ctx context.Context) ([]model.Journal, error) {
	var out []model.Journal
	if err := c.Do(ctx, http.MethodGet, "/journals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Journal(ctx context.Context, id int64) (*model.Journal, error) {
	var out model.Journal
	if err := c.Do(ctx, http.MethodGet, journalPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateJournal posts the form fields flat, the way the journal endpoints
// expect them.
func (c *Client) CreateJournal(ctx context.Context, req forms.JournalRequest) (*model.Journal, error) {
	var out model.Journal
	if err := c.Do(ctx, http.MethodPost, "/journals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateJournal(ctx context.Context, id int64, req forms.JournalRequest) (*model.Journal, error) {
	var out model.Journal
	if err := c.Do(ctx, http.MethodPatch, journalPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteJournal(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, journalPath(id), nil, nil)
}
