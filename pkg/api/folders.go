package api

import (
	"context"
	"net/http"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
)

// Folders lists the session user's folders.
func (c *Client) Folders(ctx context.Context) ([]model.Folder, error) {
	var out []model.Folder
	if err := c.Do(ctx, http.MethodGet, "/folders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFolder creates a folder and returns it as stored by the server.
func (c *Client) CreateFolder(ctx context.Context, req forms.FolderRequest) (*model.Folder, error) {
	body := struct {
		Folder forms.FolderRequest `json:"folder"`
	}{Folder: req}
	var out model.Folder
	if err := c.Do(ctx, http.MethodPost, "/folders", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
