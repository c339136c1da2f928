package api

import (
	"context"
	"fmt"
	"net/http"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
)

func profilePath(id int64) string {
	return fmt.Sprintf("/editprofile/%d", id)
}

// Profile loads the editable profile of user id.
func (c *Client) Profile(ctx context.Context, id int64) (*model.User, error) {
	var out userPayload
	if err := c.Do(ctx, http.MethodGet, profilePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// UpdateProfile sends the edited fields and returns the server's user.
func (c *Client) UpdateProfile(ctx context.Context, id int64, req forms.ProfileEditRequest) (*model.User, error) {
	var out userPayload
	if err := c.Do(ctx, http.MethodPatch, profilePath(id), userEnvelope{User: req}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
