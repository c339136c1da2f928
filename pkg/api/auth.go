package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
)

// userPayload decodes either a bare user or a {"user": {...}} envelope. The
// backend uses both depending on the endpoint.
type userPayload struct {
	model.User
}

func (p *userPayload) UnmarshalJSON(b []byte) error {
	var env struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if raw := bytes.TrimSpace(env.User); len(raw) > 0 && raw[0] == '{' {
		return json.Unmarshal(raw, &p.User)
	}
	return json.Unmarshal(b, &p.User)
}

type userEnvelope struct {
	User interface{} `json:"user"`
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(ctx context.Context, req forms.LoginRequest) (*model.User, error) {
	var out userPayload
	if err := c.Do(ctx, http.MethodPost, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Signup creates an account. The server signs the new user in.
func (c *Client) Signup(ctx context.Context, req forms.SignupRequest) (*model.User, error) {
	var out userPayload
	if err := c.Do(ctx, http.MethodPost, "/signup", userEnvelope{User: req}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout ends the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodDelete, "/logout", nil, nil)
}

// Me returns the session user, or a 401 RequestError when signed out.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out userPayload
	if err := c.Do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
