package auth

import (
	"context"
	"errors"

	"tableflip.dev/jquest/pkg/api"
	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/model"
	"tableflip.dev/jquest/pkg/runner"
)

const (
	LoginFailedMessage  = "Invalid login."
	LogoutFailedMessage = "Something went wrong while logging out."
)

type Login struct {
	Request forms.LoginRequest
	Service *app.Service
	runner.Output
}

func (n *Login) Do(ctx context.Context) error {
	u, err := n.Service.Login(ctx, n.Request)
	if err != nil {
		return runner.Failure(n.Output, err, LoginFailedMessage)
	}
	return n.signedIn(u)
}

func (n *Login) signedIn(u *model.User) error {
	if n.Structured() {
		return n.Encode(u)
	}
	n.Pretty().Notice("Welcome back, %s.", u.DisplayName())
	return nil
}

type Signup struct {
	Request forms.SignupRequest
	Service *app.Service
	runner.Output
}

func (n *Signup) Do(ctx context.Context) error {
	u, err := n.Service.Signup(ctx, n.Request)
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(u)
	}
	n.Pretty().Notice("Welcome, %s. Your quest begins.", u.DisplayName())
	return nil
}

type Logout struct {
	Service *app.Service
	runner.Output
}

func (n *Logout) Do(ctx context.Context) error {
	if err := n.Service.Logout(ctx); err != nil {
		return runner.Failure(n.Output, err, LogoutFailedMessage)
	}
	if n.Structured() {
		return n.Encode(map[string]bool{"logged_out": true})
	}
	n.Pretty().Notice("Logged out. You have been logged out successfully.")
	return nil
}

type Whoami struct {
	Service *app.Service
	runner.Output
}

func (n *Whoami) Do(ctx context.Context) error {
	u, err := n.Service.Whoami(ctx)
	if errors.Is(err, app.ErrNotSignedIn) {
		if n.Structured() {
			return n.Encode(map[string]interface{}{"user": nil})
		}
		n.Pretty().User(nil)
		return nil
	}
	if err != nil {
		return runner.Failure(n.Output, err, api.GenericMessage)
	}
	if n.Structured() {
		return n.Encode(u)
	}
	n.Pretty().User(u)
	return nil
}
