package profile

import (
	"context"

	"tableflip.dev/jquest/pkg/app"
	"tableflip.dev/jquest/pkg/archetype"
	"tableflip.dev/jquest/pkg/forms"
	"tableflip.dev/jquest/pkg/runner"
)

const UpdatedMessage = "Profile updated successfully!"

type Show struct {
	Service *app.Service
	runner.Output
}

func (n *Show) Do(ctx context.Context) error {
	u, err := n.Service.Profile(ctx)
	if err != nil {
		return runner.Failure(n.Output, err, app.ProfileFailedMessage)
	}
	if n.Structured() {
		return n.Encode(u)
	}
	n.Pretty().User(u)
	return nil
}

// Changes are the profile fields given on the command line. Nil means keep.
type Changes struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Nickname  *string
	Archetype *string
}

func (c Changes) apply(req *forms.ProfileEditRequest) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&req.Username, c.Username)
	set(&req.Email, c.Email)
	set(&req.FirstName, c.FirstName)
	set(&req.LastName, c.LastName)
	set(&req.Nickname, c.Nickname)
	set(&req.Archetype, c.Archetype)
	req.Archetype = archetype.Normalize(req.Archetype)
}

// Edit loads the profile, applies Changes and saves it.
type Edit struct {
	Changes Changes

	Service *app.Service
	runner.Output
}

func (n *Edit) Do(ctx context.Context) error {
	current, err := n.Service.Profile(ctx)
	if err != nil {
		return runner.Failure(n.Output, err, app.ProfileFailedMessage)
	}
	req := forms.ProfileFromUser(current)
	n.Changes.apply(&req)

	u, err := n.Service.EditProfile(ctx, req)
	if err != nil {
		return runner.Failure(n.Output, err, app.ProfileFailedMessage)
	}
	if n.Structured() {
		return n.Encode(u)
	}
	pp := n.Pretty()
	pp.Notice(UpdatedMessage)
	pp.User(u)
	return nil
}
