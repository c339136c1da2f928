package forms

import "tableflip.dev/jquest/pkg/model"

// SignupRequest is the account creation form. Field order sets the order of
// validation messages.
type SignupRequest struct {
	PasswordConfirmation string `json:"password_confirmation" label:"Passwords" validate:"eqfield=Password"`
	Password             string `json:"password" label:"Password" validate:"min=6"`
	Username             string `json:"username" label:"Username" validate:"required"`
	Email                string `json:"email" label:"Email" validate:"required"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Nickname             string `json:"nickname"`
	Archetype            string `json:"archetype" label:"Archetype" validate:"archetype"`
}

type LoginRequest struct {
	Username string `json:"username" label:"Username" validate:"required"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// ProfileEditRequest carries the editable profile fields.
type ProfileEditRequest struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email" label:"Email" validate:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname"`
	Archetype string `json:"archetype" label:"Archetype" validate:"archetype"`
}

// ProfileFromUser seeds an edit form with the current values.
func ProfileFromUser(u *model.User) ProfileEditRequest {
	if u == nil {
		return ProfileEditRequest{}
	}
	return ProfileEditRequest{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Nickname:  u.Nickname,
		Archetype: u.Archetype,
	}
}

// Apply writes the form onto a copy of u, giving the optimistic value.
func (r ProfileEditRequest) Apply(u *model.User) *model.User {
	next := u.Clone()
	if next == nil {
		next = &model.User{}
	}
	if r.Username != "" {
		next.Username = r.Username
	}
	next.Email = r.Email
	next.FirstName = r.FirstName
	next.LastName = r.LastName
	next.Nickname = r.Nickname
	next.Archetype = r.Archetype
	return next
}

// JournalRequest creates or edits a journal. A nil FolderID leaves the
// journal unassigned.
type JournalRequest struct {
	Title     string `json:"title" label:"Title" validate:"required"`
	Body      string `json:"body"`
	Archetype string `json:"archetype"`
	FolderID  *int64 `json:"folder_id"`
	UserID    int64  `json:"user_id,omitempty"`
}

// JournalFromModel seeds an edit form.
func JournalFromModel(j model.Journal) JournalRequest {
	j = j.Clone()
	return JournalRequest{
		Title:     j.Title,
		Body:      j.Body,
		Archetype: j.Archetype,
		FolderID:  j.FolderID,
	}
}

// Apply writes the form onto a copy of j.
func (r JournalRequest) Apply(j model.Journal) model.Journal {
	next := j.Clone()
	next.Title = r.Title
	next.Body = r.Body
	next.Archetype = r.Archetype
	next.FolderID = nil
	if r.FolderID != nil {
		next.FolderID = model.FolderRef(*r.FolderID)
	}
	return next
}

// QuestRequest creates a quest.
type QuestRequest struct {
	Title       string            `json:"title" label:"Title" validate:"required"`
	Description string            `json:"description"`
	Goal        int               `json:"goal" label:"Goal" validate:"gte=1"`
	Status      model.QuestStatus `json:"status" label:"Status" validate:"oneof=not_started in_progress completed"`
	Progress    int               `json:"progress" label:"Progress" validate:"gte=0,ltefield=Goal"`
}

// NewQuest fills the defaults used for a fresh quest.
func NewQuest(title, description string, goal int) QuestRequest {
	if goal == 0 {
		goal = 1
	}
	return QuestRequest{
		Title:       title,
		Description: description,
		Goal:        goal,
		Status:      model.QuestNotStarted,
		Progress:    0,
	}
}

// QuestPatch updates a quest. Only non-nil fields are sent.
type QuestPatch struct {
	Title       *string `json:"title,omitempty" label:"Title" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Goal        *int    `json:"goal,omitempty" label:"Goal" validate:"omitempty,gte=1"`
	Progress    *int    `json:"progress,omitempty" label:"Progress" validate:"omitempty,gte=0"`
}

// CompleteQuest sets progress to the goal.
func CompleteQuest(q model.Quest) QuestPatch {
	goal := q.Goal
	return QuestPatch{Progress: &goal}
}

// Apply writes the patch onto a copy of q. Status is left for the server.
func (p QuestPatch) Apply(q model.Quest) model.Quest {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Goal != nil {
		q.Goal = *p.Goal
	}
	if p.Progress != nil {
		q.Progress = *p.Progress
	}
	return q
}

type FolderRequest struct {
	Name string `json:"name" label:"Name" validate:"required"`
}
