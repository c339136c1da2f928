package model

// User is the authenticated account and its profile fields.
type User struct {
	ID        int64     `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Email     string    `json:"email" yaml:"email"`
	FirstName string    `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	Nickname  string    `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Archetype string    `json:"archetype,omitempty" yaml:"archetype,omitempty"`
	Stats     UserStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

// UserStats are aggregate counters computed by the backend.
type UserStats struct {
	JournalCount    int `json:"journal_count,omitempty" yaml:"journal_count,omitempty"`
	QuestCount      int `json:"quest_count,omitempty" yaml:"quest_count,omitempty"`
	CompletedQuests int `json:"completed_quests,omitempty" yaml:"completed_quests,omitempty"`
}

// DisplayName picks the friendliest name available.
func (u *User) DisplayName() string {
	if u == nil {
		return "Hero"
	}
	switch {
	case u.Nickname != "":
		return u.Nickname
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	}
	return "Hero"
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
