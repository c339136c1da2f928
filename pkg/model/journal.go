package model

// Journal is a single journal entry owned by a user.
type Journal struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	Archetype string    `json:"archetype,omitempty" yaml:"archetype,omitempty"`
	FolderID  *int64    `json:"folder_id" yaml:"folder_id"`
	UserID    int64     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt Timestamp `json:"updated_at" yaml:"updated_at"`
}

// InFolder reports whether the journal is assigned to folder id.
func (j *Journal) InFolder(id int64) bool {
	return j.FolderID != nil && *j.FolderID == id
}

// Clone returns a deep copy of j.
func (j Journal) Clone() Journal {
	if j.FolderID != nil {
		id := *j.FolderID
		j.FolderID = &id
	}
	return j
}

// CloneJournals deep copies list.
func CloneJournals(list []Journal) []Journal {
	if list == nil {
		return nil
	}
	out := make([]Journal, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// FolderRef returns a pointer suitable for Journal.FolderID.
func FolderRef(id int64) *int64 {
	return &id
}
