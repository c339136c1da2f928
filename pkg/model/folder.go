package model

// Folder groups journals. A journal belongs to at most one folder.
type Folder struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	UserID    int64     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
	UpdatedAt Timestamp `json:"updated_at" yaml:"updated_at"`
}
