package model

import "fmt"

// QuestStatus is derived by the backend from progress and goal.
type QuestStatus string

const (
	QuestNotStarted QuestStatus = "not_started"
	QuestInProgress QuestStatus = "in_progress"
	QuestCompleted  QuestStatus = "completed"
)

// Label is the human form of the status.
func (s QuestStatus) Label() string {
	switch s {
	case QuestCompleted:
		return "completed"
	case QuestInProgress:
		return "in progress"
	default:
		return "not started"
	}
}

// Quest is a self-improvement goal with numeric progress.
type Quest struct {
	ID          int64       `json:"id" yaml:"id"`
	UserID      int64       `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Status      QuestStatus `json:"status" yaml:"status"`
	Goal        int         `json:"goal" yaml:"goal"`
	Progress    int         `json:"progress" yaml:"progress"`
	CreatedAt   Timestamp   `json:"created_at" yaml:"created_at"`
	UpdatedAt   Timestamp   `json:"updated_at" yaml:"updated_at"`
}

// Ratio is progress over goal clamped to [0, 1].
func (q Quest) Ratio() float64 {
	if q.Goal <= 0 {
		return 0
	}
	r := float64(q.Progress) / float64(q.Goal)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

func (q Quest) ProgressString() string {
	return fmt.Sprintf("%d / %d", q.Progress, q.Goal)
}
