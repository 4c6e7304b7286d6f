package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Todo struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	DueTime   *string   `json:"due_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TodoCreate struct {
	Title     string   `json:"title"`
	Notes     *string  `json:"notes,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	DueTime   *string  `json:"due_time,omitempty"`
	Completed bool     `json:"completed"`
}

type TodoUpdate struct {
	Title     *string   `json:"title,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
	DueTime   *string   `json:"due_time,omitempty"`
}
