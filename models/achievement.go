package models

import "time"

type Achievement struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Notes     *string   `json:"notes"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AchievementCreate struct {
	Title     string  `json:"title"`
	Notes     *string `json:"notes,omitempty"`
	Completed bool    `json:"completed"`
}

type AchievementUpdate struct {
	Title     *string `json:"title,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
