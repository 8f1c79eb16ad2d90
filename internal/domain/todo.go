package domain

import "time"

// Todo is a single task owned by exactly one user. UserID never changes
// after creation; UpdatedAt is set on the first mutation and refreshed on
// every subsequent one.
type Todo struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
