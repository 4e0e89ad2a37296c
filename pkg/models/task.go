package models

import "time"

// Task is a to-do created by the create_task action, linked to the deal
// that triggered it.
type Task struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"     validate:"required"`
	DealID      string     `json:"deal_id,omitempty"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
