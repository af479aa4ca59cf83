// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"strings"
)

// Status is a task's position on the board.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone}

// Label returns the human-readable column label.
func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Completed"
	}
	return string(s)
}

// ParseStatus accepts OPEN, IN_PROGRESS or DONE, case-insensitively;
// "in-progress" is accepted for IN_PROGRESS.
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	for _, st := range Statuses {
		if v == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Priority is a task's urgency.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ParsePriority accepts HIGH, MEDIUM or LOW, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}

// Task represents a single task record owned by the server.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority,omitempty"`
	UserID      int64    `json:"userId"`
}

// EffectivePriority returns the priority, MEDIUM when absent.
func (t Task) EffectivePriority() Priority {
	if t.Priority == "" {
		return PriorityMedium
	}
	return t.Priority
}

// NewTask is the create payload.
type NewTask struct {
	Title       string   `json:"title" validate:"notblank"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority" validate:"oneof=HIGH MEDIUM LOW"`
	Status      Status   `json:"status" validate:"oneof=OPEN IN_PROGRESS DONE"`
	UserID      int64    `json:"userId"`
}

// Page is the paginated list envelope returned by the API.
type Page struct {
	Content       []Task `json:"content"`
	TotalElements int64  `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	Number        int    `json:"number"`
	Size          int    `json:"size"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register form. ConfirmPassword never leaves the client.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"eqfield=Password"`
}

// Stats are the dashboard counters.
type Stats struct {
	Total      int64
	Open       int
	InProgress int
	Done       int
}
