package service

import "context"

// Page windows used by the client views.
const (
	// StatsPageSize is how many tasks the dashboard aggregates over.
	StatsPageSize = 100

	// BoardPageSize is how many tasks the board loads.
	BoardPageSize = 50

	// RecentPageSize is how many tasks the dashboard lists as recent.
	RecentPageSize = 5
)

// Service defines the interface for task backend operations.
// All REST calls go through this interface; commands never build requests.
type Service interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Register creates an account.
	Register(ctx context.Context, reg Registration) error

	// CreateTask creates a task and returns the stored record.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// ListTasks returns one page of a user's tasks.
	// page is 0-based.
	ListTasks(ctx context.Context, userID int64, page, size int) (Page, error)

	// UpdateTaskStatus sets a task's status and returns the updated record.
	UpdateTaskStatus(ctx context.Context, id int64, status Status) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int64) error
}

// FetchStats aggregates dashboard counters on the client from the first
// StatsPageSize tasks. Total reflects the server count; the per-status
// counts only cover the fetched page.
func FetchStats(ctx context.Context, svc Service, userID int64) (Stats, error) {
	page, err := svc.ListTasks(ctx, userID, 0, StatsPageSize)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(page), nil
}

// ComputeStats derives counters from a fetched page.
func ComputeStats(page Page) Stats {
	s := Stats{Total: page.TotalElements}
	if s.Total == 0 {
		s.Total = int64(len(page.Content))
	}
	for _, t := range page.Content {
		switch t.Status {
		case StatusOpen:
			s.Open++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		}
	}
	return s
}
