// Package board holds the in-memory task list of one board view and keeps
// it in step with the API after each user action.
package board

import (
	"context"

	"taskboard/internal/service"
	"taskboard/internal/view"
)

// Board is a user's loaded tasks. It is not safe for concurrent use.
type Board struct {
	svc    service.Service
	userID int64
	tasks  []service.Task
}

// New creates an empty board for userID.
func New(svc service.Service, userID int64) *Board {
	return &Board{svc: svc, userID: userID}
}

// Load replaces the local list with the first BoardPageSize tasks.
func (b *Board) Load(ctx context.Context) error {
	page, err := b.svc.ListTasks(ctx, b.userID, 0, service.BoardPageSize)
	if err != nil {
		return err
	}
	b.tasks = page.Content
	return nil
}

// Tasks returns a copy of the local list.
func (b *Board) Tasks() []service.Task {
	out := make([]service.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Create creates a task owned by the board's user and puts it first.
func (b *Board) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	task.UserID = b.userID
	created, err := b.svc.CreateTask(ctx, task)
	if err != nil {
		return service.Task{}, err
	}
	b.tasks = append([]service.Task{created}, b.tasks...)
	return created, nil
}

// ChangeStatus issues one status update and replaces only the matching
// task with the server's copy. The list is untouched on failure.
func (b *Board) ChangeStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	updated, err := b.svc.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		return service.Task{}, err
	}
	next := make([]service.Task, len(b.tasks))
	for i, t := range b.tasks {
		if t.ID == id {
			next[i] = updated
		} else {
			next[i] = t
		}
	}
	b.tasks = next
	return updated, nil
}

// Delete deletes a task and drops it from the list.
func (b *Board) Delete(ctx context.Context, id int64) error {
	if err := b.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	next := make([]service.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	b.tasks = next
	return nil
}

// View filters and groups the local list.
func (b *Board) View(f view.Filter, query string) view.Board {
	return view.Derive(b.tasks, f, query)
}
