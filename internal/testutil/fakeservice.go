// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskboard/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// ErrBadCredentials is returned by Login for an unknown email or a wrong
// password.
var ErrBadCredentials = errors.New("bad credentials")

// StatusCall records one UpdateTaskStatus invocation.
type StatusCall struct {
	ID     int64
	Status service.Status
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	tasks    []service.Task
	accounts map[string]service.Registration
	nextID   int64

	// TotalOverride, when non-zero, is reported as TotalElements.
	TotalOverride int64

	// Calls
	ListCalls   []ListCall
	StatusCalls []StatusCall

	// Error injection for testing
	LoginErr        error
	RegisterErr     error
	CreateTaskErr   error
	ListTasksErr    error
	UpdateStatusErr error
	DeleteTaskErr   error
}

// ListCall records one ListTasks invocation.
type ListCall struct {
	UserID int64
	Page   int
	Size   int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		accounts: make(map[string]service.Registration),
		nextID:   1,
	}
}

// AddTask stores a task, assigning its id, and returns it.
func (f *FakeService) AddTask(userID int64, title string, status service.Status) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:       f.nextID,
		Title:    title,
		Status:   status,
		Priority: service.PriorityMedium,
		UserID:   userID,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// AllTasks returns a copy of the stored tasks.
func (f *FakeService) AllTasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// AddAccount registers an account directly.
func (f *FakeService) AddAccount(reg service.Registration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[reg.Email] = reg
}

// Accounts returns the registered accounts keyed by email.
func (f *FakeService) Accounts() map[string]service.Registration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]service.Registration, len(f.accounts))
	for k, v := range f.accounts {
		out[k] = v
	}
	return out
}

// Login implements service.Service. Every account logs in as user 1.
func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	acct, ok := f.accounts[creds.Email]
	if !ok || acct.Password != creds.Password {
		return "", ErrBadCredentials
	}
	return IssueToken(1, acct.Name), nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, reg service.Registration) error {
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[reg.Email] = reg
	return nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          f.nextID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		UserID:      task.UserID,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, userID int64, page, size int) (service.Page, error) {
	f.mu.Lock()
	f.ListCalls = append(f.ListCalls, ListCall{UserID: userID, Page: page, Size: size})
	f.mu.Unlock()

	if f.ListTasksErr != nil {
		return service.Page{}, f.ListTasksErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var owned []service.Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}

	start := page * size
	if start > len(owned) {
		start = len(owned)
	}
	end := start + size
	if end > len(owned) {
		end = len(owned)
	}

	total := int64(len(owned))
	if f.TotalOverride != 0 {
		total = f.TotalOverride
	}
	content := make([]service.Task, end-start)
	copy(content, owned[start:end])

	return service.Page{
		Content:       content,
		TotalElements: total,
		Number:        page,
		Size:          size,
	}, nil
}

// UpdateTaskStatus implements service.Service.
func (f *FakeService) UpdateTaskStatus(ctx context.Context, id int64, status service.Status) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatusCalls = append(f.StatusCalls, StatusCall{ID: id, Status: status})

	if f.UpdateStatusErr != nil {
		return service.Task{}, f.UpdateStatusErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
