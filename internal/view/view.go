// Package view derives presentation-ready task views. Every function is
// pure and leaves its input untouched.
package view

import (
	"fmt"
	"strings"

	"taskboard/internal/service"
)

// Filter selects tasks by status. FilterAll matches every status.
type Filter string

// FilterAll disables status filtering.
const FilterAll Filter = "ALL"

// ParseFilter accepts ALL or any status name.
func ParseFilter(s string) (Filter, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), string(FilterAll)) {
		return FilterAll, nil
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("invalid filter: %s", s)
	}
	return Filter(st), nil
}

// Matches reports whether a task passes the status filter and the search
// query. The query is a case-insensitive substring of title or description;
// an empty query matches everything.
func Matches(t service.Task, f Filter, query string) bool {
	if f != FilterAll && f != "" && service.Status(f) != t.Status {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Apply returns the tasks passing Matches, in input order.
func Apply(tasks []service.Task, f Filter, query string) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, f, query) {
			out = append(out, t)
		}
	}
	return out
}

// Columns holds the three board buckets.
type Columns struct {
	Open       []service.Task
	InProgress []service.Task
	Done       []service.Task
}

// Column returns the bucket for a status.
func (c Columns) Column(s service.Status) []service.Task {
	switch s {
	case service.StatusOpen:
		return c.Open
	case service.StatusInProgress:
		return c.InProgress
	case service.StatusDone:
		return c.Done
	}
	return nil
}

// Len returns the total number of grouped tasks.
func (c Columns) Len() int {
	return len(c.Open) + len(c.InProgress) + len(c.Done)
}

// Group partitions tasks into the three status buckets, preserving order.
// Buckets with no tasks are empty, never nil. Tasks with an unknown status
// land in no bucket.
func Group(tasks []service.Task) Columns {
	c := Columns{
		Open:       []service.Task{},
		InProgress: []service.Task{},
		Done:       []service.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case service.StatusOpen:
			c.Open = append(c.Open, t)
		case service.StatusInProgress:
			c.InProgress = append(c.InProgress, t)
		case service.StatusDone:
			c.Done = append(c.Done, t)
		}
	}
	return c
}

// Board is the result of filtering then grouping.
type Board struct {
	Columns Columns
	// Total counts every loaded task, ignoring the filter.
	Total int
}

// Derive applies the filter and query, then groups.
func Derive(tasks []service.Task, f Filter, query string) Board {
	return Board{
		Columns: Group(Apply(tasks, f, query)),
		Total:   len(tasks),
	}
}
