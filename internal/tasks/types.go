package tasks

import (
	"fmt"
	"time"

	tasksapi "google.golang.org/api/tasks/v1"
)

// DefaultListID addresses the account's default task list without a
// lookup round-trip.
const DefaultListID = "@default"

// TaskList represents a Google Tasks task list
type TaskList struct {
	ID      string
	Title   string
	Updated time.Time
}

// Task represents a Google Tasks task
type Task struct {
	ID      string
	Title   string
	Notes   string
	Status  string // "needsAction" or "completed"
	Due     time.Time
	WebLink string
}

// TaskInput represents the input for creating a task
type TaskInput struct {
	Title string
	Notes string
	Due   time.Time
}

// TasksError represents an error that occurred during Tasks operations
type TasksError struct {
	// Op is the operation that failed (e.g., "createTask", "listTaskLists")
	Op string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *TasksError) Error() string {
	return fmt.Sprintf("tasks %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *TasksError) Unwrap() error {
	return e.Err
}

// toTaskList converts an API task list to our TaskList type
func toTaskList(tl *tasksapi.TaskList) TaskList {
	if tl == nil {
		return TaskList{}
	}

	result := TaskList{
		ID:    tl.Id,
		Title: tl.Title,
	}
	if tl.Updated != "" {
		if t, err := time.Parse(time.RFC3339, tl.Updated); err == nil {
			result.Updated = t
		}
	}

	return result
}

// toTask converts an API task to our Task type
func toTask(t *tasksapi.Task) Task {
	if t == nil {
		return Task{}
	}

	result := Task{
		ID:      t.Id,
		Title:   t.Title,
		Notes:   t.Notes,
		Status:  t.Status,
		WebLink: t.WebViewLink,
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			result.Due = due
		}
	}

	return result
}
