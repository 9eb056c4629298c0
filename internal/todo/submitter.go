package todo

import (
	"context"

	"github.com/teemow/todopush/internal/keep"
	"github.com/teemow/todopush/internal/tasks"
)

// noteTitle is the fixed title for notes created in Keep; the todo text
// goes into the note body.
const noteTitle = "Todo"

// Submitter sends one sanitized todo title to a backend.
type Submitter interface {
	// Submit performs exactly one create-item call.
	Submit(ctx context.Context, title string) (*Receipt, error)

	// Service names the backend for logging and notifications.
	Service() string
}

// NoteCreator is the Keep client surface the submitter needs.
// Both keep.Client and keep.ServiceAccountClient satisfy it.
type NoteCreator interface {
	CreateNote(ctx context.Context, title, text string) (*keep.Note, error)
}

// KeepSubmitter submits todos as Google Keep notes.
type KeepSubmitter struct {
	client NoteCreator
}

// NewKeepSubmitter wraps a Keep client.
func NewKeepSubmitter(client NoteCreator) *KeepSubmitter {
	return &KeepSubmitter{client: client}
}

// Submit creates one Keep note titled "Todo" with the text as body.
func (s *KeepSubmitter) Submit(ctx context.Context, title string) (*Receipt, error) {
	note, err := s.client.CreateNote(ctx, noteTitle, title)
	if err != nil {
		return nil, err
	}

	return &Receipt{
		ID:      note.ID,
		Title:   title,
		Service: s.Service(),
	}, nil
}

// Service implements Submitter.
func (s *KeepSubmitter) Service() string { return "keep" }

// TaskCreator is the Tasks client surface the submitter needs.
type TaskCreator interface {
	CreateTask(ctx context.Context, taskListID string, input tasks.TaskInput) (*tasks.Task, error)
}

// TasksSubmitter submits todos as Google Tasks.
type TasksSubmitter struct {
	client TaskCreator
	listID string
}

// NewTasksSubmitter wraps a Tasks client targeting the given list;
// an empty listID targets the account's default list.
func NewTasksSubmitter(client TaskCreator, listID string) *TasksSubmitter {
	return &TasksSubmitter{client: client, listID: listID}
}

// Submit inserts one task with the text as title.
func (s *TasksSubmitter) Submit(ctx context.Context, title string) (*Receipt, error) {
	task, err := s.client.CreateTask(ctx, s.listID, tasks.TaskInput{Title: title})
	if err != nil {
		return nil, err
	}

	return &Receipt{
		ID:      task.ID,
		Title:   title,
		Service: s.Service(),
	}, nil
}

// Service implements Submitter.
func (s *TasksSubmitter) Service() string { return "tasks" }
