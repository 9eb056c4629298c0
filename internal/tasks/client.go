package tasks

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"github.com/teemow/todopush/internal/google"
)

// Client wraps the Google Tasks service
type Client struct {
	svc *tasksapi.Service
}

// NewClient creates a Tasks client authenticated through the stored
// OAuth token.
func NewClient(ctx context.Context, auth *google.OAuth) (*Client, error) {
	httpClient, err := auth.Client(ctx)
	if err != nil {
		return nil, &TasksError{Op: "initialize", Err: err}
	}

	return NewClientWithOptions(ctx, option.WithHTTPClient(httpClient))
}

// NewClientWithOptions creates a Tasks client with explicit client
// options. Tests use this to point the service at a fake endpoint.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := tasksapi.NewService(ctx, opts...)
	if err != nil {
		return nil, &TasksError{Op: "initialize", Err: fmt.Errorf("failed to create Tasks service: %w", err)}
	}

	return &Client{svc: svc}, nil
}

// ListTaskLists lists all task lists for the authenticated user
func (c *Client) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	result, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return nil, &TasksError{Op: "listTaskLists", Err: err}
	}

	var taskLists []TaskList
	for _, tl := range result.Items {
		taskLists = append(taskLists, toTaskList(tl))
	}

	return taskLists, nil
}

// GetTaskList retrieves a specific task list by ID
func (c *Client) GetTaskList(ctx context.Context, taskListID string) (*TaskList, error) {
	tl, err := c.svc.Tasklists.Get(taskListID).Context(ctx).Do()
	if err != nil {
		return nil, &TasksError{Op: "getTaskList", Err: err}
	}

	result := toTaskList(tl)
	return &result, nil
}

// CreateTask inserts a single task into the given task list. An empty
// taskListID targets the account's default list.
func (c *Client) CreateTask(ctx context.Context, taskListID string, input TaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, &TasksError{Op: "createTask", Err: fmt.Errorf("title cannot be empty")}
	}
	if taskListID == "" {
		taskListID = DefaultListID
	}

	t := &tasksapi.Task{
		Title: input.Title,
		Notes: input.Notes,
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	created, err := c.svc.Tasks.Insert(taskListID, t).Context(ctx).Do()
	if err != nil {
		return nil, &TasksError{Op: "createTask", Err: err}
	}

	result := toTask(created)
	return &result, nil
}
