package notify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

const notifyCommand = "notify-send"

// NotifyError represents an error that occurred while delivering a
// desktop notification
type NotifyError struct {
	// Op is the operation that failed (e.g., "initialize", "send")
	Op string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *NotifyError) Unwrap() error {
	return e.Err
}

// CommandExecutor runs an external command. The default executor shells
// out; tests substitute a recorder.
type CommandExecutor interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type execExecutor struct{}

func (execExecutor) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Client delivers desktop notifications via notify-send.
type Client struct {
	executor CommandExecutor
	appName  string
}

// Option configures a Client.
type Option func(*Client)

// WithExecutor overrides the command executor.
func WithExecutor(e CommandExecutor) Option {
	return func(c *Client) { c.executor = e }
}

// NewClient creates a notification client. With the default executor it
// verifies that notify-send is installed.
func NewClient(appName string, opts ...Option) (*Client, error) {
	if appName == "" {
		appName = "todopush"
	}

	c := &Client{appName: appName}
	for _, opt := range opts {
		opt(c)
	}

	if c.executor == nil {
		if _, err := exec.LookPath(notifyCommand); err != nil {
			return nil, &NotifyError{
				Op:  "initialize",
				Err: fmt.Errorf("%s not found in PATH", notifyCommand),
			}
		}
		c.executor = execExecutor{}
	}

	return c, nil
}

// Notify shows one notification with a summary line and a body.
func (c *Client) Notify(ctx context.Context, summary, body string) error {
	if summary == "" {
		return &NotifyError{Op: "send", Err: fmt.Errorf("summary cannot be empty")}
	}

	args := []string{"--app-name=" + c.appName, summary}
	if body != "" {
		args = append(args, body)
	}

	_, stderr, err := c.executor.Run(ctx, notifyCommand, args...)
	if err != nil {
		return &NotifyError{
			Op:  "send",
			Err: fmt.Errorf("failed to send notification: %w (stderr: %s)", err, stderr),
		}
	}

	return nil
}
