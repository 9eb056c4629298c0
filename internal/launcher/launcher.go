package launcher

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/teemow/todopush/internal/todo"
)

// Event types understood by the loop.
const (
	EventQuery  = "query"
	EventSelect = "select"
)

// Event is a single request read from the launcher, one JSON object per
// line. A query event carries the text typed after the keyword; a
// select event carries the title to submit.
type Event struct {
	Type     string `json:"type"`
	Keyword  string `json:"keyword,omitempty"`
	Argument string `json:"argument,omitempty"`
}

// Item is a selectable row rendered by the launcher.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Submit marks the item as actionable; selecting it sends a select
	// event with the item's Argument.
	Submit   bool   `json:"submit"`
	Argument string `json:"argument,omitempty"`
}

// Response is the reply written for each event, one JSON object per
// line.
type Response struct {
	Type  string `json:"type"`
	Items []Item `json:"items,omitempty"`
	OK    bool   `json:"ok,omitempty"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Adder submits a raw todo title to the configured backend.
type Adder interface {
	Add(ctx context.Context, raw string) (*todo.Receipt, error)
}

// Loop reads launcher events from a reader and writes responses to a
// writer until the input is closed or the context is canceled.
type Loop struct {
	adder       Adder
	serviceName string
	keyword     string
	logger      *slog.Logger
	configCheck func() error
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithConfigCheck installs a readiness probe run at query time. When it
// fails, query events answer with a configuration hint instead of a
// submittable item.
func WithConfigCheck(check func() error) LoopOption {
	return func(l *Loop) {
		l.configCheck = check
	}
}

// NewLoop creates an event loop that forwards selected todos to adder.
// serviceName is only used in item descriptions.
func NewLoop(adder Adder, serviceName, keyword string, logger *slog.Logger, opts ...LoopOption) (*Loop, error) {
	if adder == nil {
		return nil, errors.New("launcher: adder is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		adder:       adder,
		serviceName: serviceName,
		keyword:     keyword,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Run processes events until EOF. Malformed lines produce an error
// response but do not stop the loop.
func (l *Loop) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			l.logger.Warn("discarding malformed event", "error", err)
			if err := enc.Encode(Response{Type: "error", Error: "malformed event"}); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			continue
		}

		resp := l.handle(ctx, ev)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	return nil
}

func (l *Loop) handle(ctx context.Context, ev Event) Response {
	switch ev.Type {
	case EventQuery:
		return Response{Type: "items", Items: l.queryItems(ev.Argument)}
	case EventSelect:
		return l.submit(ctx, ev.Argument)
	default:
		return Response{Type: "error", Error: fmt.Sprintf("unknown event type %q", ev.Type)}
	}
}

// queryItems renders the preview row for the typed text. An empty
// argument gets a usage hint, and an unconfigured backend gets a
// configuration hint instead of a submittable item.
func (l *Loop) queryItems(argument string) []Item {
	if l.configCheck != nil {
		if err := l.configCheck(); err != nil {
			return []Item{{
				Title:       "Configuration required",
				Description: todo.Message(err),
			}}
		}
	}

	argument = strings.TrimSpace(argument)
	if argument == "" {
		return []Item{{
			Title:       "Add a todo",
			Description: fmt.Sprintf("Type a title after the %q keyword", l.keyword),
		}}
	}
	return []Item{{
		Title:       argument,
		Description: fmt.Sprintf("Add %q to %s", argument, l.serviceName),
		Submit:      true,
		Argument:    argument,
	}}
}

func (l *Loop) submit(ctx context.Context, raw string) Response {
	receipt, err := l.adder.Add(ctx, raw)
	if err != nil {
		return Response{Type: "result", OK: false, Error: todo.Message(err)}
	}
	return Response{Type: "result", OK: true, ID: receipt.ID}
}
