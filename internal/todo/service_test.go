package todo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/teemow/todopush/internal/sanitize"
)

// fakeSubmitter records what reaches the remote call.
type fakeSubmitter struct {
	calls  int
	titles []string
	err    error
}

func (f *fakeSubmitter) Submit(ctx context.Context, title string) (*Receipt, error) {
	f.calls++
	f.titles = append(f.titles, title)
	if f.err != nil {
		return nil, f.err
	}
	return &Receipt{ID: "item-1", Title: title, Service: f.Service()}, nil
}

func (f *fakeSubmitter) Service() string { return "keep" }

// fakeNotifier records delivered notifications.
type fakeNotifier struct {
	summaries []string
	bodies    []string
	err       error
}

func (f *fakeNotifier) Notify(ctx context.Context, summary, body string) error {
	f.summaries = append(f.summaries, summary)
	f.bodies = append(f.bodies, body)
	return f.err
}

func TestService_Add(t *testing.T) {
	submitter := &fakeSubmitter{}
	notifier := &fakeNotifier{}
	svc, err := NewService(submitter, notifier, 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	receipt, err := svc.Add(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if receipt.Title != "Buy milk" {
		t.Errorf("receipt title = %q, want %q", receipt.Title, "Buy milk")
	}
	if submitter.calls != 1 {
		t.Errorf("submit calls = %d, want exactly 1", submitter.calls)
	}
	if len(notifier.summaries) != 1 || notifier.summaries[0] != "Todo added" {
		t.Errorf("notifications = %v, want one success", notifier.summaries)
	}
	if notifier.bodies[0] != "Buy milk" {
		t.Errorf("notification body = %q, want the title", notifier.bodies[0])
	}
}

func TestService_Add_Truncates(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc, err := NewService(submitter, nil, 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Add(context.Background(), strings.Repeat("x", 5000)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := len([]rune(submitter.titles[0])); got != 200 {
		t.Errorf("submitted title length = %d, want 200", got)
	}
}

func TestService_Add_EmptyInput(t *testing.T) {
	submitter := &fakeSubmitter{}
	notifier := &fakeNotifier{}
	svc, err := NewService(submitter, notifier, 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []string{"", "   ", "\t\n"}
	for _, input := range tests {
		_, err := svc.Add(context.Background(), input)
		if !errors.Is(err, sanitize.ErrEmptyInput) {
			t.Errorf("Add(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}

	// Rejected before any remote call
	if submitter.calls != 0 {
		t.Errorf("submit calls = %d, want 0 for empty input", submitter.calls)
	}
	if len(notifier.summaries) != len(tests) {
		t.Errorf("notifications = %d, want one failure per attempt", len(notifier.summaries))
	}
}

func TestService_Add_SubmitFailure(t *testing.T) {
	submitErr := errors.New("connection refused")
	submitter := &fakeSubmitter{err: submitErr}
	notifier := &fakeNotifier{}
	svc, err := NewService(submitter, notifier, 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Add(context.Background(), "Buy milk")
	if !errors.Is(err, submitErr) {
		t.Errorf("Add() error = %v, want submit error", err)
	}
	if len(notifier.summaries) != 1 || notifier.summaries[0] != "Todo not added" {
		t.Errorf("notifications = %v, want one failure", notifier.summaries)
	}

	// A failed invocation leaves the service usable for the next one
	submitter.err = nil
	if _, err := svc.Add(context.Background(), "Buy bread"); err != nil {
		t.Errorf("Add() after failure error = %v", err)
	}
}

func TestService_Add_NotifierFailureIsNotFatal(t *testing.T) {
	submitter := &fakeSubmitter{}
	notifier := &fakeNotifier{err: errors.New("notify-send missing")}
	svc, err := NewService(submitter, notifier, 200, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Add(context.Background(), "Buy milk"); err != nil {
		t.Errorf("Add() error = %v, notification failure must not fail the submission", err)
	}
}

func TestService_Add_NilNotifier(t *testing.T) {
	svc, err := NewService(&fakeSubmitter{}, nil, 200, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(context.Background(), "Buy milk"); err != nil {
		t.Errorf("Add() error = %v", err)
	}
}

func TestNewService_NilSubmitter(t *testing.T) {
	if _, err := NewService(nil, nil, 200, nil); err == nil {
		t.Error("NewService() expected error for nil submitter")
	}
}
