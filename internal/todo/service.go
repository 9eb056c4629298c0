package todo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teemow/todopush/internal/logging"
	"github.com/teemow/todopush/internal/sanitize"
)

// Notifier reports the outcome of a submission to the user.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
}

// Service runs the submission pipeline: sanitize, submit, report.
// Each invocation is independent; a failure never corrupts state for
// the next one.
type Service struct {
	submitter Submitter
	notifier  Notifier // may be nil
	maxLength int
	logger    *slog.Logger
}

// NewService wires a submitter and an optional notifier. maxLength
// bounds the sanitized title; zero or below means the default limit.
func NewService(submitter Submitter, notifier Notifier, maxLength int, logger *slog.Logger) (*Service, error) {
	if submitter == nil {
		return nil, fmt.Errorf("submitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		submitter: submitter,
		notifier:  notifier,
		maxLength: maxLength,
		logger:    logging.WithService(logger, submitter.Service()),
	}, nil
}

// Add sanitizes raw input and submits it as one todo item. The outcome,
// success or categorized failure, is pushed through the notifier before
// Add returns. The returned Receipt is nil exactly when err is non-nil.
func (s *Service) Add(ctx context.Context, raw string) (*Receipt, error) {
	title, err := sanitize.Clean(raw, s.maxLength)
	if err != nil {
		// Rejected before any credential or network work
		s.report(ctx, "Todo not added", Message(err))
		return nil, err
	}

	receipt, err := s.submitter.Submit(ctx, title)
	if err != nil {
		s.logger.Error("submission failed",
			logging.Operation("add"),
			logging.Status(logging.StatusError),
			logging.TitleLen(title),
			logging.Err(err))
		s.report(ctx, "Todo not added", Message(err))
		return nil, err
	}

	s.logger.Info("todo added",
		logging.Operation("add"),
		logging.Status(logging.StatusSuccess),
		logging.TitleLen(title))
	s.report(ctx, "Todo added", title)

	return receipt, nil
}

// report delivers a notification, logging delivery failures instead of
// propagating them; the submission result stands either way.
func (s *Service) report(ctx context.Context, summary, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, summary, body); err != nil {
		s.logger.Warn("failed to deliver notification", logging.Err(err))
	}
}
