package todo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/keep"
	"github.com/teemow/todopush/internal/sanitize"
	"github.com/teemow/todopush/internal/tokencache"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{
			name: "empty input",
			err:  sanitize.ErrEmptyInput,
			want: CategoryValidation,
		},
		{
			name: "wrapped empty input",
			err:  fmt.Errorf("add: %w", sanitize.ErrEmptyInput),
			want: CategoryValidation,
		},
		{
			name: "missing oauth credentials",
			err:  google.ErrNoCredentials,
			want: CategoryMissingCredentials,
		},
		{
			name: "missing oauth token",
			err:  fmt.Errorf("tasks initialize: %w", google.ErrNoToken),
			want: CategoryMissingCredentials,
		},
		{
			name: "keep rejected credentials",
			err:  &keep.KeepError{Op: "login", Err: keep.ErrBadCredentials},
			want: CategoryInvalidCredentials,
		},
		{
			name: "token decrypt failure",
			err:  fmt.Errorf("%w: cipher: message authentication failed", tokencache.ErrDecryptFailure),
			want: CategoryTokenDecrypt,
		},
		{
			name: "api unauthorized",
			err:  &googleapi.Error{Code: 401},
			want: CategoryInvalidCredentials,
		},
		{
			name: "api forbidden",
			err:  &googleapi.Error{Code: 403},
			want: CategoryInvalidCredentials,
		},
		{
			name: "api server error",
			err:  &googleapi.Error{Code: 503},
			want: CategoryNetwork,
		},
		{
			name: "url error",
			err:  &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("connection refused")},
			want: CategoryNetwork,
		},
		{
			name: "unknown error",
			err:  errors.New("something else"),
			want: CategoryNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.err); got != tt.want {
				t.Errorf("Categorize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	// Every category has a distinct, non-empty user-facing line
	errs := []error{
		sanitize.ErrEmptyInput,
		google.ErrNoCredentials,
		keep.ErrBadCredentials,
		tokencache.ErrDecryptFailure,
		errors.New("dial tcp: timeout"),
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := Message(err)
		if msg == "" {
			t.Errorf("Message(%v) is empty", err)
		}
		if seen[msg] {
			t.Errorf("Message(%v) = %q duplicates another category", err, msg)
		}
		seen[msg] = true

		// The raw error text must not leak into the notification
		if strings.Contains(msg, "dial tcp") {
			t.Errorf("Message(%v) = %q leaks the raw error", err, msg)
		}
	}
}
