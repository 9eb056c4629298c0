package todo

import (
	"context"
	"errors"
	"net"
	"net/url"

	"google.golang.org/api/googleapi"

	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/keep"
	"github.com/teemow/todopush/internal/sanitize"
	"github.com/teemow/todopush/internal/tokencache"
)

// Categorize maps an error from the submission pipeline onto the coarse
// failure categories surfaced to the user. Unrecognized errors count as
// network failures; they come out of the remote call path.
func Categorize(err error) Category {
	switch {
	case errors.Is(err, sanitize.ErrEmptyInput):
		return CategoryValidation
	case errors.Is(err, google.ErrNoCredentials), errors.Is(err, google.ErrNoToken),
		errors.Is(err, keep.ErrMissingCredentials):
		return CategoryMissingCredentials
	case errors.Is(err, keep.ErrBadCredentials):
		return CategoryInvalidCredentials
	case errors.Is(err, tokencache.ErrDecryptFailure):
		return CategoryTokenDecrypt
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return CategoryInvalidCredentials
		}
		return CategoryNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return CategoryNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryNetwork
	}

	return CategoryNetwork
}

// Message renders a failure as the single user-facing notification line.
func Message(err error) string {
	switch Categorize(err) {
	case CategoryValidation:
		return "Nothing to add: the todo text is empty"
	case CategoryMissingCredentials:
		return "Configuration required: set your Google credentials and run 'todopush auth'"
	case CategoryInvalidCredentials:
		return "Google rejected your credentials; check your app password or re-run 'todopush auth'"
	case CategoryTokenDecrypt:
		return "Stored session could not be read; it will be recreated on the next attempt"
	default:
		return "Could not reach Google; the todo was not added"
	}
}
