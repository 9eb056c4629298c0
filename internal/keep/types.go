package keep

import (
	"fmt"
	"time"
)

// Note represents a Google Keep note as returned by a create call.
type Note struct {
	// ID is the server-assigned note identifier
	ID string `json:"id"`

	// Title is the note title
	Title string `json:"title"`

	// Text is the note body
	Text string `json:"text"`

	// Created is the server-side creation timestamp
	Created time.Time `json:"created,omitempty"`
}

// KeepError represents an error that occurred during Keep operations
type KeepError struct {
	// Op is the operation that failed (e.g., "login", "createNote")
	Op string

	// Email is the account associated with the operation
	Email string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *KeepError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("keep %s (account: %s): %v", e.Op, e.Email, e.Err)
	}
	return fmt.Sprintf("keep %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *KeepError) Unwrap() error {
	return e.Err
}
