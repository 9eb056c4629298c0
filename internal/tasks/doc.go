// Package tasks provides a thin client for the Google Tasks API
// (tasks/v1): listing task lists and inserting a single task.
//
// Authentication goes through the OAuth2 token handled by package
// google; the token is cached on disk and refreshed tokens are written
// back, so repeated invocations reuse the session.
package tasks
