// Package todo runs the submission pipeline shared by both backends:
// sanitize the raw input, perform exactly one create-item call against
// Google Keep or Google Tasks, and report the outcome to the user.
//
// Failures are classified into coarse categories (validation, missing
// or invalid credentials, token decrypt failure, network) and rendered
// as a single notification line. Nothing is retried automatically and
// no invocation shares state with the next beyond the token caches.
package todo
