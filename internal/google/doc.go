// Package google handles OAuth2 authentication for the Google Tasks
// backend.
//
// The client configuration is an installed-app credentials.json exported
// from the Google API console; the token obtained through the consent
// flow is cached on disk with 0600 permissions. Refreshed tokens are
// written back through a persisting token source, so a valid cached
// token never costs an extra authentication round-trip on the next
// invocation.
package google
