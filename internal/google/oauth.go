package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	tasks "google.golang.org/api/tasks/v1"
)

// ErrNoCredentials indicates that the OAuth client configuration
// (credentials.json) is missing or unreadable.
var ErrNoCredentials = errors.New("no OAuth client credentials found")

// ErrNoToken indicates that no OAuth token has been stored yet; the user
// needs to run the auth flow.
var ErrNoToken = errors.New("no OAuth token found")

// Scopes requested during the consent flow. Tasks is the only API this
// tool writes to.
var Scopes = []string{
	tasks.TasksScope,
}

// OAuth holds the OAuth2 client configuration and the token file location.
type OAuth struct {
	conf      *oauth2.Config
	tokenFile string
}

// NewOAuth reads an installed-app client configuration from
// credentialsFile and returns an OAuth handle that caches its token at
// tokenFile.
func NewOAuth(credentialsFile, tokenFile string) (*OAuth, error) {
	if tokenFile == "" {
		return nil, fmt.Errorf("token file path cannot be empty")
	}

	data, err := os.ReadFile(credentialsFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, credentialsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return &OAuth{
		conf:      conf,
		tokenFile: tokenFile,
	}, nil
}

// SetRedirectURL overrides the redirect URL from the credentials file.
// The auth flow uses this to point the consent redirect at its loopback
// listener.
func (o *OAuth) SetRedirectURL(url string) {
	o.conf.RedirectURL = url
}

// AuthURL returns the consent URL for the user to authorize access.
func (o *OAuth) AuthURL(state string) string {
	return o.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for tokens and persists them.
func (o *OAuth) Exchange(ctx context.Context, authCode string) error {
	tok, err := o.conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	if err := saveToken(o.tokenFile, tok); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// HasToken reports whether a stored token exists.
func (o *OAuth) HasToken() bool {
	_, err := os.Stat(o.tokenFile)
	return err == nil
}

// TokenSource returns a token source backed by the stored token.
// Refreshed tokens are written back to the token file so the next
// invocation reuses them without another refresh round-trip.
func (o *OAuth) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := loadToken(o.tokenFile)
	if err != nil {
		return nil, err
	}

	return newPersistingTokenSource(o.conf.TokenSource(ctx, tok), o.tokenFile, tok), nil
}

// Client returns an HTTP client that authenticates requests with the
// stored token.
func (o *OAuth) Client(ctx context.Context) (*http.Client, error) {
	ts, err := o.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
