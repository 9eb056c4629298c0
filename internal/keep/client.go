package keep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/teemow/todopush/internal/logging"
	"github.com/teemow/todopush/internal/tokencache"
)

const (
	// defaultAuthURL is the master-token exchange endpoint used by the
	// Android client login flow. Unofficial, so it stays injectable.
	defaultAuthURL = "https://android.clients.google.com/auth"

	// defaultAPIURL is the notes endpoint base.
	defaultAPIURL = "https://keep.googleapis.com/v1"

	// loginService identifies the Keep scope in the login exchange.
	loginService = "oauth2:https://www.googleapis.com/auth/memento"
)

// ErrBadCredentials indicates the login exchange rejected the email or
// app password.
var ErrBadCredentials = errors.New("keep rejected the credentials")

// ErrMissingCredentials indicates no email or app password was
// configured.
var ErrMissingCredentials = errors.New("keep email or app password not configured")

// Client talks to Google Keep using the app-password login flow.
//
// A master token obtained from the login exchange is kept in the token
// cache; as long as the cached token decrypts and the server accepts it,
// no login round-trip happens.
type Client struct {
	httpClient *http.Client
	authURL    string
	apiURL     string

	email       string
	appPassword string
	cache       tokencache.Cache
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAuthURL overrides the master-token exchange endpoint.
func WithAuthURL(u string) Option {
	return func(c *Client) { c.authURL = u }
}

// WithAPIURL overrides the notes endpoint base.
func WithAPIURL(u string) Option {
	return func(c *Client) { c.apiURL = u }
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Keep client for the given account. The cache holds
// the encrypted master token between invocations.
func NewClient(email, appPassword string, cache tokencache.Cache, opts ...Option) (*Client, error) {
	if email == "" {
		return nil, &KeepError{Op: "initialize", Err: fmt.Errorf("%w: email", ErrMissingCredentials)}
	}
	if appPassword == "" {
		return nil, &KeepError{Op: "initialize", Email: email, Err: fmt.Errorf("%w: app password", ErrMissingCredentials)}
	}
	if cache == nil {
		return nil, &KeepError{Op: "initialize", Email: email, Err: fmt.Errorf("token cache cannot be nil")}
	}

	c := &Client{
		httpClient:  http.DefaultClient,
		authURL:     defaultAuthURL,
		apiURL:      defaultAPIURL,
		email:       email,
		appPassword: appPassword,
		cache:       cache,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Email returns the account this client is associated with.
func (c *Client) Email() string {
	return c.email
}

// Login exchanges the email and app password for a master token.
// It always performs a network round-trip; most callers want
// authenticate, which consults the cache first.
func (c *Client) Login(ctx context.Context) (string, error) {
	form := url.Values{
		"Email":       {c.email},
		"Passwd":      {c.appPassword},
		"service":     {loginService},
		"accountType": {"HOSTED_OR_GOOGLE"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &KeepError{Op: "login", Email: c.email, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &KeepError{Op: "login", Email: c.email, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &KeepError{Op: "login", Email: c.email, Err: err}
	}

	fields := parseAuthResponse(string(body))

	if resp.StatusCode == http.StatusForbidden || fields["Error"] == "BadAuthentication" {
		return "", &KeepError{Op: "login", Email: c.email, Err: ErrBadCredentials}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &KeepError{Op: "login", Email: c.email, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	token := fields["Token"]
	if token == "" {
		token = fields["Auth"]
	}
	if token == "" {
		return "", &KeepError{Op: "login", Email: c.email, Err: fmt.Errorf("no token in auth response")}
	}

	c.logger.Debug("keep login succeeded",
		logging.Service("keep"),
		logging.UserHash(c.email),
		slog.String("token", logging.SanitizeToken(token)))

	return token, nil
}

// authenticate returns a usable master token, preferring the cache.
// An undecryptable or missing cache entry triggers a fresh login; the
// new token is persisted before this returns.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	return tokencache.LoadOrCreate(ctx, c.cache, c.Login)
}

// CreateNote creates a single note and returns the server's view of it.
// If a cached master token turns out to be revoked, the cache is cleared
// and one fresh login is attempted before giving up.
func (c *Client) CreateNote(ctx context.Context, title, text string) (*Note, error) {
	if text == "" {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: fmt.Errorf("text cannot be empty")}
	}

	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	note, err := c.createNote(ctx, token, title, text)
	if err == nil {
		return note, nil
	}

	// A rejected token means the cache held a revoked master token.
	// Clear it and retry once with a fresh login.
	if errors.Is(err, ErrBadCredentials) {
		if clearErr := c.cache.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		token, loginErr := c.Login(ctx)
		if loginErr != nil {
			return nil, loginErr
		}
		if saveErr := c.cache.Save(ctx, token); saveErr != nil {
			return nil, saveErr
		}
		return c.createNote(ctx, token, title, text)
	}

	return nil, err
}

func (c *Client) createNote(ctx context.Context, token, title, text string) (*Note, error) {
	payload, err := json.Marshal(map[string]string{
		"title": title,
		"text":  text,
	})
	if err != nil {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/notes", bytes.NewReader(payload))
	if err != nil {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "GoogleLogin auth="+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: ErrBadCredentials}
	default:
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	note := &Note{}
	if err := json.NewDecoder(resp.Body).Decode(note); err != nil {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: fmt.Errorf("invalid response: %w", err)}
	}

	return note, nil
}

// parseAuthResponse splits the key=value line format of the login
// endpoint into a map.
func parseAuthResponse(body string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = value
	}
	return fields
}
