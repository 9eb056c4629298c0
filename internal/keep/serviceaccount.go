package keep

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	keepapi "google.golang.org/api/keep/v1"
	"google.golang.org/api/option"
)

// ServiceAccountClient talks to Keep through the official API, which is
// only available to Workspace domains with domain-wide delegation. It
// impersonates the target user via a service-account key.
type ServiceAccountClient struct {
	svc   *keepapi.Service
	email string
}

// NewServiceAccountClient reads a service-account key file and returns a
// client acting as impersonateEmail.
func NewServiceAccountClient(ctx context.Context, keyFile, impersonateEmail string) (*ServiceAccountClient, error) {
	if impersonateEmail == "" {
		return nil, &KeepError{Op: "initialize", Err: fmt.Errorf("%w: impersonation email", ErrMissingCredentials)}
	}
	if keyFile == "" {
		return nil, &KeepError{Op: "initialize", Email: impersonateEmail, Err: fmt.Errorf("%w: service account file", ErrMissingCredentials)}
	}

	data, err := os.ReadFile(keyFile)
	if os.IsNotExist(err) {
		return nil, &KeepError{Op: "initialize", Email: impersonateEmail, Err: fmt.Errorf("%w: service account file %s", ErrMissingCredentials, keyFile)}
	}
	if err != nil {
		return nil, &KeepError{Op: "initialize", Email: impersonateEmail, Err: fmt.Errorf("failed to read service account file: %w", err)}
	}

	conf, err := google.JWTConfigFromJSON(data, keepapi.KeepScope)
	if err != nil {
		return nil, &KeepError{Op: "initialize", Email: impersonateEmail, Err: fmt.Errorf("failed to parse service account file: %w", err)}
	}
	conf.Subject = impersonateEmail

	svc, err := keepapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, &KeepError{Op: "initialize", Email: impersonateEmail, Err: fmt.Errorf("failed to create Keep service: %w", err)}
	}

	return &ServiceAccountClient{
		svc:   svc,
		email: impersonateEmail,
	}, nil
}

// Email returns the impersonated account.
func (c *ServiceAccountClient) Email() string {
	return c.email
}

// CreateNote creates a single note via the official Keep API.
func (c *ServiceAccountClient) CreateNote(ctx context.Context, title, text string) (*Note, error) {
	created, err := c.svc.Notes.Create(&keepapi.Note{
		Title: title,
		Body: &keepapi.Section{
			Text: &keepapi.TextContent{Text: text},
		},
	}).Context(ctx).Do()
	if err != nil {
		return nil, &KeepError{Op: "createNote", Email: c.email, Err: err}
	}

	note := &Note{
		ID:    created.Name,
		Title: created.Title,
		Text:  text,
	}
	if created.CreateTime != "" {
		if ts, err := time.Parse(time.RFC3339, created.CreateTime); err == nil {
			note.Created = ts
		}
	}

	return note, nil
}
