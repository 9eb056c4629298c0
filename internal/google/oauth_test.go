package google

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

const testCredentialsJSON = `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "client_secret": "test-secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(testCredentialsJSON), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewOAuth(t *testing.T) {
	credFile := writeCredentials(t)
	tokenFile := filepath.Join(t.TempDir(), "tasks.token")

	o, err := NewOAuth(credFile, tokenFile)
	if err != nil {
		t.Fatalf("NewOAuth() error = %v", err)
	}
	if o == nil {
		t.Fatal("NewOAuth() returned nil")
	}
}

func TestNewOAuth_MissingCredentials(t *testing.T) {
	_, err := NewOAuth(filepath.Join(t.TempDir(), "nope.json"), filepath.Join(t.TempDir(), "t"))
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("NewOAuth() error = %v, want ErrNoCredentials", err)
	}
}

func TestNewOAuth_InvalidCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := NewOAuth(path, filepath.Join(t.TempDir(), "t"))
	if err == nil {
		t.Error("NewOAuth() expected error for malformed credentials")
	}
}

func TestNewOAuth_EmptyTokenFile(t *testing.T) {
	_, err := NewOAuth(writeCredentials(t), "")
	if err == nil {
		t.Error("NewOAuth() expected error for empty token file path")
	}
}

func TestAuthURL(t *testing.T) {
	o, err := NewOAuth(writeCredentials(t), filepath.Join(t.TempDir(), "t"))
	if err != nil {
		t.Fatal(err)
	}

	url := o.AuthURL("state-123")
	if !strings.Contains(url, "test-client-id") {
		t.Errorf("AuthURL() = %q, want client id in URL", url)
	}
	if !strings.Contains(url, "state-123") {
		t.Errorf("AuthURL() = %q, want state in URL", url)
	}
	if !strings.Contains(url, "tasks") {
		t.Errorf("AuthURL() = %q, want tasks scope in URL", url)
	}
}

func TestHasToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "tasks.token")
	o, err := NewOAuth(writeCredentials(t), tokenFile)
	if err != nil {
		t.Fatal(err)
	}

	if o.HasToken() {
		t.Error("HasToken() = true before any token is stored")
	}

	tok := &oauth2.Token{AccessToken: "at", RefreshToken: "rt"}
	if err := saveToken(tokenFile, tok); err != nil {
		t.Fatal(err)
	}

	if !o.HasToken() {
		t.Error("HasToken() = false after token was stored")
	}
}

func TestTokenSource_NoToken(t *testing.T) {
	o, err := NewOAuth(writeCredentials(t), filepath.Join(t.TempDir(), "tasks.token"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = o.TokenSource(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("TokenSource() error = %v, want ErrNoToken", err)
	}
}

func TestSaveLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.token")
	tok := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	if err := saveToken(path, tok); err != nil {
		t.Fatalf("saveToken() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file permissions = %04o, want 0600", perm)
	}

	got, err := loadToken(path)
	if err != nil {
		t.Fatalf("loadToken() error = %v", err)
	}
	if got.AccessToken != tok.AccessToken || got.RefreshToken != tok.RefreshToken {
		t.Errorf("loadToken() = %+v, want %+v", got, tok)
	}
}

func TestLoadToken_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.token")

	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadToken(path); !errors.Is(err, ErrNoToken) {
		t.Errorf("loadToken() error = %v, want ErrNoToken for empty token", err)
	}

	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadToken(path); err == nil {
		t.Error("loadToken() expected error for malformed file")
	}
}

func TestPersistingTokenSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.token")
	initial := &oauth2.Token{AccessToken: "old-access", RefreshToken: "rt"}
	if err := saveToken(path, initial); err != nil {
		t.Fatal(err)
	}

	refreshed := &oauth2.Token{AccessToken: "new-access", RefreshToken: "rt", Expiry: time.Now().Add(time.Hour)}
	ts := newPersistingTokenSource(oauth2.StaticTokenSource(refreshed), path, initial)

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got.AccessToken != "new-access" {
		t.Errorf("Token() access token = %q, want %q", got.AccessToken, "new-access")
	}

	// The refreshed token must have been written back to disk
	stored, err := loadToken(path)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AccessToken != "new-access" {
		t.Errorf("stored access token = %q, want %q after refresh", stored.AccessToken, "new-access")
	}
}
