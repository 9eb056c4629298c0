package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teemow/todopush/internal/config"
	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/keep"
	"github.com/teemow/todopush/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate against the configured backend",
		Long: `Authenticate and cache credentials for the configured service.

For Google Tasks this runs the OAuth consent flow in your browser and
stores the resulting token. For Google Keep it exchanges the app
password for a master token and primes the encrypted cache, so later
submissions need no additional login round trips.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateCredentials(); err != nil {
				return err
			}
			logger := newLogger(cfg)
			ctx := cmd.Context()

			switch cfg.Service {
			case config.ServiceTasks:
				if check {
					return checkTasksAuth(cfg)
				}
				return runTasksAuth(ctx, cfg)
			case config.ServiceKeep:
				if check {
					return checkKeepAuth(ctx, cfg, logger)
				}
				return runKeepAuth(ctx, cfg, logger)
			default:
				return fmt.Errorf("unknown service %q", cfg.Service)
			}
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only report whether valid credentials are cached")
	return cmd
}

func checkTasksAuth(cfg *config.Config) error {
	auth, err := google.NewOAuth(cfg.Tasks.CredentialsFile, cfg.Tasks.TokenFile)
	if err != nil {
		return err
	}
	if !auth.HasToken() {
		return errors.New("no cached token; run 'todopush auth' first")
	}
	pterm.Success.Println("Tasks token cached")
	return nil
}

// runTasksAuth walks the installed-app OAuth consent flow: a loopback
// listener receives the redirect, the browser opens the consent page,
// and the returned code is exchanged for a token.
func runTasksAuth(ctx context.Context, cfg *config.Config) error {
	auth, err := google.NewOAuth(cfg.Tasks.CredentialsFile, cfg.Tasks.TokenFile)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("starting callback listener: %w", err)
	}
	defer listener.Close()

	state, err := randomState()
	if err != nil {
		return err
	}
	redirectURL := fmt.Sprintf("http://%s/callback", listener.Addr().String())
	auth.SetRedirectURL(redirectURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("oauth state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- errors.New("consent denied or no code returned")
			return
		}
		fmt.Fprintln(w, "Authentication complete. You can close this tab.")
		codeCh <- code
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer srv.Close()

	url := auth.AuthURL(state)
	pterm.Info.Println("Open this URL in your browser to grant access:")
	pterm.Println()
	pterm.Println("  " + url)
	pterm.Println()
	if err := browser.OpenURL(url); err != nil {
		pterm.Warning.Printf("Could not open browser automatically: %v\n", err)
	}

	select {
	case code := <-codeCh:
		if err := auth.Exchange(ctx, code); err != nil {
			return fmt.Errorf("exchanging authorization code: %w", err)
		}
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Minute):
		return errors.New("timed out waiting for OAuth consent")
	case <-ctx.Done():
		return ctx.Err()
	}

	pterm.Success.Println("Tasks token saved to " + cfg.Tasks.TokenFile)
	return nil
}

func checkKeepAuth(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cache, err := newMasterTokenCache(cfg)
	if err != nil {
		return err
	}
	if _, err := cache.Load(ctx); err != nil {
		return errors.New("no cached master token; run 'todopush auth' first")
	}
	pterm.Success.Println("Keep master token cached")
	return nil
}

// runKeepAuth performs a fresh login with the app password and primes
// the master-token cache.
func runKeepAuth(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cache, err := newMasterTokenCache(cfg)
	if err != nil {
		return err
	}
	client, err := keep.NewClient(cfg.Keep.Email, cfg.Keep.AppPassword, cache, keep.WithLogger(logger))
	if err != nil {
		return err
	}

	token, err := client.Login(ctx)
	if err != nil {
		if errors.Is(err, keep.ErrBadCredentials) {
			return errors.New("login rejected; check keep.email and keep.app_password")
		}
		return err
	}
	if err := cache.Save(ctx, token); err != nil {
		return fmt.Errorf("caching master token: %w", err)
	}

	logger.Info("master token cached",
		logging.Operation("auth"),
		logging.UserHash(cfg.Keep.Email))
	pterm.Success.Println("Keep master token cached for " + cfg.Keep.Email)
	return nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
