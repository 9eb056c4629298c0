package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teemow/todopush/internal/config"
	"github.com/teemow/todopush/internal/google"
	"github.com/teemow/todopush/internal/keep"
	"github.com/teemow/todopush/internal/logging"
	"github.com/teemow/todopush/internal/notify"
	"github.com/teemow/todopush/internal/tasks"
	"github.com/teemow/todopush/internal/todo"
	"github.com/teemow/todopush/internal/tokencache"
)

const keyringService = "todopush"

// serviceLabel returns the human-readable backend name for UI text.
func serviceLabel(cfg *config.Config) string {
	if cfg.Service == config.ServiceTasks {
		return "Google Tasks"
	}
	return "Google Keep"
}

// newMasterTokenCache builds the Keep master-token cache selected by
// the configuration: an encrypted file keyed by the app password, or
// the OS keyring.
func newMasterTokenCache(cfg *config.Config) (tokencache.Cache, error) {
	switch cfg.Keep.Storage {
	case config.StorageKeyring:
		return tokencache.NewKeyringCache(keyringService, cfg.Keep.Email)
	default:
		return tokencache.NewFileCache(cfg.Keep.TokenFile, cfg.Keep.AppPassword)
	}
}

// newSubmitter builds the backend submitter selected by the
// configuration.
func newSubmitter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (todo.Submitter, error) {
	switch cfg.Service {
	case config.ServiceKeep:
		if cfg.Keep.Mode == config.KeepAuthServiceAccount {
			client, err := keep.NewServiceAccountClient(ctx, cfg.Keep.ServiceAccountFile, cfg.Keep.Email)
			if err != nil {
				return nil, fmt.Errorf("creating Keep service-account client: %w", err)
			}
			return todo.NewKeepSubmitter(client), nil
		}

		cache, err := newMasterTokenCache(cfg)
		if err != nil {
			return nil, fmt.Errorf("opening master token cache: %w", err)
		}
		client, err := keep.NewClient(cfg.Keep.Email, cfg.Keep.AppPassword, cache, keep.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("creating Keep client: %w", err)
		}
		return todo.NewKeepSubmitter(client), nil

	case config.ServiceTasks:
		auth, err := google.NewOAuth(cfg.Tasks.CredentialsFile, cfg.Tasks.TokenFile)
		if err != nil {
			return nil, err
		}
		client, err := tasks.NewClient(ctx, auth)
		if err != nil {
			return nil, fmt.Errorf("creating Tasks client: %w", err)
		}
		return todo.NewTasksSubmitter(client, cfg.Tasks.List), nil

	default:
		return nil, fmt.Errorf("unknown service %q", cfg.Service)
	}
}

// newTodoService wires the submitter, notifier and sanitizer settings
// into the application service.
func newTodoService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*todo.Service, error) {
	submitter, err := newSubmitter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var notifier todo.Notifier
	if cfg.Notify {
		client, err := notify.NewClient("todopush")
		if err != nil {
			// A missing notify-send binary degrades to log-only
			// reporting instead of blocking submissions.
			logger.Warn("desktop notifications unavailable", logging.Err(err))
		} else {
			notifier = client
		}
	}

	return todo.NewService(submitter, notifier, cfg.MaxTitleLength, logger)
}
