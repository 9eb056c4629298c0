package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teemow/todopush/internal/config"
	"github.com/teemow/todopush/internal/launcher"
	"github.com/teemow/todopush/internal/todo"
)

// lazyService defers backend construction until the first submission,
// so the event loop can start (and answer configuration hints) before
// credentials exist.
type lazyService struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *slog.Logger
	svc    *todo.Service
}

func (l *lazyService) get(ctx context.Context) (*todo.Service, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.svc != nil {
		return l.svc, nil
	}
	svc, err := newTodoService(ctx, l.cfg, l.logger)
	if err != nil {
		return nil, err
	}
	l.svc = svc
	return svc, nil
}

func (l *lazyService) Add(ctx context.Context, raw string) (*todo.Receipt, error) {
	svc, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return svc.Add(ctx, raw)
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the launcher event loop on stdin/stdout",
		Long: `Read launcher events as line-delimited JSON on stdin and answer on
stdout. Query events return preview items for the typed text; select
events forward the title to the configured backend. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service := &lazyService{cfg: cfg, logger: logger}
			loop, err := launcher.NewLoop(service, serviceLabel(cfg), cfg.Keyword, logger,
				launcher.WithConfigCheck(func() error {
					_, err := service.get(ctx)
					return err
				}))
			if err != nil {
				return err
			}

			logger.Info("launcher loop started", "service", string(cfg.Service), "keyword", cfg.Keyword)
			return loop.Run(ctx, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().String("keyword", "", "Launcher keyword shown in hint items")
	cmd.Flags().String("list", "", "Google Tasks list ID (tasks service only)")
	return cmd
}
