package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hotelsite/internal/config"
	"github.com/goliatone/go-hotelsite/internal/logging"
	"github.com/goliatone/go-hotelsite/internal/metrics"
	"github.com/goliatone/go-hotelsite/internal/ratelimit"
	"github.com/goliatone/go-hotelsite/internal/server"
	"github.com/goliatone/go-hotelsite/internal/session"
	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/orchestrator"
	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/renderers/jsonview"
	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

func serveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath, cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, cmd.ErrOrStderr())
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	store, err := contentStore(cfg, logger)
	if err != nil {
		return err
	}
	set := forms.SiteForms(store, forms.WithLogger(logger))

	pages, err := pagePipeline(cfg, store, set)
	if err != nil {
		return err
	}

	mt := metrics.New()
	sessions := session.New(
		session.WithCookie(cfg.Session.Cookie, cfg.Session.Secure),
		session.WithIdleTTL(cfg.Session.IdleTTL),
		session.WithDefaultTheme(cfg.Theme.DefaultVariant),
		session.WithLogger(logger),
		session.WithMetrics(mt),
		session.WithLimiter(ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.Session.IdleTTL)),
		session.WithNotifyOptions(notify.WithDefaultDuration(cfg.Toast.Duration)),
	)

	srv, err := server.New(
		server.WithAddr(cfg.Addr),
		server.WithGrace(cfg.Grace),
		server.WithPages(pages),
		server.WithForms(set),
		server.WithSessions(sessions),
		server.WithMetrics(mt),
		server.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if cfg.Content.Watch {
		go func() {
			if err := store.Watch(ctx, cfg.Content.Dir); err != nil {
				logger.Error("content watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("hotelsite starting", "version", Version, "addr", cfg.Addr, "theme", cfg.Theme.DefaultVariant)
	return srv.Run(ctx)
}

func contentStore(cfg config.Config, logger *slog.Logger) (*content.Store, error) {
	site, err := content.Default()
	if err != nil {
		return nil, err
	}
	store := content.NewStore(site,
		content.WithLogger(logger),
		content.WithReloadHook(func(s *content.Site) {
			logger.Info("content reloaded", "rooms", len(s.Rooms))
		}),
	)
	if cfg.Content.Dir != "" {
		if err := store.LoadDir(cfg.Content.Dir); err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
	}
	return store, nil
}

func pagePipeline(cfg config.Config, store *content.Store, set forms.Set) (*orchestrator.Orchestrator, error) {
	var opts []vanilla.Option
	if cfg.Templates.Dir != "" {
		opts = append(opts, vanilla.WithTemplatesDir(cfg.Templates.Dir))
	}
	opts = append(opts, vanilla.WithReload(cfg.Templates.Reload), vanilla.WithAssetsPrefix(theming.AssetsPrefix))
	html, err := vanilla.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(jsonview.New())

	selector, err := theming.NewSelector(cfg.Theme.DefaultVariant, theming.Manifest())
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	return orchestrator.New(
		orchestrator.WithContent(store),
		orchestrator.WithForms(set),
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithTransformer(orchestrator.ChainTransformers(
			orchestrator.CanonicalURL(cfg.PublicURL),
			orchestrator.NoIndexErrors(),
		)),
	), nil
}
