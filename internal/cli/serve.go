package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	fitplan "github.com/claude/fitplan"
	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/config"
	fitmcp "github.com/claude/fitplan/internal/mcp"
	"github.com/claude/fitplan/internal/server"
	"github.com/claude/fitplan/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"tailscale.com/tsnet"
)

var serveMigrateOnly bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planning HTTP API",
	Long: `Serve the planning API, Prometheus metrics and a streamable MCP endpoint.

With catalog.source=postgres, migrations are applied on startup and catalogs
can be replaced via POST /api/v1/catalog. With tailscale.enabled the server
listens on the tailnet instead of server.host:server.port.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServe(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}

		log := cmdLogger(cmd, cfg)
		log.Info("FitPlan starting", "version", rootCmd.Version, "source", cfg.Catalog.Source)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Catalog.Source == config.SourcePostgres {
			if err := storage.RunMigrations(cfg.Database.DSN(), fitplan.Migrations, "migrations"); err != nil {
				return err
			}
			log.Info("migrations applied")
		}
		if serveMigrateOnly {
			log.Info("migrate-only: exiting")
			return nil
		}

		src, db, closeSource, err := openSource(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeSource()

		// Fail on an unreadable catalog now rather than on the first request.
		exercises, err := src.Load(ctx)
		if err != nil {
			return err
		}
		log.Info("catalog loaded", "exercises", len(exercises))
		if dups := catalog.DuplicateTitles(exercises); len(dups) > 0 {
			log.Warn("duplicate titles share one weekly slot", "titles", dups)
		}

		var store server.Store
		if db != nil {
			store = db
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := server.New(server.Deps{
			Source:   src,
			Store:    store,
			Defaults: cfg.PlanConfig(),
			APIKey:   cfg.Auth.APIKey,
			Registry: registry,
			Log:      log,
		})
		mcpSrv := fitmcp.New(src, cfg.PlanConfig(), rootCmd.Version, log)
		srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))

		listener, closeListener, err := listen(cfg, log)
		if err != nil {
			return err
		}
		defer closeListener()

		httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() {
			if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
		}
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
		log.Info("server stopped")
		return nil
	},
}

// listen opens a tsnet listener when Tailscale is enabled, otherwise plain TCP.
func listen(cfg *config.Config, log *slog.Logger) (net.Listener, func(), error) {
	if cfg.Tailscale.Enabled {
		ts := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := ts.Start(); err != nil {
			return nil, nil, fmt.Errorf("tsnet start: %w", err)
		}
		ln, err := ts.Listen("tcp", ":80")
		if err != nil {
			ts.Close()
			return nil, nil, fmt.Errorf("tsnet listen: %w", err)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
		return ln, func() { ts.Close() }, nil
	}

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	return ln, func() {}, nil
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrateOnly, "migrate-only", false, "Run migrations and exit")
}
