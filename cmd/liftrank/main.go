package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tailscale.com/tsnet"

	"github.com/claude/liftrank/internal/config"
	"github.com/claude/liftrank/internal/logging"
	"github.com/claude/liftrank/internal/mcp"
	"github.com/claude/liftrank/internal/metrics"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/server"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log, closer := logging.New(cfg.Log)
	defer closer.Close()
	log.Info("LiftRank starting", "version", Version)

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, cfg.Database.MigrationsPath); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn, cfg.Database.MaxConns)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	engine := percentile.NewDefault()
	var aliases standards.Resolver
	if path := cfg.Strength.StandardsFile; path != "" {
		table, fileAliases, err := standards.LoadFile(path)
		if err != nil {
			log.Error("failed to load strength standards", "path", path, "error", err)
			os.Exit(1)
		}
		engine = percentile.New(table, fileAliases)
		aliases = fileAliases
		log.Info("strength standards loaded", "path", path, "exercises", len(table.Exercises()))
	}

	// Metrics
	reg := metrics.SetupPrometheus(pgxpoolprometheus.NewCollector(db.Pool, map[string]string{"db_name": cfg.Database.Name}))
	m := metrics.NewManager("server", reg)

	// MCP over streamable HTTP, scoped to the caller resolved by the server.
	mcpSrv := mcp.New(db, engine, Version, log)
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return mcp.WithUserID(ctx, server.RequestUserID(r))
		}),
	)

	opts := server.Options{
		APIKey:    cfg.Auth.APIKey,
		LocalUser: cfg.UserLogin,
		Rest:      cfg.Strength.Rest(),
		Recommend: recommend.Options{
			CacheTTL:  cfg.Strength.CacheTTL(),
			Increment: cfg.Strength.RecommendationIncrement,
		},
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MCPHandler:     mcpHandler,
		Aliases:        aliases,
	}
	srv := server.New(db, engine, m, opts, log)

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "user", cfg.UserLogin, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
