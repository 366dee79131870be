// Command liftrank-mcp serves the LiftRank MCP tools over stdio. With -server
// it reads through the REST API of a running LiftRank server (usually over
// Tailscale); otherwise it connects to the database named in -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftrank/internal/config"
	"github.com/claude/liftrank/internal/mcp"
	"github.com/claude/liftrank/internal/storage"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "base URL of a LiftRank server, e.g. http://liftrank")
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	flag.Parse()

	// stdout carries the protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(*serverURL, *configPath, log); err != nil {
		log.Error("liftrank-mcp failed", "error", err)
		os.Exit(1)
	}
}

func run(serverURL, configPath string, log *slog.Logger) error {
	if serverURL != "" {
		log.Info("remote mode", "server", serverURL)
		s := mcp.New(mcp.NewHTTPClient(serverURL), nil, Version, log)
		return mcpserver.ServeStdio(s)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	defer db.Close()

	uid, err := db.GetOrCreateUser(ctx, cfg.UserLogin, cfg.UserLogin)
	if err != nil {
		return fmt.Errorf("resolving user %s: %w", cfg.UserLogin, err)
	}

	engine := percentile.NewDefault()
	if path := cfg.Strength.StandardsFile; path != "" {
		table, aliases, err := standards.LoadFile(path)
		if err != nil {
			return err
		}
		engine = percentile.New(table, aliases)
	}

	log.Info("local mode", "user", cfg.UserLogin, "user_id", uid)
	s := mcp.New(db, engine, Version, log)
	return mcpserver.ServeStdio(s, mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, uid)
	}))
}
