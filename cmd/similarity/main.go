package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/LeandroLuccerini/similarity/pkg/api"
	"github.com/LeandroLuccerini/similarity/pkg/similarity"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "mcp":
		cmdMCP(os.Args[2:])
	case "score":
		cmdScore(os.Args[2:])
	case "batch":
		cmdBatch(os.Args[2:])
	case "runs":
		cmdRuns(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: similarity <command>

Commands:
  serve   Start the HTTP server
  mcp     Serve MCP tools over stdio
  score   Score one pair: similarity score -type string-fuzzy A B
  batch   Score a CSV file of pairs into the SQLite store
  runs    List stored batch runs, or the scores of one run
`)
}

func newLogger(w *os.File) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func buildRouter(cfg config, logger *slog.Logger) (http.Handler, error) {
	svc, err := api.NewService(cfg.Config)
	if err != nil {
		return nil, err
	}
	return api.NewRouter(svc, api.MakeEndpoints(svc, logger)), nil
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger(os.Stderr)
	cfg := mustLoadConfig(*cfgPath, logger)

	router, err := buildRouter(cfg, logger)
	if err != nil {
		logger.Error("build service", "error", err)
		os.Exit(1)
	}
	var current atomic.Pointer[http.Handler]
	current.Store(&router)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			(*current.Load()).ServeHTTP(w, r)
		}),
	}

	// SIGHUP: reload scoring configuration (addr changes need a restart).
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading config")
			next, err := loadConfig(*cfgPath, logger)
			if err == nil {
				var h http.Handler
				if h, err = buildRouter(next, logger); err == nil {
					current.Store(&h)
				}
			}
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			logger.Info("config reloaded", "transliterator", next.Transliterator)
		}
	}()

	go func() {
		logger.Info("similarity listening", "addr", cfg.Addr, "transliterator", cfg.Transliterator)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	// stdout carries the protocol; logs go to stderr.
	logger := newLogger(os.Stderr)
	cfg := mustLoadConfig(*cfgPath, logger)

	svc, err := api.NewService(cfg.Config)
	if err != nil {
		logger.Error("build service", "error", err)
		os.Exit(1)
	}
	srv := server.NewMCPServer("similarity", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, api.MakeEndpoints(svc, logger))

	logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server", "error", err)
		os.Exit(1)
	}
}

func cmdScore(args []string) {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	kind := fs.String("type", string(similarity.KindStringFuzzy), "similarity type")
	fs.Parse(args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: similarity score [-type T] A B")
		os.Exit(2)
	}

	logger := newLogger(os.Stderr)
	cfg := mustLoadConfig(*cfgPath, logger)

	sim, err := similarity.New(similarity.Kind(*kind), cfg.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	score, err := sim.Similarity(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%.3f\n", score)
}
