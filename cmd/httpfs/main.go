package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.httpfs.me/internal/router"
	"go.httpfs.me/internal/server"
	"go.httpfs.me/internal/storage"
)

func main() {
	dir := flag.String("directory", "", "directory served under /files/; the routes answer 404 when unset")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var files router.FileStore
	if *dir != "" {
		store, err := storage.NewDirStore(*dir)
		if err != nil {
			slog.Error("invalid --directory", "err", err)
			os.Exit(1)
		}
		slog.Info("serving files", "dir", store.Dir())
		files = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(router.New(files))
	if err := srv.ListenAndServe(ctx); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// go run ./cmd/httpfs --directory /tmp/files
// curl -v http://127.0.0.1:4221/echo/abc
// curl -v -H "User-Agent: test-client/1.0" http://127.0.0.1:4221/user-agent
// curl -v --data-binary @README.md http://127.0.0.1:4221/files/readme
// echo -e "GET / HTTP/1.1\r\n\r\n" | nc 127.0.0.1 4221
