// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

// Command import runs one pass of the catalog import pipeline and exits.
//
// # Run Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Connect to Redis when configured (resume checkpoint).
//  6. Walk the upstream catalog until exhausted or interrupted.
//
// SIGINT/SIGTERM cancels the run context; the pipeline stops at the next
// network or storage boundary and the checkpoint preserves its position.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lehoangduc/mangamirror/internal/importer"
	"github.com/lehoangduc/mangamirror/internal/platform/config"
	"github.com/lehoangduc/mangamirror/internal/platform/migration"
	pgstore "github.com/lehoangduc/mangamirror/internal/platform/postgres"
	redisstore "github.com/lehoangduc/mangamirror/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "mangamirror-import"))
	slog.SetDefault(log)

	log.Info("import_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadImporter()
	must(log, err, "load configuration")

	log.Info("configuration_loaded",
		slog.String("source", cfg.SourceURL),
		slog.Int("page_limit", cfg.PageLimit),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Resume Checkpoint ──────────────────────────────────────────────
	var checkpoint importer.Checkpoint = importer.NoopCheckpoint{}
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		checkpoint = importer.NewRedisCheckpoint(rdb)
	} else {
		log.Info("no redis configured, running without resume checkpoint")
	}

	// ── 6. Pipeline ───────────────────────────────────────────────────────
	client := importer.NewClient(importer.ClientConfig{
		BaseURL:      cfg.SourceURL,
		ListBackoff:  cfg.ListBackoff,
		FeedBackoff:  cfg.FeedBackoff,
		PagesBackoff: cfg.PagesBackoff,
	}, log)

	store := importer.NewPostgresStore(pool)

	job := importer.New(client, store, checkpoint, log, importer.Config{
		PageLimit:  cfg.PageLimit,
		EntryDelay: cfg.EntryDelay,
		PageDelay:  cfg.PageFetchDelay,
	})

	// Cancel the run on SIGINT/SIGTERM so the checkpoint keeps its position.
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	started := time.Now()
	stats, err := job.Run(runCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("import interrupted, checkpoint preserved",
				slog.Int("manga_seen", stats.MangaSeen),
			)
			return
		}
		log.Error("import failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("import_complete",
		slog.Duration("elapsed", time.Since(started)),
		slog.Int("manga_new", stats.MangaNew),
		slog.Int("chapters_new", stats.ChaptersNew),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
