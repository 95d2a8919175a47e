package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ConnerV42/spokane-public-brief/db"
	"github.com/ConnerV42/spokane-public-brief/internal/config"
	"github.com/ConnerV42/spokane-public-brief/internal/ingest"
	"github.com/ConnerV42/spokane-public-brief/internal/repository"
	"github.com/ConnerV42/spokane-public-brief/pkg/legistar"
)

// Runs one full ingestion pass and exits. Meant to be invoked on a
// schedule (cron, systemd timer).
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	// The queue is optional: without it meetings are still ingested,
	// they just never get analyzed.
	var queue ingest.JobQueue
	if cfg.RedisURL != "" {
		q, err := db.ConnectQueue(cfg.RedisURL, cfg.AnalysisQueueKey)
		if err != nil {
			slog.Warn("error connecting to Redis, analysis will not be queued", "error", err)
		} else {
			defer q.Close()
			queue = q
		}
	}

	orchestrator := ingest.NewOrchestrator(
		legistar.NewClient(cfg.LegistarClient),
		repository.NewMeetingRepository(conn),
		repository.NewItemRepository(conn),
		repository.NewDocumentRepository(conn),
		queue,
	)

	report, err := orchestrator.Run(context.Background())
	if err != nil {
		slog.Error("ingestion aborted", "error", err)
		os.Exit(1)
	}

	slog.Info("ingestion finished", "stored", report.Stored, "errors", report.Errors)
}
