package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ConnerV42/spokane-public-brief/db"
	"github.com/ConnerV42/spokane-public-brief/internal/analyze"
	"github.com/ConnerV42/spokane-public-brief/internal/config"
	"github.com/ConnerV42/spokane-public-brief/internal/ingest"
	"github.com/ConnerV42/spokane-public-brief/internal/repository"
	"github.com/ConnerV42/spokane-public-brief/pkg/legistar"
	"github.com/ConnerV42/spokane-public-brief/pkg/llm"
)

const popTimeout = 5 * time.Second

// Consumes analysis jobs from the Redis queue. Each job either enriches
// one meeting or triggers a full ingestion pass; failures are logged per
// job and the loop keeps going.
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	queue, err := db.ConnectQueue(cfg.RedisURL, cfg.AnalysisQueueKey)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer queue.Close()

	var analyzer llm.Analyzer
	switch {
	case cfg.AnthropicAPIKey != "":
		analyzer = llm.NewAnthropicAnalyzer(cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		analyzer = llm.NewOpenAIAnalyzer(cfg.OpenAIAPIKey)
	default:
		log.Fatal("no model API key configured")
	}

	itemRepo := repository.NewItemRepository(conn)
	analyzeOrchestrator := analyze.NewOrchestrator(itemRepo, analyzer)
	ingestOrchestrator := ingest.NewOrchestrator(
		legistar.NewClient(cfg.LegistarClient),
		repository.NewMeetingRepository(conn),
		itemRepo,
		repository.NewDocumentRepository(conn),
		queue,
	)

	ctx := context.Background()

	for {
		payload, err := queue.Pop(ctx, popTimeout)
		if err != nil {
			continue
		}

		var job ingest.Job
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			slog.Error("invalid job payload", "payload", payload, "error", err)
			continue
		}

		switch job.Action {
		case ingest.ActionAnalyzeMeeting:
			if job.MeetingID == "" {
				slog.Warn("analysis job without meeting_id, skipping")
				continue
			}
			if err := analyzeOrchestrator.AnalyzeMeeting(job.MeetingID); err != nil {
				slog.Error("error analyzing meeting", "meeting_id", job.MeetingID, "error", err)
				continue
			}
			slog.Info("meeting analyzed", "meeting_id", job.MeetingID)

		case ingest.ActionIngestMeetings:
			report, err := ingestOrchestrator.Run(ctx)
			if err != nil {
				slog.Error("ingestion aborted", "error", err)
				continue
			}
			slog.Info("ingestion finished", "stored", report.Stored, "errors", report.Errors)

		default:
			slog.Warn("unknown job action, ignoring", "action", job.Action)
		}
	}
}
