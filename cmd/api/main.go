package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ConnerV42/spokane-public-brief/db"
	"github.com/ConnerV42/spokane-public-brief/internal/config"
	"github.com/ConnerV42/spokane-public-brief/internal/handler"
	"github.com/ConnerV42/spokane-public-brief/internal/repository"
	"github.com/ConnerV42/spokane-public-brief/internal/search"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	meetingRepo := repository.NewMeetingRepository(conn)
	itemRepo := repository.NewItemRepository(conn)
	searcher := search.NewSearcher(itemRepo)
	briefHandler := handler.NewBriefHandler(meetingRepo, itemRepo, searcher)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/meetings", briefHandler.GetMeetings)
	r.GET("/api/meetings/:id", briefHandler.GetMeeting)
	r.GET("/api/items", briefHandler.GetItems)
	r.GET("/api/search", briefHandler.GetSearch)
	r.GET("/api/stats", briefHandler.GetStats)
	r.GET("/api/health", briefHandler.GetHealth)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
