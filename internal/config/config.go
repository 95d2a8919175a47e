package config

import "os"

// Config is built once in main and passed into every component.
// Nothing outside this package reads environment variables.
type Config struct {
	DatabaseURL      string
	RedisURL         string
	AnalysisQueueKey string
	LegistarClient   string
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	FrontendURL      string
	Port             string
}

func Load() Config {
	return Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		AnalysisQueueKey: getEnv("ANALYSIS_QUEUE_KEY", "publicbrief:queue:analysis"),
		LegistarClient:   getEnv("LEGISTAR_CLIENT", "spokane"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
		Port:             getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
