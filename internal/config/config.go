package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           int
	LogLevel       string
	CORSOrigins    string
	OpenAIAPIKey   string
	LLMBaseURL     string
	LLMModel       string
	FlightProvider string
	KiwiAPIKey     string
	FlyScraperKey  string
	DatabaseURL    string
	NatsURL        string
	NatsToken      string
	SessionTTLMin  int
}

func Load() Config {
	return Config{
		Port:           envInt("PORT", 10000),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		CORSOrigins:    envStr("CORS_ORIGINS", "*"),
		OpenAIAPIKey:   envStr("OPENAI_API_KEY", ""),
		LLMBaseURL:     envStr("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:       envStr("LLM_MODEL", "gpt-4.1-nano"),
		FlightProvider: envStr("FLIGHT_PROVIDER", "kiwi"),
		KiwiAPIKey:     envStr("KIWI_API_KEY", ""),
		FlyScraperKey:  envStr("FLYSCRAPER_API_KEY", ""),
		DatabaseURL:    envStr("DATABASE_URL", ""),
		NatsURL:        envStr("NATS_URL", ""),
		NatsToken:      envStr("NATS_TOKEN", ""),
		SessionTTLMin:  envInt("SESSION_TTL_MINUTES", 30),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
