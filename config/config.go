// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ListenAddr   string
	FirmsMapKey  string
	FirmsBBox    string
	OpenAIAPIKey string
	OpenAIModel  string
}

// FromEnv loads .env if present, then reads the environment. Missing optional
// keys fall back to defaults; a missing FIRMS map key only disables the live
// hotspot feed.
func FromEnv() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		FirmsMapKey:  os.Getenv("FIRMS_MAP_KEY"),
		FirmsBBox:    getEnv("FIRMS_BBOX", "-124.5,32.5,-114.1,42.1"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
	}

	if cfg.FirmsMapKey == "" {
		log.Println("FIRMS_MAP_KEY not set, live hotspot feed disabled")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY not set, advisory insights disabled")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
