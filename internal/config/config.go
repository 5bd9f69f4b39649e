// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath     string `env:"DB_PATH" envDefault:"/data/larder.db"`

	// AIBackend selects the text generator: "claude", "ollama" or empty to
	// run without one. Scanning and recipes degrade accordingly.
	AIBackend    string `env:"AI_BACKEND" envDefault:""`
	ClaudeAPIKey string `env:"CLAUDE_API_KEY"`
	ClaudeModel  string `env:"CLAUDE_MODEL" envDefault:"claude-3-5-haiku-latest"`
	OllamaHost   string `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel  string `env:"OLLAMA_MODEL" envDefault:"llama3.2"`

	OCRAPIKey  string `env:"OCR_API_KEY"`
	OCRBaseURL string `env:"OCR_BASE_URL" envDefault:"https://api.ocr.space/parse/image"`

	MealDBBaseURL string `env:"MEALDB_BASE_URL" envDefault:"https://www.themealdb.com/api/json/v1/1"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads a .env file when present, then parses the environment. Real
// environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
