package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE"`
	Port       uint16 `env:"PORT" envDefault:"5000"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	LineChannelSecret      string        `env:"LINE_CHANNEL_SECRET,required"`
	LineChannelAccessToken string        `env:"LINE_CHANNEL_ACCESS_TOKEN,required"`
	LineAPIEndpoint        string        `env:"LINE_API_ENDPOINT" envDefault:"https://api.line.me"`
	LineAPIDataEndpoint    string        `env:"LINE_API_DATA_ENDPOINT" envDefault:"https://api-data.line.me"`
	LineRequestTimeout     time.Duration `env:"LINE_REQUEST_TIMEOUT" envDefault:"10s"`

	GroqAPIKey             string `env:"GROQ_API_KEY,required"`
	GroqBaseURL            string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GroqTranscriptionModel string `env:"GROQ_TRANSCRIPTION_MODEL" envDefault:"whisper-large-v3"`
	GroqExtractionModel    string `env:"GROQ_EXTRACTION_MODEL" envDefault:"llama3-8b-8192"`

	AllowedOrigins            []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	CreateReminderHourlyLimit uint16   `env:"CREATE_REMINDER_HOURLY_LIMIT" envDefault:"30"`
}

func Load() (*Config, error) {
	// Missing .env file is fine, variables may come from the environment.
	godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	return config, nil
}
