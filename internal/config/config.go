// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration. Values are read from the
// environment; field names map to upper-snake-case variables (PORT, BOT_DIR,
// CHAT_PROVIDER, ...).
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `envconfig:"PORT" default:"8000"`

	// BotDir is the root of the bot codebase the runner launches from.
	BotDir string `envconfig:"BOT_DIR" default:"/app"`
	// BotEntry is the bot entrypoint, relative to BotDir.
	BotEntry string `envconfig:"BOT_ENTRY" default:"main.py"`

	// HistoryBackend selects the run-history store: "file" or "firestore".
	HistoryBackend string `envconfig:"HISTORY_BACKEND" default:"file"`
	// HistoryFile is the JSON history file used by the file backend.
	HistoryFile string `envconfig:"HISTORY_FILE" default:"run_history.json"`

	// ReviewQueueFile is the JSON file backing the review queue.
	ReviewQueueFile string `envconfig:"REVIEW_QUEUE_FILE" default:".review_queue.json"`
	// ExportEnabled gates review approval; approvals are rejected while false.
	ExportEnabled bool `envconfig:"EXPORT_ENABLED" default:"false"`
	// ExportWebhookURL receives approved review payloads.
	ExportWebhookURL string `envconfig:"EXPORT_WEBHOOK_URL"`

	// ChatProvider selects the assistant backend: "openai" or "gemini".
	ChatProvider string `envconfig:"CHAT_PROVIDER" default:"openai"`
	// ChatModel is the model name passed to the provider.
	ChatModel string `envconfig:"CHAT_MODEL"`
	// ChatSystemPrompt overrides the default system prompt.
	ChatSystemPrompt string `envconfig:"CHAT_SYSTEM_PROMPT"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `envconfig:"OPENAI_BASE_URL"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`

	// AuthDisabled replaces Firebase token verification with a local
	// identity. Only for development.
	AuthDisabled bool `envconfig:"AUTH_DISABLED" default:"false"`

	FirebaseProjectID            string `envconfig:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// Load reads .env (if present) and populates a Config from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments configure the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.HistoryBackend {
	case "file", "firestore":
	default:
		return fmt.Errorf("invalid HISTORY_BACKEND %q (want file or firestore)", c.HistoryBackend)
	}
	if c.HistoryBackend == "firestore" && c.FirebaseProjectID == "" {
		return fmt.Errorf("HISTORY_BACKEND=firestore requires FIREBASE_PROJECT_ID")
	}
	switch c.ChatProvider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("invalid CHAT_PROVIDER %q (want openai or gemini)", c.ChatProvider)
	}
	if !c.AuthDisabled && c.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required unless AUTH_DISABLED=true")
	}
	return nil
}
