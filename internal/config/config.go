package config

import (
	"log"
	"os"
	"strconv"
)

type Mode string

const (
	ModeLocal  Mode = "local"
	ModeLambda Mode = "lambda"
)

type Config struct {
	Mode Mode

	TelegramToken string

	OpenAIAPIKey string
	OpenAIModel  string
	UseMockLLM   bool // true = use mock even with an API key set

	DynamoTable    string
	AWSRegion      string
	StorageBackend string // "memory" or "dynamo"

	HistoryLimit        int
	ReminderConcurrency int // 0 = unbounded fan-out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("EQ_MODE", "lambda")
	var mode Mode
	switch modeStr {
	case "local":
		mode = ModeLocal
	default:
		mode = ModeLambda
	}

	cfg := &Config{
		Mode: mode,

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("EQ_OPENAI_MODEL", "gpt-3.5-turbo"),
		UseMockLLM:   getBoolEnv("EQ_USE_MOCK_LLM", false),

		DynamoTable:    getEnv("DYNAMODB_TABLE", ""),
		AWSRegion:      getEnv("AWS_REGION", "eu-central-1"),
		StorageBackend: getEnv("EQ_STORAGE_BACKEND", "dynamo"),

		HistoryLimit:        getIntEnv("EQ_HISTORY_LIMIT", 30),
		ReminderConcurrency: getIntEnv("EQ_REMINDER_CONCURRENCY", 0),
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN must be set")
	}
	if cfg.StorageBackend == "dynamo" && cfg.DynamoTable == "" {
		log.Fatal("DYNAMODB_TABLE must be set for the dynamo storage backend")
	}

	return cfg
}
