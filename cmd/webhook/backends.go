package main

import (
	"context"

	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/llm"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/dynamo"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/memory"
	"github.com/equilibriumhq/equilibrium-bot/internal/config"
	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

// newMoodStore picks the storage backend by config, the dynamo one for
// deployments and the in-memory one for local development.
func newMoodStore(ctx context.Context, cfg *config.Config) (domain.MoodStore, error) {
	log := observability.Logger()

	switch cfg.StorageBackend {
	case "dynamo":
		log.Info("using dynamo storage", "table", cfg.DynamoTable, "region", cfg.AWSRegion)
		client, err := dynamo.NewClient(ctx, cfg.DynamoTable, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return dynamo.NewMoodStore(client), nil
	default:
		log.Info("using in-memory storage")
		return memory.NewMoodStore(), nil
	}
}

func newTipClient(cfg *config.Config) (domain.TipClient, error) {
	log := observability.Logger()

	if cfg.UseMockLLM || cfg.OpenAIAPIKey == "" {
		log.Info("using mock tip client")
		return llm.NewMockClient(), nil
	}
	log.Info("using openai tip client", "model", cfg.OpenAIModel)
	return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
}
