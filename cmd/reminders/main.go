// Command reminders runs the scheduled reminder fan-out: one reminder
// message to every user who has ever logged a mood.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/dynamo"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/memory"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/telegram"
	"github.com/equilibriumhq/equilibrium-bot/internal/app/reminder"
	"github.com/equilibriumhq/equilibrium-bot/internal/config"
	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

type response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type app struct {
	svc *reminder.Service
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing reminders app: %v", err)
	}

	switch cfg.Mode {
	case config.ModeLocal:
		a.runOnce(ctx)
	default:
		lambda.Start(a.handle)
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	tg, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	moods, err := newMoodStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &app{svc: reminder.NewService(moods, tg, cfg.ReminderConcurrency)}, nil
}

// handle is the Lambda entry point for the scheduler. A failed scan reports
// zero sends with an error status; it never crashes the invocation.
func (a *app) handle(ctx context.Context) (response, error) {
	ctx = observability.WithRequestID(ctx, observability.NewRequestID())
	log := observability.LoggerFromContext(ctx)

	report, err := a.svc.Run(ctx)
	if err != nil {
		log.Error("reminder run failed", "error", err)
		return response{StatusCode: 500, Body: "Internal Server Error"}, nil
	}
	if report.Users == 0 {
		return response{StatusCode: 200, Body: "No users found"}, nil
	}
	return response{StatusCode: 200, Body: fmt.Sprintf("Sent %d reminders", report.Sent)}, nil
}

func (a *app) runOnce(ctx context.Context) {
	resp, _ := a.handle(ctx)
	fmt.Println(resp.Body)
}

func newMoodStore(ctx context.Context, cfg *config.Config) (domain.MoodStore, error) {
	switch cfg.StorageBackend {
	case "dynamo":
		client, err := dynamo.NewClient(ctx, cfg.DynamoTable, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return dynamo.NewMoodStore(client), nil
	default:
		return memory.NewMoodStore(), nil
	}
}
