// Command webhook handles inbound Telegram updates, either as a Lambda
// behind an API Gateway webhook or as a local long-poll bot.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/chart"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/memory"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/telegram"
	"github.com/equilibriumhq/equilibrium-bot/internal/app/dialog"
	"github.com/equilibriumhq/equilibrium-bot/internal/app/history"
	"github.com/equilibriumhq/equilibrium-bot/internal/config"
	"github.com/equilibriumhq/equilibrium-bot/internal/observability"
)

type app struct {
	dialog *dialog.Service
	tg     *telegram.Client
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("error initializing webhook app: %v", err)
	}

	switch cfg.Mode {
	case config.ModeLocal:
		a.runLocal(ctx)
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

	tips, err := newTipClient(cfg)
	if err != nil {
		return nil, err
	}

	historySvc := history.NewService(moods, chart.NewRenderer(), tg, cfg.HistoryLimit)
	dialogSvc := dialog.NewService(memory.NewSessionStore(), moods, tips, tg, historySvc)

	return &app{dialog: dialogSvc, tg: tg}, nil
}

// handle is the Lambda entry point for one Telegram update. Anything
// uncaught becomes a generic failure status; raw errors never reach the
// end user.
func (a *app) handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, _ error) {
	ctx = observability.WithRequestID(ctx, observability.NewRequestID())
	log := observability.LoggerFromContext(ctx)

	// The webhook URL accepts arbitrary bodies; a panic must still come
	// back as a status, never as a failed invocation.
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while handling update", "panic", r)
			resp = response(500, "Internal Server Error")
		}
	}()

	upd, ok, err := telegram.ParseUpdate([]byte(req.Body))
	if err != nil {
		log.Error("invalid update payload", "error", err)
		return response(400, "Bad Request"), nil
	}
	if !ok {
		// Unsupported update kinds are acknowledged so Telegram stops
		// redelivering them.
		return response(200, "OK"), nil
	}

	if err := a.dialog.HandleUpdate(ctx, upd); err != nil {
		log.Error("update handling failed", "error", err)
		return response(500, "Internal Server Error"), nil
	}
	return response(200, "OK"), nil
}

func (a *app) runLocal(ctx context.Context) {
	log := observability.Logger()
	log.Info("long-polling for updates")

	for botUpd := range a.tg.Updates() {
		upd, ok := telegram.FromBotUpdate(botUpd)
		if !ok {
			continue
		}
		c := observability.WithRequestID(ctx, observability.NewRequestID())
		if err := a.dialog.HandleUpdate(c, upd); err != nil {
			observability.LoggerFromContext(c).Error("update handling failed", "error", err)
		}
	}
}

func response(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: status, Body: body}
}
