package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/chart"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/llm"
	"github.com/equilibriumhq/equilibrium-bot/internal/adapters/storage/memory"
	"github.com/equilibriumhq/equilibrium-bot/internal/app/dialog"
	"github.com/equilibriumhq/equilibrium-bot/internal/app/history"
	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

type nopMessenger struct {
	texts int
}

func (n *nopMessenger) SendText(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) error {
	n.texts++
	return nil
}

func (n *nopMessenger) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error {
	return nil
}

func (n *nopMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *domain.Keyboard) error {
	return nil
}

func (n *nopMessenger) AnswerCallback(ctx context.Context, callbackID string) error {
	return nil
}

func testApp(messenger *nopMessenger) *app {
	moods := memory.NewMoodStore()
	historySvc := history.NewService(moods, chart.NewRenderer(), messenger, 30)
	dialogSvc := dialog.NewService(memory.NewSessionStore(), moods, llm.NewMockClient(), messenger, historySvc)
	return &app{dialog: dialogSvc}
}

func TestHandleMalformedBody(t *testing.T) {
	t.Parallel()

	a := testApp(&nopMessenger{})
	resp, err := a.handle(context.Background(), events.APIGatewayProxyRequest{Body: `{"update_id":`})
	if err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("status=%d, want 400", resp.StatusCode)
	}
}

func TestHandleUnsupportedUpdateIsAcknowledged(t *testing.T) {
	t.Parallel()

	a := testApp(&nopMessenger{})
	body := `{"update_id": 1, "edited_message": {"message_id": 2, "chat": {"id": 10, "type": "private"}, "text": "x"}}`
	resp, err := a.handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d, want 200 so Telegram stops redelivering", resp.StatusCode)
	}
}

func TestHandleMessageWithoutChatIsAcknowledged(t *testing.T) {
	t.Parallel()

	a := testApp(&nopMessenger{})
	body := `{"update_id": 3, "message": {"message_id": 4, "from": {"id": 42, "first_name": "Ada"}, "text": "hi"}}`
	resp, err := a.handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d, want 200 for a chat-less message", resp.StatusCode)
	}
}

func TestHandleRecoversFromPanic(t *testing.T) {
	t.Parallel()

	// A broken app panics on the first routed update; the handler must
	// still answer with a status instead of failing the invocation.
	a := &app{}
	body := `{
		"update_id": 4,
		"message": {
			"message_id": 5,
			"from": {"id": 42, "first_name": "Ada"},
			"chat": {"id": 10, "type": "private"},
			"text": "/start",
			"entities": [{"type": "bot_command", "offset": 0, "length": 6}]
		}
	}`
	resp, err := a.handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Fatalf("status=%d, want 500 after recovery", resp.StatusCode)
	}
}

func TestHandleRoutesCommand(t *testing.T) {
	t.Parallel()

	messenger := &nopMessenger{}
	a := testApp(messenger)
	body := `{
		"update_id": 2,
		"message": {
			"message_id": 3,
			"from": {"id": 42, "first_name": "Ada"},
			"chat": {"id": 10, "type": "private"},
			"text": "/start",
			"entities": [{"type": "bot_command", "offset": 0, "length": 6}]
		}
	}`
	resp, err := a.handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	if err != nil {
		t.Fatalf("handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d, want 200", resp.StatusCode)
	}
	if messenger.texts != 1 {
		t.Fatalf("texts sent: %d, want the welcome message", messenger.texts)
	}
}
