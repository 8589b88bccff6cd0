package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

type fakeUserStore struct {
	keys []string
	err  error
}

func (f *fakeUserStore) Append(ctx context.Context, entry *domain.MoodEntry) error { return nil }

func (f *fakeUserStore) ListRecent(ctx context.Context, userKey string, limit int) ([]*domain.MoodEntry, error) {
	return nil, nil
}

func (f *fakeUserStore) ListUserKeys(ctx context.Context) ([]string, error) {
	return f.keys, f.err
}

type fanoutMessenger struct {
	mu      sync.Mutex
	chatIDs []int64
	failFor map[int64]error
}

func (f *fanoutMessenger) SendText(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[chatID]; ok {
		return err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	return nil
}

func (f *fanoutMessenger) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string) error {
	return nil
}

func (f *fanoutMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *domain.Keyboard) error {
	return nil
}

func (f *fanoutMessenger) AnswerCallback(ctx context.Context, callbackID string) error {
	return nil
}

func TestRunSendsToEveryUser(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{keys: []string{"telegram_1", "telegram_2", "telegram_3"}}
	messenger := &fanoutMessenger{}
	svc := NewService(store, messenger, 0)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Users != 3 || report.Sent != 3 {
		t.Fatalf("report=%+v, want 3/3", report)
	}

	sort.Slice(messenger.chatIDs, func(i, j int) bool { return messenger.chatIDs[i] < messenger.chatIDs[j] })
	want := []int64{1, 2, 3}
	for i, id := range messenger.chatIDs {
		if id != want[i] {
			t.Fatalf("chat IDs=%v, want %v", messenger.chatIDs, want)
		}
	}
}

func TestRunIsolatesDeliveryFailures(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{keys: []string{"telegram_1", "telegram_2", "telegram_3"}}
	messenger := &fanoutMessenger{failFor: map[int64]error{2: errors.New("blocked by user")}}
	svc := NewService(store, messenger, 2)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Users != 3 || report.Sent != 2 {
		t.Fatalf("report=%+v, want Users=3 Sent=2", report)
	}
}

func TestRunCountsMalformedKeyAsFailure(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{keys: []string{"telegram_1", "slack_9", "telegram_abc"}}
	messenger := &fanoutMessenger{}
	svc := NewService(store, messenger, 0)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Users != 3 || report.Sent != 1 {
		t.Fatalf("report=%+v, want Users=3 Sent=1", report)
	}
	if len(messenger.chatIDs) != 1 || messenger.chatIDs[0] != 1 {
		t.Fatalf("chat IDs=%v, want only the well-formed key", messenger.chatIDs)
	}
}

func TestRunEmptyUserList(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeUserStore{}, &fanoutMessenger{}, 0)

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report != (Report{}) {
		t.Fatalf("report=%+v, want zero report", report)
	}
}

func TestRunScanFailure(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{err: domain.ErrStoreUnavailable}
	svc := NewService(store, &fanoutMessenger{}, 0)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err=%v, want store-unavailable", err)
	}
}
