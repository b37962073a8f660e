package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Randidu/event-management-system/internal/config"
	"github.com/Randidu/event-management-system/internal/domain"
	"github.com/Randidu/event-management-system/internal/events"
	"github.com/Randidu/event-management-system/internal/i18n"
	"github.com/Randidu/event-management-system/internal/models"
	"github.com/Randidu/event-management-system/internal/profile"
	"github.com/Randidu/event-management-system/internal/repository"
	"github.com/Randidu/event-management-system/internal/service"
	"github.com/Randidu/event-management-system/internal/tickets"

	"github.com/alicebob/miniredis/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operatorID = int64(42)

var colombo = time.FixedZone("Asia/Colombo", 5*3600+1800)

type sent struct {
	kind      string
	chatID    int64
	messageID int
	text      string
	markup    *tgbotapi.InlineKeyboardMarkup
	fileName  string
	data      []byte
}

type mockTelegramService struct {
	domain.TelegramService
	mu          sync.Mutex
	updatesChan chan tgbotapi.Update
	sent        []sent
	answers     []string
	stopped     bool
}

func (m *mockTelegramService) record(s sent) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func (m *mockTelegramService) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return m.record(sent{kind: "text", chatID: chatID, text: text})
}

func (m *mockTelegramService) SendWithInlineKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return m.record(sent{kind: "page", chatID: chatID, text: text, markup: &kb})
}

func (m *mockTelegramService) EditMessage(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return m.record(sent{kind: "edit", chatID: chatID, messageID: messageID, text: text, markup: kb})
}

func (m *mockTelegramService) SendDocument(chatID int64, name string, data []byte, caption string) (tgbotapi.Message, error) {
	return m.record(sent{kind: "document", chatID: chatID, text: caption, fileName: name, data: data})
}

func (m *mockTelegramService) AnswerCallback(callbackID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers = append(m.answers, text)
	return nil
}

func (m *mockTelegramService) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return m.updatesChan
}

func (m *mockTelegramService) GetSelf() tgbotapi.User {
	return tgbotapi.User{UserName: "ems_admin_bot"}
}

func (m *mockTelegramService) StopReceivingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTelegramService) last() sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sent{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *mockTelegramService) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.answers = nil
}

type fakeBackend struct {
	mu        sync.Mutex
	bookings  []models.Booking
	listCalls int
	deleted   []int64
	tokens    []string
	listErr   error
}

func (f *fakeBackend) ListAllBookings(_ context.Context, token string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) ListEvents(context.Context) ([]models.EventOption, error) {
	return []models.EventOption{{ID: 1, Title: "Jazz Night"}, {ID: 2, Title: "Rock Fest"}}, nil
}

func (f *fakeBackend) DeleteBooking(_ context.Context, _ string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func fptr(v float64) *float64 { return &v }

func sampleBookings(n int) []models.Booking {
	titles := []string{"Jazz Night", "Rock Fest"}
	statuses := []models.BookingStatus{models.BookingConfirmed, models.BookingPending}
	out := make([]models.Booking, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.Booking{
			ID:         int64(i),
			Quantity:   1,
			TotalPrice: fptr(float64(i) * 1000),
			Status:     statuses[i%2],
			BookedAt:   fmt.Sprintf("2025-06-%02dT10:00:00", i),
			User:       &models.UserSummary{ID: int64(i), FirstName: fmt.Sprintf("User%d", i), LastName: "Perera", Email: fmt.Sprintf("user%d@ems.lk", i)},
			Event:      &models.EventSummary{ID: int64(i%2 + 1), Title: titles[i%2]},
		})
	}
	return out
}

type testBot struct {
	bot     *Bot
	tg      *mockTelegramService
	backend *fakeBackend
	bus     *events.EventBus
}

func newTestBot(t *testing.T, repo domain.SessionRepository, mutate func(*config.TelegramConfig)) *testBot {
	t.Helper()
	if repo == nil {
		repo = repository.NewMemorySessionRepository(time.Hour)
	}

	bundle, err := i18n.NewBundle("en", []string{"en", "si"})
	require.NoError(t, err)

	cfg := config.TelegramConfig{
		Operators:    []int64{operatorID},
		BackendToken: "service-token",
		RateLimit:    100,
		RateWindow:   60,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	tg := &mockTelegramService{updatesChan: make(chan tgbotapi.Update, 4)}
	backend := &fakeBackend{bookings: sampleBookings(7)}
	bus := events.NewEventBus()
	resolver := profile.NewResolver("http://backend.test")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, colombo)

	b, err := NewBot(cfg, Deps{
		Telegram:  tg,
		Backend:   backend,
		Sessions:  service.NewSessionService(repo, "en", nil),
		Renderer:  tickets.NewRenderer(resolver, colombo),
		Publisher: bus,
		Bundle:    bundle,
		Location:  colombo,
		Clock:     func() time.Time { return now },
	})
	require.NoError(t, err)
	return &testBot{bot: b, tg: tg, backend: backend, bus: bus}
}

func command(from int64, text string) tgbotapi.Update {
	cmd := strings.SplitN(text, " ", 2)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From:     &tgbotapi.User{ID: from, UserName: "operator"},
		Chat:     &tgbotapi.Chat{ID: from},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callback(from int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-" + data,
		From:    &tgbotapi.User{ID: from, UserName: "operator"},
		Message: &tgbotapi.Message{MessageID: 77, Chat: &tgbotapi.Chat{ID: from}},
		Data:    data,
	}}
}

func buttonData(markup *tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	if markup == nil {
		return out
	}
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				out = append(out, *btn.CallbackData)
			}
		}
	}
	return out
}

func TestNewBot_RequiresDeps(t *testing.T) {
	_, err := NewBot(config.TelegramConfig{}, Deps{})
	assert.Error(t, err)
}

func TestNonOperatorIsRejected(t *testing.T) {
	tb := newTestBot(t, nil, nil)

	tb.bot.processUpdate(context.Background(), command(7, "/tickets"))

	assert.Equal(t, "This bot is for EMS operators only.", tb.tg.last().text)
	assert.Zero(t, tb.backend.listCalls)

	tb.bot.processUpdate(context.Background(), callback(7, cbExport))
	assert.Equal(t, []string{"This bot is for EMS operators only."}, tb.tg.answers)
}

func TestTicketsCommand(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))

	page := tb.tg.last()
	require.Equal(t, "page", page.kind)
	assert.Contains(t, page.text, "Page 1 of 2 (7 of 7 bookings)")
	assert.Contains(t, page.text, "User1 Perera")
	assert.NotContains(t, page.text, "User6 Perera")

	data := buttonData(page.markup)
	assert.Contains(t, data, "tk:del:1")
	assert.Contains(t, data, "tk:page:2")
	assert.Contains(t, data, cbExport)
	assert.Equal(t, []string{"service-token"}, tb.backend.tokens)

	// the store is kept in the chat session
	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))
	assert.Equal(t, 1, tb.backend.listCalls)
}

func TestTicketsCommand_Search(t *testing.T) {
	tb := newTestBot(t, nil, nil)

	tb.bot.processUpdate(context.Background(), command(operatorID, "/tickets user3"))

	page := tb.tg.last()
	assert.Contains(t, page.text, "(1 of 7 bookings)")
	assert.Contains(t, page.text, "User3 Perera")
	assert.NotContains(t, page.text, "User1 Perera")
}

func TestStatusCommand(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/status shipped"))
	assert.Contains(t, tb.tg.last().text, "Usage: /status")
	assert.Zero(t, tb.backend.listCalls)

	tb.bot.processUpdate(ctx, command(operatorID, "/status confirmed"))
	page := tb.tg.last()
	// even ids are confirmed
	assert.Contains(t, page.text, "(3 of 7 bookings)")
	assert.NotContains(t, page.text, "User1 Perera")

	tb.bot.processUpdate(ctx, command(operatorID, "/status ALL"))
	assert.Contains(t, tb.tg.last().text, "(7 of 7 bookings)")
}

func TestPageCallback(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))
	tb.bot.processUpdate(ctx, callback(operatorID, "tk:page:2"))

	edit := tb.tg.last()
	require.Equal(t, "edit", edit.kind)
	assert.Equal(t, 77, edit.messageID)
	assert.Contains(t, edit.text, "Page 2 of 2")
	assert.Contains(t, edit.text, "User6 Perera")
	assert.Contains(t, buttonData(edit.markup), "tk:page:1")
	assert.Equal(t, []string{""}, tb.tg.answers)
}

func TestDeleteFlow(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	var deleted []events.BookingDeletedPayload
	tb.bus.Subscribe(events.EventBookingDeleted, func(ev *events.Event) error {
		var p events.BookingDeletedPayload
		require.NoError(t, ev.Decode(&p))
		deleted = append(deleted, p)
		return nil
	})

	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))

	tb.bot.processUpdate(ctx, callback(operatorID, "tk:del:2"))
	prompt := tb.tg.last()
	require.Equal(t, "edit", prompt.kind)
	assert.Contains(t, prompt.text, "Are you sure")
	assert.Equal(t, []string{"tk:delok:2", "tk:page:1"}, buttonData(prompt.markup))
	assert.Empty(t, tb.backend.deleted)

	tb.bot.processUpdate(ctx, callback(operatorID, "tk:delok:2"))
	assert.Equal(t, []int64{2}, tb.backend.deleted)
	assert.Equal(t, "Booking deleted successfully", tb.tg.answers[len(tb.tg.answers)-1])
	assert.Contains(t, tb.tg.last().text, "(6 of 6 bookings)")

	require.Len(t, deleted, 1)
	assert.Equal(t, "telegram:@operator", deleted[0].Actor)

	tb.bot.processUpdate(ctx, callback(operatorID, "tk:del:2"))
	assert.Equal(t, "Booking #2 is no longer in the list", tb.tg.answers[len(tb.tg.answers)-1])
}

func TestExportCommand(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/status pending"))
	tb.bot.processUpdate(ctx, command(operatorID, "/export"))

	doc := tb.tg.last()
	require.Equal(t, "document", doc.kind)
	assert.Equal(t, "tickets_export_2025-06-15.csv", doc.fileName)
	assert.Equal(t, "Exported 7 bookings", doc.text)
	// filters do not apply to exports
	assert.Len(t, strings.Split(string(doc.data), "\n"), 8)

	tb.bot.processUpdate(ctx, command(operatorID, "/export pdf"))
	assert.Contains(t, tb.tg.last().text, "Error:")
}

func TestExportCallback_EmptyStore(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	tb.backend.bookings = nil

	tb.bot.processUpdate(context.Background(), callback(operatorID, cbExport))

	assert.Equal(t, "No bookings to export", tb.tg.last().text)
}

func TestReloadAfterFailure(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()
	tb.backend.listErr = fmt.Errorf("connection refused")

	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))
	page := tb.tg.last()
	assert.Contains(t, page.text, "Failed to load bookings")

	tb.backend.listErr = nil
	tb.bot.processUpdate(ctx, callback(operatorID, cbReload))
	assert.Contains(t, tb.tg.last().text, "(7 of 7 bookings)")
	assert.Equal(t, 2, tb.backend.listCalls)
}

func TestLangCommand(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/lang si"))
	tb.bot.processUpdate(ctx, command(operatorID, "/status nope"))
	assert.Contains(t, tb.tg.last().text, "භාවිතය")

	tb.bot.processUpdate(ctx, command(operatorID, "/lang fr"))
	assert.Equal(t, "en, si", tb.tg.last().text)
}

func TestRateLimit_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tb := newTestBot(t, repository.NewRedisSessionRepository(client, time.Hour), func(cfg *config.TelegramConfig) {
		cfg.RateLimit = 2
	})
	ctx := context.Background()

	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))
	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))
	tb.bot.processUpdate(ctx, command(operatorID, "/tickets"))

	assert.Equal(t, "Too many requests. Please wait a moment.", tb.tg.last().text)
	assert.Equal(t, 1, tb.backend.listCalls)
	assert.True(t, mr.Exists("ems:session:"+service.ChatSessionID(operatorID)))
	assert.True(t, mr.Exists("ems:rate_limit:tg:42"))
}

func TestStart_StopsOnCancel(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		tb.bot.Start(ctx)
		close(done)
	}()

	tb.tg.updatesChan <- command(operatorID, "/help")
	require.Eventually(t, func() bool {
		return strings.Contains(tb.tg.last().text, "/tickets")
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}

	tb.bot.Stop()
	assert.True(t, tb.tg.stopped)
}

func TestWithRecovery(t *testing.T) {
	tb := newTestBot(t, nil, nil)
	reg := prometheus.NewRegistry()
	tb.bot.Metrics = NewMetrics(reg)

	assert.NotPanics(t, func() {
		tb.bot.withRecovery(func() { panic("boom") })
	})
	assert.Equal(t, float64(1), testutil.ToFloat64(tb.bot.Metrics.ErrorsTotal))

	tb.bot.processUpdate(context.Background(), command(operatorID, "/help"))
	assert.Equal(t, float64(1), testutil.ToFloat64(tb.bot.Metrics.UpdatesProcessed.WithLabelValues("message")))
}
