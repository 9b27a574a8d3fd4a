package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	logger_adapter "flathunter-service/internal/adapters/logger"
	"flathunter-service/internal/core/port"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	groups   []tgbotapi.MediaGroupConfig
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
	sendErr  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: 100 + len(b.sent)}, nil
}

func (b *fakeBot) SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.groups = append(b.groups, cfg)
	return nil, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func TestSendPhotoWithButton(t *testing.T) {
	bot := &fakeBot{}
	m := &TelegramMessenger{bot: bot}

	id, err := m.SendPhoto(context.Background(), 42, "https://pics/1.jpg", "Altbau", &port.ActionButton{Text: "show pics", Data: "123456"})
	require.NoError(t, err)
	assert.Equal(t, 101, id)

	require.Len(t, bot.sent, 1)
	photo, ok := bot.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), photo.ChatID)
	assert.Equal(t, "Altbau", photo.Caption)

	markup, ok := photo.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.NotNil(t, markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "123456", *markup.InlineKeyboard[0][0].CallbackData)
}

func TestSendTextTruncatesLongMessages(t *testing.T) {
	bot := &fakeBot{}
	m := &TelegramMessenger{bot: bot}

	require.NoError(t, m.SendText(context.Background(), 1, strings.Repeat("a", maxTextLength+10)))
	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, maxTextLength, len([]rune(msg.Text)))
}

func TestSendErrorIsWrapped(t *testing.T) {
	m := &TelegramMessenger{bot: &fakeBot{sendErr: errors.New("Forbidden: bot was blocked by the user")}}

	err := m.SendText(context.Background(), 7, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send message to 7")
}

func TestSendPhotoGroupRepliesToMessage(t *testing.T) {
	bot := &fakeBot{}
	m := &TelegramMessenger{bot: bot}

	require.NoError(t, m.SendPhotoGroup(context.Background(), 42, []string{"a", "b", "c"}, 101))
	require.Len(t, bot.groups, 1)
	assert.Equal(t, 101, bot.groups[0].ReplyToMessageID)
	assert.Len(t, bot.groups[0].Media, 3)
}

type recordingHandler struct {
	queries chan port.CallbackQuery
}

func (h *recordingHandler) HandleCallback(_ context.Context, q port.CallbackQuery) {
	h.queries <- q
}

func TestCallbackListenerForwardsButtonPresses(t *testing.T) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 2)}
	handler := &recordingHandler{queries: make(chan port.CallbackQuery, 1)}
	listener := NewCallbackListener(&TelegramMessenger{bot: bot}, handler, logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- listener.Start(ctx) }()

	bot.updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello"}}
	bot.updates <- tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    "123456",
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 42}},
	}}

	select {
	case q := <-handler.queries:
		assert.Equal(t, port.CallbackQuery{ID: "cb-1", ReceiverID: 42, MessageID: 5, Data: "123456"}, q)
	case <-time.After(time.Second):
		t.Fatal("callback was not forwarded")
	}

	cancel()
	require.NoError(t, <-done)
	require.NoError(t, listener.Close())
	assert.True(t, bot.stopped)
}
