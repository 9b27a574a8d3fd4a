package telegram

import (
	"context"
	"sync"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/port"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const updatesTimeoutSeconds = 60

// CallbackListener получает обновления через long polling и передает
// нажатия на кнопки обработчику
type CallbackListener struct {
	bot     botAPI
	handler port.CallbackHandlerPort
	logger  port.LoggerPort

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewCallbackListener(messenger *TelegramMessenger, handler port.CallbackHandlerPort, logger port.LoggerPort) *CallbackListener {
	return &CallbackListener{
		bot:     messenger.bot,
		handler: handler,
		logger:  logger.WithFields(port.Fields{"component": "TelegramCallbackListener"}),
	}
}

// Start блокируется, пока не отменен контекст или не закрыт канал обновлений
func (l *CallbackListener) Start(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updatesTimeoutSeconds
	cfg.AllowedUpdates = []string{"callback_query"}

	updates := l.bot.GetUpdatesChan(cfg)
	l.logger.Info("Listening for Telegram callbacks", nil)

	for {
		select {
		case <-ctx.Done():
			l.stop()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			query, ok := toCallbackQuery(update)
			if !ok {
				continue
			}

			traceID := uuid.New().String()
			updateCtx := contextkeys.ContextWithTraceID(ctx, traceID)
			updateCtx = contextkeys.ContextWithLogger(updateCtx, l.logger.WithFields(port.Fields{
				"trace_id":    traceID,
				"callback_id": query.ID,
				"receiver_id": query.ReceiverID,
			}))

			l.wg.Add(1)
			go func() {
				defer l.wg.Done()
				l.handler.HandleCallback(updateCtx, query)
			}()
		}
	}
}

// Close останавливает опрос и ждет завершения начатых обработчиков
func (l *CallbackListener) Close() error {
	l.stop()
	l.wg.Wait()
	return nil
}

func (l *CallbackListener) stop() {
	l.stopOnce.Do(l.bot.StopReceivingUpdates)
}

func toCallbackQuery(update tgbotapi.Update) (port.CallbackQuery, bool) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil {
		return port.CallbackQuery{}, false
	}
	return port.CallbackQuery{
		ID:         cb.ID,
		ReceiverID: cb.Message.Chat.ID,
		MessageID:  cb.Message.MessageID,
		Data:       cb.Data,
	}, true
}
