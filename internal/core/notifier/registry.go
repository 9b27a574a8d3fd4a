package notifier

import (
	"context"
	"sync"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/port"

	"github.com/google/uuid"
)

// Registry хранит обработчик нажатий последнего запуска охоты.
// Нажатия на сообщения прошлых запусков получают ответ "нет фото"
type Registry struct {
	mu        sync.RWMutex
	id        uuid.UUID
	handler   port.CallbackHandlerPort
	messenger port.MessengerPort
}

func NewRegistry(messenger port.MessengerPort) *Registry {
	return &Registry{messenger: messenger}
}

// RegisterAndRetirePrevious делает handler активным и снимает предыдущий
func (r *Registry) RegisterAndRetirePrevious(handler port.CallbackHandlerPort) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.id = uuid.New()
	r.handler = handler
	return r.id
}

// Active возвращает ID активного обработчика
func (r *Registry) Active() (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id, r.handler != nil
}

// HandleCallback передает нажатие активному обработчику
func (r *Registry) HandleCallback(ctx context.Context, query port.CallbackQuery) {
	r.mu.RLock()
	handler, id := r.handler, r.id
	r.mu.RUnlock()

	logger := contextkeys.LoggerFromContext(ctx)
	if handler == nil {
		logger.Debug("No active callback handler", port.Fields{"callback_id": query.ID})
		if err := r.messenger.AnswerCallback(ctx, query.ID, constants.NoPicsAnswer); err != nil {
			logger.Error("Failed to answer callback", err, nil)
		}
		return
	}

	ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"handler_id": id.String()}))
	handler.HandleCallback(ctx, query)
}
