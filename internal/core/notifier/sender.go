package notifier

import (
	"context"
	"sync"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// dispatched - объявления, отправленные за один запуск, по ID
type dispatched struct {
	mu      sync.RWMutex
	exposes map[string]domain.Expose
	states  map[string]domain.PhotoRequestState
}

func newDispatched() *dispatched {
	return &dispatched{
		exposes: make(map[string]domain.Expose),
		states:  make(map[string]domain.PhotoRequestState),
	}
}

func (d *dispatched) add(expose domain.Expose) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exposes[expose.ID] = expose
	d.states[expose.ID] = domain.StateSent
}

func (d *dispatched) get(id string) (domain.Expose, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	expose, ok := d.exposes[id]
	return expose, ok
}

func (d *dispatched) state(id string) domain.PhotoRequestState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.states[id]
}

func (d *dispatched) transition(id string, to domain.PhotoRequestState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !domain.IsTransitionAllowed(d.states[id], to) {
		return domain.ErrTransitionNotAllowed
	}
	d.states[id] = to
	return nil
}

// Sender - последняя стадия цепочки: отправляет уведомление каждому получателю
// и пропускает объявление дальше без изменений
type Sender struct {
	messenger port.MessengerPort
	store     port.ExposeStorePort
	receivers []int64
	template  *MessageTemplate
	sent      *dispatched
}

func NewSender(messenger port.MessengerPort, store port.ExposeStorePort, receivers []int64, template *MessageTemplate) *Sender {
	return &Sender{
		messenger: messenger,
		store:     store,
		receivers: receivers,
		template:  template,
		sent:      newDispatched(),
	}
}

func (s *Sender) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	if len(s.receivers) == 0 || s.messenger == nil {
		return expose, true, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Sender",
		"expose_id": expose.ID,
	})

	text := s.template.Render(expose)
	for _, receiver := range s.receivers {
		if err := s.sendTo(ctx, receiver, expose, text); err != nil {
			logger.Error("Failed to send notification", err, port.Fields{"receiver_id": receiver})
		}
	}
	s.sent.add(expose)

	return expose, true, nil
}

func (s *Sender) sendTo(ctx context.Context, receiver int64, expose domain.Expose, text string) error {
	if !expose.HasPhotos() {
		return s.messenger.SendText(ctx, receiver, text)
	}
	button := &port.ActionButton{Text: constants.ShowPicsButtonText, Data: expose.ID}
	_, err := s.messenger.SendPhoto(ctx, receiver, expose.Photos[0], text, button)
	return err
}

// PhotosHandler возвращает обработчик нажатий, который видит объявления этого отправителя
func (s *Sender) PhotosHandler() port.CallbackHandlerPort {
	return &PhotosHandler{
		messenger: s.messenger,
		store:     s.store,
		sent:      s.sent,
	}
}
