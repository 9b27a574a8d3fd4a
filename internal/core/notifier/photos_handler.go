package notifier

import (
	"context"
	"fmt"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// PhotosHandler отвечает на нажатие "show pics": отправляет фото объявления
// альбомами ответом на исходное сообщение
type PhotosHandler struct {
	messenger port.MessengerPort
	store     port.ExposeStorePort
	sent      *dispatched
}

func (h *PhotosHandler) HandleCallback(ctx context.Context, query port.CallbackQuery) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PhotosHandler",
		"expose_id":   query.Data,
		"receiver_id": query.ReceiverID,
	})

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while sending photos", fmt.Errorf("%v", r), nil)
			h.answer(ctx, logger, query.ID, constants.NoPicsAnswer)
		}
	}()

	if err := h.sendPhotos(ctx, query); err != nil {
		logger.Warn("Photos not delivered", port.Fields{"reason": err.Error()})
		h.answer(ctx, logger, query.ID, constants.NoPicsAnswer)
		return
	}
	h.answer(ctx, logger, query.ID, "")
}

func (h *PhotosHandler) sendPhotos(ctx context.Context, query port.CallbackQuery) error {
	expose, ok := h.sent.get(query.Data)
	if !ok {
		return domain.ErrExposeNotFound
	}

	photos, err := h.photosFor(ctx, expose)
	if err != nil {
		return err
	}
	if len(photos) < constants.MinPhotosForGallery {
		return fmt.Errorf("only %d photos", len(photos))
	}

	if err := h.sent.transition(expose.ID, domain.StatePhotosRequested); err != nil {
		return fmt.Errorf("%w: from %s", err, h.sent.state(expose.ID))
	}
	for _, group := range chunk(photos, constants.MediaGroupSize) {
		if err := h.messenger.SendPhotoGroup(ctx, query.ReceiverID, group, query.MessageID); err != nil {
			_ = h.sent.transition(expose.ID, domain.StateSent)
			return fmt.Errorf("send photo group: %w", err)
		}
	}
	return h.sent.transition(expose.ID, domain.StatePhotosDelivered)
}

// photosFor читает фото из хранилища, а если записи нет - берет их из самого объявления
func (h *PhotosHandler) photosFor(ctx context.Context, expose domain.Expose) ([]string, error) {
	if h.store == nil {
		return expose.Photos, nil
	}
	entry, found, err := h.store.Get(ctx, expose.ID)
	if err != nil {
		return nil, fmt.Errorf("read store entry: %w", err)
	}
	if !found {
		return expose.Photos, nil
	}
	return entry.Photos, nil
}

func (h *PhotosHandler) answer(ctx context.Context, logger port.LoggerPort, callbackID, text string) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		logger.Error("Failed to answer callback", err, nil)
	}
}

// chunk делит список на части не длиннее size, последняя часть может быть короче
func chunk(items []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
