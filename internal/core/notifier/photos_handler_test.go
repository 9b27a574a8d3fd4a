package notifier

import (
	"context"
	"fmt"
	"testing"

	"flathunter-service/internal/adapters/store/memstore"
	"flathunter-service/internal/constants"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoURLs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://pictures.example/%d.jpg", i)
	}
	return out
}

// dispatchOne отправляет объявление и возвращает обработчик нажатий этого запуска
func dispatchOne(t *testing.T, messenger *fakeMessenger, store port.ExposeStorePort, expose domain.Expose) *PhotosHandler {
	t.Helper()
	sender := NewSender(messenger, store, []int64{10}, template(t, "{title}"))
	_, _, err := sender.ProcessExpose(context.Background(), expose)
	require.NoError(t, err)
	return sender.PhotosHandler().(*PhotosHandler)
}

func TestPhotosDeliveredInGroupsOfTen(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Put(ctx, domain.StoreEntry{ID: "1", Photos: photoURLs(11)}))
	messenger := newFakeMessenger()
	handler := dispatchOne(t, messenger, store, domain.Expose{ID: "1", Photos: photoURLs(11)})

	handler.HandleCallback(ctx, port.CallbackQuery{ID: "cb-1", ReceiverID: 10, MessageID: 77, Data: "1"})

	require.Len(t, messenger.groups, 2)
	assert.Len(t, messenger.groups[0].photos, 10)
	assert.Len(t, messenger.groups[1].photos, 1)
	assert.Equal(t, 77, messenger.groups[0].replyTo)
	assert.Equal(t, []string{""}, messenger.answers["cb-1"])
	assert.Equal(t, domain.StatePhotosDelivered, handler.sent.state("1"))

	// повторное нажатие снова отправляет альбомы
	handler.HandleCallback(ctx, port.CallbackQuery{ID: "cb-2", ReceiverID: 10, MessageID: 77, Data: "1"})
	assert.Len(t, messenger.groups, 4)
	assert.Equal(t, []string{""}, messenger.answers["cb-2"])
}

func TestPhotosUnknownExpose(t *testing.T) {
	messenger := newFakeMessenger()
	handler := dispatchOne(t, messenger, memstore.New(), domain.Expose{ID: "1", Photos: photoURLs(5)})

	handler.HandleCallback(context.Background(), port.CallbackQuery{ID: "cb", ReceiverID: 10, Data: "999"})

	assert.Empty(t, messenger.groups)
	assert.Equal(t, []string{constants.NoPicsAnswer}, messenger.answers["cb"])
}

func TestPhotosTooFew(t *testing.T) {
	messenger := newFakeMessenger()
	handler := dispatchOne(t, messenger, memstore.New(), domain.Expose{ID: "1", Photos: photoURLs(2)})

	handler.HandleCallback(context.Background(), port.CallbackQuery{ID: "cb", ReceiverID: 10, Data: "1"})

	assert.Empty(t, messenger.groups)
	assert.Equal(t, []string{constants.NoPicsAnswer}, messenger.answers["cb"])
	assert.Equal(t, domain.StateSent, handler.sent.state("1"))
}

func TestPhotosFromStoreTakePrecedence(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Put(ctx, domain.StoreEntry{ID: "1", Photos: photoURLs(4)}))
	messenger := newFakeMessenger()
	handler := dispatchOne(t, messenger, store, domain.Expose{ID: "1", Photos: photoURLs(1)})

	handler.HandleCallback(ctx, port.CallbackQuery{ID: "cb", ReceiverID: 10, Data: "1"})

	require.Len(t, messenger.groups, 1)
	assert.Len(t, messenger.groups[0].photos, 4)
}

func TestPhotosSendFailureAnswersNoPics(t *testing.T) {
	messenger := newFakeMessenger()
	messenger.failGroup = true
	handler := dispatchOne(t, messenger, memstore.New(), domain.Expose{ID: "1", Photos: photoURLs(3)})

	handler.HandleCallback(context.Background(), port.CallbackQuery{ID: "cb", ReceiverID: 10, Data: "1"})

	assert.Equal(t, []string{constants.NoPicsAnswer}, messenger.answers["cb"])
	assert.Equal(t, domain.StateSent, handler.sent.state("1"))
}

func TestChunk(t *testing.T) {
	assert.Nil(t, chunk(nil, 10))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
}
