package notifier

import (
	"context"
	"testing"

	"flathunter-service/internal/adapters/store/memstore"
	"flathunter-service/internal/constants"
	"flathunter-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func template(t *testing.T, raw string) *MessageTemplate {
	t.Helper()
	tmpl, err := NewMessageTemplate(raw)
	require.NoError(t, err)
	return tmpl
}

func TestMessageTemplate(t *testing.T) {
	tmpl := template(t, "{title}Zimmer: {rooms}\n{price} / {total_price}\nFrei ab: {free_from}\n{url}\n{durations}")

	text := tmpl.Render(domain.Expose{
		Title:      "Altbau",
		Rooms:      "2",
		Price:      "850",
		TotalPrice: "1.020 €",
		FreeFrom:   "01.05.2024",
		URL:        "https://www.immobilienscout24.de/expose/123456",
	})

	assert.Equal(t, "Altbau\nZimmer: 2\n850 / 1.020 €\nFrei ab: 01.05.2024\nhttps://www.immobilienscout24.de/expose/123456", text)
}

func TestMessageTemplateRejectsUnknownPlaceholder(t *testing.T) {
	_, err := NewMessageTemplate("{title} {balcony}")
	assert.ErrorContains(t, err, "{balcony}")
}

func TestSenderWithoutReceiversHasNoSideEffects(t *testing.T) {
	messenger := newFakeMessenger()
	sender := NewSender(messenger, memstore.New(), nil, template(t, "{title}"))

	out, keep, err := sender.ProcessExpose(context.Background(), domain.Expose{ID: "1", Title: "x", Photos: []string{"a"}})
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, "1", out.ID)
	assert.Empty(t, messenger.texts)
	assert.Empty(t, messenger.photos)
}

func TestSenderSendsPhotoWithButtonOrText(t *testing.T) {
	messenger := newFakeMessenger()
	sender := NewSender(messenger, memstore.New(), []int64{10, 20}, template(t, "{title}{url}"))
	ctx := context.Background()

	_, _, err := sender.ProcessExpose(ctx, domain.Expose{ID: "1", Title: "With photos", URL: "u1", Photos: []string{"p1.jpg", "p2.jpg"}})
	require.NoError(t, err)
	_, _, err = sender.ProcessExpose(ctx, domain.Expose{ID: "2", Title: "No photos", URL: "u2"})
	require.NoError(t, err)

	require.Len(t, messenger.photos, 2)
	assert.Equal(t, "p1.jpg", messenger.photos[0].photo)
	assert.Equal(t, "With photos\nu1", messenger.photos[0].caption)
	assert.Equal(t, constants.ShowPicsButtonText, messenger.photos[0].button.Text)
	assert.Equal(t, "1", messenger.photos[0].button.Data)

	assert.Equal(t, []string{"No photos\nu2"}, messenger.texts[10])
	assert.Equal(t, []string{"No photos\nu2"}, messenger.texts[20])
}

func TestSenderContinuesAfterReceiverFailure(t *testing.T) {
	messenger := newFakeMessenger()
	messenger.failFor[10] = true
	sender := NewSender(messenger, memstore.New(), []int64{10, 20}, template(t, "{title}"))

	_, keep, err := sender.ProcessExpose(context.Background(), domain.Expose{ID: "1", Title: "flat"})
	require.NoError(t, err)
	assert.True(t, keep)
	assert.Empty(t, messenger.texts[10])
	assert.Equal(t, []string{"flat"}, messenger.texts[20])
}
